// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the noteconv CLI: it converts Epic
// tab-separated clinical exports into consolidated CSV, JSON, or YAML files
// and maintains an optional searchable archive of pathology reports.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the noteconv CLI.
var rootCmd = &cobra.Command{
	Use:   "noteconv",
	Short: "Convert Epic clinical exports to CSV, JSON, or YAML",
	Long: `noteconv converts Epic clinical exports from tab-separated text files into
consolidated records. Each input file carries one header line followed by
data rows; noteconv tolerates malformed rows, reassembles pathology reports
split across rows, and writes the result as CSV, JSON, or YAML.

Use the notes subcommand for plain row-per-record conversion, and the
reports subcommand for pathology exports whose free text is fragmented
across rows.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./noteconv.yaml or ~/.config/noteconv/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("noteconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "noteconv"))
		}
	}

	viper.SetEnvPrefix("NOTECONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
