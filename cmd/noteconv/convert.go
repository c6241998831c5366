// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meddata/noteconv/internal/report"
	"github.com/meddata/noteconv/pkg/types"
)

// addConvertFlags registers the flags shared by the notes and reports
// conversion commands.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output file path (extension selects format: .csv, .json, .yaml)")
	cmd.Flags().StringP("pattern", "p", "*.txt", "glob pattern for input files")
	cmd.Flags().Bool("compact", false, "use compact JSON formatting (only applies to JSON output)")
	cmd.MarkFlagRequired("output")
}

// convertConfig resolves the shared conversion settings from flags, falling
// back to config file / environment values for flags the user did not set.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	var cfg types.ConvertConfig

	cfg.Pattern, _ = cmd.Flags().GetString("pattern")
	if !cmd.Flags().Changed("pattern") && viper.IsSet("pattern") {
		cfg.Pattern = viper.GetString("pattern")
	}

	cfg.Compact, _ = cmd.Flags().GetBool("compact")
	if !cmd.Flags().Changed("compact") && viper.IsSet("compact") {
		cfg.Compact = viper.GetBool("compact")
	}

	return cfg
}

// convertOptions builds pipeline options from the resolved config and the
// command's output flag.
func convertOptions(cmd *cobra.Command, inputDir string) report.Options {
	output, _ := cmd.Flags().GetString("output")
	cfg := convertConfig(cmd)

	return report.Options{
		InputDir:   inputDir,
		OutputPath: output,
		Pattern:    cfg.Pattern,
		Compact:    cfg.Compact,
	}
}
