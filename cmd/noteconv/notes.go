// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meddata/noteconv/internal/report"
)

var notesCmd = &cobra.Command{
	Use:   "notes <input-dir>",
	Short: "Convert clinic note exports to CSV, JSON, or YAML",
	Long: `Notes converts Epic clinic note exports from tab-separated text files into
a single output file. Every data row becomes one record; no merging is
performed.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotes,
}

func runNotes(cmd *cobra.Command, args []string) error {
	opts := convertOptions(cmd, args[0])

	stderr := cmd.ErrOrStderr()
	if _, err := report.Run(opts, stderr); err != nil {
		return err
	}
	fmt.Fprintln(stderr, "Done!")
	return nil
}

func init() {
	addConvertFlags(notesCmd)
	rootCmd.AddCommand(notesCmd)
}
