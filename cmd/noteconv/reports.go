// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meddata/noteconv/internal/report"
)

var reportsCmd = &cobra.Command{
	Use:   "reports <input-dir>",
	Short: "Convert pathology report exports with fragment merging",
	Long: `Reports converts Epic pathology report exports. Rows sharing the same MRN,
date, LabOrderEpicId, CaseName, and SpecimenSource are merged into a single
record whose ValueText is the report fragments joined in order of
ConcatenationLine and ConcatenationSubLine.

Pass --no-merge to keep individual rows as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: runReports,
}

func runReports(cmd *cobra.Command, args []string) error {
	opts := convertOptions(cmd, args[0])
	noMerge, _ := cmd.Flags().GetBool("no-merge")
	opts.Merge = !noMerge

	stderr := cmd.ErrOrStderr()
	if _, err := report.Run(opts, stderr); err != nil {
		return err
	}
	fmt.Fprintln(stderr, "Done!")
	return nil
}

func init() {
	addConvertFlags(reportsCmd)
	reportsCmd.Flags().Bool("no-merge", false, "do not merge records; output individual rows as-is")
	rootCmd.AddCommand(reportsCmd)
}
