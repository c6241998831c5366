// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meddata/noteconv/internal/merge"
	"github.com/meddata/noteconv/internal/report"
	"github.com/meddata/noteconv/internal/store"
	"github.com/meddata/noteconv/pkg/types"
)

// --- store subcommand ---

var storeCmd = &cobra.Command{
	Use:   "store <input-dir>",
	Short: "Ingest pathology report exports into the archive",
	Long: `Store parses pathology report exports, merges fragmented rows into
consolidated reports, and writes them into a local SQLite archive with
full-text indexing. Ingest is idempotent: re-running over the same exports
skips unchanged reports and updates changed ones in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runStore,
}

func runStore(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	pattern, _ := cmd.Flags().GetString("pattern")
	if !cmd.Flags().Changed("pattern") && viper.IsSet("pattern") {
		pattern = viper.GetString("pattern")
	}

	records, err := report.Collect(args[0], pattern, stderr)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records to store")
	}
	merged := merge.Merge(records, stderr)

	s, err := store.Open(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Ingest(context.Background(), merged, stderr)
	return err
}

// --- query subcommand ---

var queryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Search the report archive",
	Long: `Query searches archived reports with FTS5 full-text search over report
text, structured filters (MRN, case name, specimen source), or both.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	q := store.Query{Text: strings.Join(args, " ")}
	q.MRN, _ = cmd.Flags().GetString("mrn")
	q.CaseName, _ = cmd.Flags().GetString("case")
	q.SpecimenSource, _ = cmd.Flags().GetString("specimen")
	q.MaxResults, _ = cmd.Flags().GetInt("limit")

	if q.IsEmpty() {
		return fmt.Errorf("provide search terms or at least one filter")
	}

	s, err := store.Open(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Search(context.Background(), q)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No matching reports")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s  MRN %s  %s  %s\n", r.ID, r.MRN, r.Date, r.CaseName)
		fmt.Println(indentText(r.ValueText))
	}
	return nil
}

// indentText prefixes each line of report text for readable terminal output.
func indentText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

func archiveConfig(cmd *cobra.Command) types.ArchiveConfig {
	dbDir, _ := cmd.Flags().GetString("db-dir")
	if !cmd.Flags().Changed("db-dir") && viper.IsSet("db_dir") {
		dbDir = viper.GetString("db_dir")
	}

	cfg := types.ArchiveConfig{DBDir: dbDir}
	// Only the query command defines a result limit; the store default
	// applies elsewhere.
	if cmd.Flags().Lookup("limit") != nil {
		cfg.MaxResults, _ = cmd.Flags().GetInt("limit")
	}
	return cfg
}

func init() {
	storeCmd.Flags().StringP("pattern", "p", "*.txt", "glob pattern for input files")
	storeCmd.Flags().String("db-dir", "archive", "directory holding the archive database")

	queryCmd.Flags().String("mrn", "", "filter by patient record number")
	queryCmd.Flags().String("case", "", "filter by case name")
	queryCmd.Flags().String("specimen", "", "filter by specimen source")
	queryCmd.Flags().Int("limit", 20, "maximum number of results")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("db-dir", "archive", "directory holding the archive database")

	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(queryCmd)
}
