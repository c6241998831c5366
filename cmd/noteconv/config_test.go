// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddata/noteconv/pkg/types"
)

// newConvertCmd builds a throwaway command with the shared conversion flags
// so tests do not mutate the package-level commands.
func newConvertCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addConvertFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestConvertConfigFlagDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := newConvertCmd(t, "-o", "out.csv")
	cfg := convertConfig(cmd)

	assert.Equal(t, types.ConvertConfig{Pattern: "*.txt", Compact: false}, cfg)
}

func TestConvertConfigViperFallback(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("pattern", "note_*.txt")
	viper.Set("compact", true)

	cmd := newConvertCmd(t, "-o", "out.json")
	cfg := convertConfig(cmd)

	assert.Equal(t, types.ConvertConfig{Pattern: "note_*.txt", Compact: true}, cfg)
}

func TestConvertConfigExplicitFlagsWin(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("pattern", "note_*.txt")
	viper.Set("compact", true)

	cmd := newConvertCmd(t, "-o", "out.json", "-p", "*.tsv", "--compact=false")
	cfg := convertConfig(cmd)

	assert.Equal(t, types.ConvertConfig{Pattern: "*.tsv", Compact: false}, cfg)
}

func TestConvertOptionsCarriesConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := newConvertCmd(t, "-o", "out.json", "--compact")
	opts := convertOptions(cmd, "exports")

	assert.Equal(t, "exports", opts.InputDir)
	assert.Equal(t, "out.json", opts.OutputPath)
	assert.Equal(t, "*.txt", opts.Pattern)
	assert.True(t, opts.Compact)
}

func TestArchiveConfigWithoutLimitFlag(t *testing.T) {
	t.Cleanup(viper.Reset)

	// The store command has no limit flag; the store default applies.
	cmd := &cobra.Command{Use: "store"}
	cmd.Flags().String("db-dir", "archive", "")
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := archiveConfig(cmd)
	assert.Equal(t, types.ArchiveConfig{DBDir: "archive", MaxResults: 0}, cfg)
}

func TestArchiveConfigWithLimitFlag(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "query"}
	cmd.Flags().String("db-dir", "archive", "")
	cmd.Flags().Int("limit", 20, "")
	require.NoError(t, cmd.ParseFlags([]string{"--db-dir", "reports", "--limit", "5"}))

	cfg := archiveConfig(cmd)
	assert.Equal(t, types.ArchiveConfig{DBDir: "reports", MaxResults: 5}, cfg)
}
