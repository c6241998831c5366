// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsv

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover returns the files under dir matching the glob pattern, in
// lexicographic order so runs are deterministic. Zero matches is not an
// error; the caller decides what an empty run means.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
