// Package file contains filesystem helpers for locating pipeline artifacts,
// such as the numbered chunk and CSV files produced by earlier stages.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListNumbered returns the files in dir whose names start with prefix and end
// with ext, sorted lexicographically.
//
// Chunk and CSV file names carry zero-padded sequence numbers, so the
// lexicographic order is also the pipeline processing order. Subdirectories
// and non-matching entries are skipped.
func ListNumbered(dir, prefix, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
