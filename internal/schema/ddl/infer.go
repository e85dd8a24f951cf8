// Package ddl derives a table definition from a CSV header row and renders
// the T-SQL preamble of the generated script.
//
// Every inferred column is typed NVARCHAR(MAX): the pipeline performs no type
// inference, so all tables are homogeneous wide-text tables regardless of the
// source data.
package ddl

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Column is one inferred table column. The type is fixed (NVARCHAR(MAX)), so
// only the sanitized name is carried.
type Column struct {
	Name string
}

// SanitizeIdent replaces every character outside [A-Za-z0-9_] with an
// underscore. Sanitizing an already-sanitized name returns it unchanged.
func SanitizeIdent(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z',
			r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// InferColumns splits a CSV header line on commas and sanitizes each column
// name, preserving the original order.
func InferColumns(header string) ([]Column, error) {
	if strings.TrimSpace(header) == "" {
		return nil, fmt.Errorf("ddl: empty header line")
	}
	names := strings.Split(header, ",")
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		cols = append(cols, Column{Name: SanitizeIdent(n)})
	}
	return cols, nil
}

// ReadHeader returns the first line of the CSV file at path.
func ReadHeader(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ddl: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), 4<<20)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("ddl: read header of %s: %w", path, err)
		}
		return "", fmt.Errorf("ddl: %s is empty, no header to infer from", path)
	}
	return sc.Text(), nil
}
