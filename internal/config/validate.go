// This file adds a lightweight linter/validator for Config values. It
// performs static checks over a resolved Config and returns a list of issues
// (errors and warnings) that callers can surface in the CLI or in tests.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"csv2sql/internal/encoding"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that is surfaced to
	// users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Config.
//
// Path is a dotted path into the config (e.g. "split_lines"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a resolved Config.
//
// It does not mutate the config. Callers decide whether to treat warnings as
// fatal; error-severity issues always abort the run.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.SourcePath) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source",
			Message:  "source file path must not be empty",
		})
	}

	if strings.TrimSpace(c.RunLabel) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "run_label",
			Message:  "run label must not be empty; it scopes the CSV/SQL output subfolders",
		})
	}

	if c.SplitLines <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "split_lines",
			Message:  fmt.Sprintf("split_lines=%d; must be a positive integer", c.SplitLines),
		})
	}

	if c.BatchSize < 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "batch_size",
			Message:  fmt.Sprintf("batch_size=%d; at least one row per INSERT is required", c.BatchSize),
		})
	}

	if c.ProgressEvery <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "progress_every",
			Message:  fmt.Sprintf("progress_every=%d; progress logging disabled", c.ProgressEvery),
		})
	}

	switch n := utf8.RuneCountInString(c.Delimiter); {
	case n == 0:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "delimiter",
			Message:  "delimiter must not be empty",
		})
	case n > 1:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "delimiter",
			Message:  fmt.Sprintf("delimiter %q must be a single character", c.Delimiter),
		})
	case c.Delimiter == ",":
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "delimiter",
			Message:  "delimiter is already a comma; normalization will be a no-op",
		})
	}

	if _, err := encoding.Lookup(c.Encoding); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "encoding",
			Message:  err.Error(),
		})
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output_dir",
			Message:  "output base directory must not be empty",
		})
	}

	return issues
}
