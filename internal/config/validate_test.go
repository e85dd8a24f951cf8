package config

import "testing"

// validBase returns a Config that passes validation, for tests to break one
// field at a time.
func validBase() Config {
	c := Default()
	c.SourcePath = "/data/in.txt"
	c.RunLabel = "run1"
	return c
}

// TestValidateOK verifies that a fully populated config yields no issues.
func TestValidateOK(t *testing.T) {
	t.Parallel()

	if issues := Validate(validBase()); len(issues) != 0 {
		t.Fatalf("Validate() = %v, want no issues", issues)
	}
}

// TestValidateErrors verifies that each broken field produces an
// error-severity issue at the expected path.
func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{name: "missing source", mutate: func(c *Config) { c.SourcePath = " " }, wantPath: "source"},
		{name: "missing run label", mutate: func(c *Config) { c.RunLabel = "" }, wantPath: "run_label"},
		{name: "zero split lines", mutate: func(c *Config) { c.SplitLines = 0 }, wantPath: "split_lines"},
		{name: "negative split lines", mutate: func(c *Config) { c.SplitLines = -3 }, wantPath: "split_lines"},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchSize = 0 }, wantPath: "batch_size"},
		{name: "empty delimiter", mutate: func(c *Config) { c.Delimiter = "" }, wantPath: "delimiter"},
		{name: "multi-char delimiter", mutate: func(c *Config) { c.Delimiter = "||" }, wantPath: "delimiter"},
		{name: "unknown encoding", mutate: func(c *Config) { c.Encoding = "ebcdic" }, wantPath: "encoding"},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }, wantPath: "output_dir"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validBase()
			tt.mutate(&c)

			issues := Validate(c)
			found := false
			for _, iss := range issues {
				if iss.Path == tt.wantPath && iss.Severity == SeverityError {
					found = true
				}
			}
			if !found {
				t.Fatalf("Validate() = %v, want error issue at %q", issues, tt.wantPath)
			}
		})
	}
}

// TestValidateWarnings verifies the non-fatal findings: comma delimiter and
// disabled progress logging.
func TestValidateWarnings(t *testing.T) {
	t.Parallel()

	c := validBase()
	c.Delimiter = ","
	c.ProgressEvery = 0

	issues := Validate(c)
	var warnPaths []string
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			t.Fatalf("unexpected error issue: %v", iss)
		}
		warnPaths = append(warnPaths, iss.Path)
	}

	wantPaths := map[string]bool{"delimiter": false, "progress_every": false}
	for _, p := range warnPaths {
		if _, ok := wantPaths[p]; ok {
			wantPaths[p] = true
		}
	}
	for p, seen := range wantPaths {
		if !seen {
			t.Fatalf("Validate() missing warning at %q; got %v", p, issues)
		}
	}
}

// TestIssueError verifies the error-interface rendering of an Issue.
func TestIssueError(t *testing.T) {
	t.Parallel()

	iss := Issue{Severity: SeverityError, Path: "delimiter", Message: "bad"}
	if got, want := iss.Error(), "error at delimiter: bad"; got != want {
		t.Fatalf("Issue.Error() = %q, want %q", got, want)
	}
}
