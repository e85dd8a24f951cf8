package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// TestRunCommandArgs verifies that missing positional arguments and unknown
// flags are rejected.
func TestRunCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no args", args: []string{"run"}},
		{name: "one arg", args: []string{"run", "source.txt"}},
		{name: "unknown flag", args: []string{"run", "source.txt", "label", "--bogus"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatalf("Execute(%v) error = nil, want non-nil", tt.args)
			}
		})
	}
}

// TestRunCommandInvalidConfig verifies that validation issues abort the run
// with an error before any pipeline work happens.
func TestRunCommandInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(src, []byte("a|b\n1|2\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	_, err := execute(t, "run", src, "label",
		"--out", filepath.Join(dir, "out"),
		"--delimiter", "||")
	if err == nil {
		t.Fatalf("Execute() error = nil, want configuration error")
	}
}

// TestRunCommandEndToEnd verifies a full CLI invocation over temp dirs.
func TestRunCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "people.txt")
	data := "id|name\n1|alice\n2|bob\n"
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	stdout, err := execute(t, "run", src, "demo",
		"--out", outDir,
		"--encoding", "utf-8",
		"--lines", "1",
		"--batch", "10")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "2 chunks") {
		t.Fatalf("stdout = %q, want chunk count in summary", stdout)
	}

	script := filepath.Join(outDir, "sql_files", "demo", "people.sql")
	b, err := os.ReadFile(script)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	for _, want := range []string{
		"CREATE TABLE [people]",
		"('1', 'alice')",
		"('2', 'bob')",
	} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("script missing %q; script:\n%s", want, b)
		}
	}
}
