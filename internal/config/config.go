// Package config defines the immutable run configuration for the csv2sql
// pipeline.
//
// A Config is constructed once at startup (defaults, then environment
// overrides, then CLI flags) and passed by value to every stage. Nothing in
// the pipeline mutates configuration after that point.
//
// Environment variables (all optional, CSV2SQL_ prefix) mirror the CLI flags
// so runs can be parameterized 12-factor style:
//
//	CSV2SQL_SPLIT_LINES     lines per chunk file
//	CSV2SQL_DELIMITER       source field delimiter (single character)
//	CSV2SQL_ENCODING        source character encoding name
//	CSV2SQL_OUTPUT_DIR      output base directory
//	CSV2SQL_BATCH_SIZE      rows per INSERT statement
//	CSV2SQL_PROGRESS_EVERY  row interval for progress logs
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default values applied before environment and flag overrides.
const (
	DefaultSplitLines    = 10000
	DefaultDelimiter     = "|"
	DefaultEncoding      = "latin1"
	DefaultOutputDir     = "./output"
	DefaultBatchSize     = 500
	DefaultProgressEvery = 10000
)

// Config describes one pipeline invocation.
type Config struct {
	// SourcePath is the delimited input file.
	SourcePath string

	// RunLabel scopes the CSV and SQL output subfolders and names the
	// generated database.
	RunLabel string

	// SplitLines is the maximum number of data lines per chunk file.
	SplitLines int

	// Delimiter is the source field delimiter, rewritten to a comma during
	// normalization. Exactly one character.
	Delimiter string

	// Encoding names the source character encoding (see internal/encoding).
	Encoding string

	// OutputDir is the base directory under which the three output trees
	// (split_files, converted_csv, sql_files) are created.
	OutputDir string

	// BatchSize is the number of row tuples per INSERT statement.
	BatchSize int

	// ProgressEvery is the row interval at which the emitter logs progress.
	ProgressEvery int
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		SplitLines:    DefaultSplitLines,
		Delimiter:     DefaultDelimiter,
		Encoding:      DefaultEncoding,
		OutputDir:     DefaultOutputDir,
		BatchSize:     DefaultBatchSize,
		ProgressEvery: DefaultProgressEvery,
	}
}

// ApplyEnv returns a copy of c with CSV2SQL_* environment overrides applied.
// Unset or unparseable variables leave the corresponding field unchanged.
func ApplyEnv(c Config) Config {
	c.SplitLines = getenvInt("CSV2SQL_SPLIT_LINES", c.SplitLines)
	c.BatchSize = getenvInt("CSV2SQL_BATCH_SIZE", c.BatchSize)
	c.ProgressEvery = getenvInt("CSV2SQL_PROGRESS_EVERY", c.ProgressEvery)
	c.Delimiter = getenvStr("CSV2SQL_DELIMITER", c.Delimiter)
	c.Encoding = getenvStr("CSV2SQL_ENCODING", c.Encoding)
	c.OutputDir = getenvStr("CSV2SQL_OUTPUT_DIR", c.OutputDir)
	return c
}

// BaseName returns the source file's base name without its extension. It is
// used as the chunk file prefix stem and as the target table name.
func (c Config) BaseName() string {
	base := filepath.Base(c.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SplitDir is the directory receiving chunk files. Chunks are not scoped by
// run label; each run fully clears and regenerates the directory.
func (c Config) SplitDir() string {
	return filepath.Join(c.OutputDir, "split_files")
}

// CSVDir is the run-scoped directory receiving normalized CSV files.
func (c Config) CSVDir() string {
	return filepath.Join(c.OutputDir, "converted_csv", c.RunLabel)
}

// SQLDir is the run-scoped directory receiving the generated SQL script.
func (c Config) SQLDir() string {
	return filepath.Join(c.OutputDir, "sql_files", c.RunLabel)
}

// ScriptPath is the full path of the generated SQL script.
func (c Config) ScriptPath() string {
	return filepath.Join(c.SQLDir(), c.BaseName()+".sql")
}

// ChunkPrefix is the file name prefix shared by all chunk and CSV files.
func (c Config) ChunkPrefix() string {
	return "split_" + c.BaseName()
}

// getenvInt reads an int from environment, returning def when unset/invalid.
func getenvInt(k string, def int) int {
	if s := os.Getenv(k); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

// getenvStr reads a string from environment, returning def when unset.
func getenvStr(k, def string) string {
	if s := os.Getenv(k); s != "" {
		return s
	}
	return def
}
