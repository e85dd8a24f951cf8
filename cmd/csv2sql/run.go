package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"csv2sql/internal/config"
	"csv2sql/internal/logging"
	"csv2sql/internal/pipeline"
)

// newRootCmd builds the csv2sql command tree.
func newRootCmd() *cobra.Command {
	var (
		debug  bool
		pretty bool
	)

	root := &cobra.Command{
		Use:   "csv2sql",
		Short: "Generate a bulk-insert SQL script from a delimited text file",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(debug, pretty)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-friendly console log output")

	root.AddCommand(newRunCmd())
	return root
}

// newRunCmd builds the "run" subcommand, which executes the full pipeline.
//
// Precedence for settings is defaults < CSV2SQL_* environment < flags.
func newRunCmd() *cobra.Command {
	defaults := config.Default()

	var (
		lines         int
		delimiter     string
		encodingName  string
		outDir        string
		batchSize     int
		progressEvery int
	)

	cmd := &cobra.Command{
		Use:   "run <source_file> <run_label>",
		Short: "Split, normalize, and emit a SQL script for one source file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.ApplyEnv(config.Default())
			cfg.SourcePath = args[0]
			cfg.RunLabel = args[1]

			// Flags override environment only when explicitly set.
			if cmd.Flags().Changed("lines") {
				cfg.SplitLines = lines
			}
			if cmd.Flags().Changed("delimiter") {
				cfg.Delimiter = delimiter
			}
			if cmd.Flags().Changed("encoding") {
				cfg.Encoding = encodingName
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outDir
			}
			if cmd.Flags().Changed("batch") {
				cfg.BatchSize = batchSize
			}
			if cmd.Flags().Changed("progress-every") {
				cfg.ProgressEvery = progressEvery
			}

			issues := config.Validate(cfg)
			hasError := false
			for _, iss := range issues {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
				if iss.Severity == config.SeverityError {
					hasError = true
				}
			}
			if hasError {
				return fmt.Errorf("invalid configuration")
			}

			// Validation passed; errors from here are runtime failures, not
			// usage mistakes.
			cmd.SilenceUsage = true

			res, err := pipeline.Run(cmd.Context(), cfg)
			if err != nil {
				logging.L().Error().Err(err).Msg("run failed")
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"done: %d chunks, %d csv files, %d rows, %d insert statements in %s\nscript: %s\n",
				res.Chunks, res.CsvFiles, res.Rows, res.Statements,
				res.Elapsed.Truncate(time.Millisecond), res.ScriptPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&lines, "lines", defaults.SplitLines, "lines per chunk file")
	cmd.Flags().StringVar(&delimiter, "delimiter", defaults.Delimiter, "source field delimiter (single character)")
	cmd.Flags().StringVar(&encodingName, "encoding", defaults.Encoding, "source character encoding")
	cmd.Flags().StringVar(&outDir, "out", defaults.OutputDir, "output base directory")
	cmd.Flags().IntVar(&batchSize, "batch", defaults.BatchSize, "rows per INSERT statement")
	cmd.Flags().IntVar(&progressEvery, "progress-every", defaults.ProgressEvery, "row interval for progress logs")

	return cmd
}
