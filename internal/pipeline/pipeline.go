// Package pipeline sequences the full run: directory lifecycle, chunking,
// CSV normalization, schema inference, and SQL emission.
//
// Execution is strictly sequential: each stage completes before the next
// begins, and within the emit stage lines are read and SQL written in order.
// Each stage owns only its own output artifact and hands paths to the next
// stage; the orchestrator owns the directory lifecycles.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"csv2sql/internal/config"
	"csv2sql/internal/datasource/file"
	"csv2sql/internal/logging"
	"csv2sql/internal/metrics"
	"csv2sql/internal/normalizer"
	"csv2sql/internal/schema/ddl"
	"csv2sql/internal/splitter"
	"csv2sql/internal/sqlgen"
)

const (
	scanBufSize = 64 << 10 // 64 KiB
	maxLineSize = 4 << 20  // 4 MiB

	// How many row-shape anomalies are logged individually before the rest
	// are only counted.
	shapeSamples = 3
)

// Result summarizes one completed run.
type Result struct {
	Chunks         int
	CsvFiles       int
	Rows           int64
	Statements     int64
	ShapeAnomalies int64
	Elapsed        time.Duration

	SplitDir   string
	CSVDir     string
	SQLDir     string
	ScriptPath string
}

// Run executes the pipeline for the given configuration.
//
// It aborts before any directory is touched when the source file does not
// exist. Pre-existing contents of the three output trees are removed
// unconditionally; each run fully regenerates its outputs.
func Run(ctx context.Context, cfg config.Config) (*Result, error) {
	start := time.Now()
	log := logging.WithStage("pipeline")

	if _, err := os.Stat(cfg.SourcePath); err != nil {
		return nil, fmt.Errorf("source file: %w", err)
	}

	if err := resetDirs(cfg.SplitDir(), cfg.CSVDir(), cfg.SQLDir()); err != nil {
		return nil, err
	}

	res := &Result{
		SplitDir:   cfg.SplitDir(),
		CSVDir:     cfg.CSVDir(),
		SQLDir:     cfg.SQLDir(),
		ScriptPath: cfg.ScriptPath(),
	}

	chunks, err := runSplit(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res.Chunks = len(chunks)

	csvs, err := runNormalize(ctx, cfg, chunks)
	if err != nil {
		return nil, err
	}
	res.CsvFiles = len(csvs)

	if err := runEmit(ctx, cfg, res); err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)

	log.Info().
		Str("run", cfg.RunLabel).
		Int("chunks", res.Chunks).
		Int("csv_files", res.CsvFiles).
		Str("rows", humanize.Comma(res.Rows)).
		Int64("statements", res.Statements).
		Int64("shape_anomalies", res.ShapeAnomalies).
		Str("split_dir", res.SplitDir).
		Str("csv_dir", res.CSVDir).
		Str("script", res.ScriptPath).
		Dur("elapsed", res.Elapsed.Truncate(time.Millisecond)).
		Msg("run complete")

	return res, nil
}

// resetDirs clears and recreates the run's output directories. The removal is
// destructive and unconditional for any pre-existing contents.
func resetDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.RemoveAll(d); err != nil {
			return fmt.Errorf("clear %s: %w", d, err)
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	return nil
}

// runSplit chunks the source file and logs per-chunk checksums.
func runSplit(ctx context.Context, cfg config.Config) ([]splitter.Chunk, error) {
	log := logging.WithStage("split")
	t0 := time.Now()

	sp := splitter.Splitter{LinesPerChunk: cfg.SplitLines}
	chunks, err := sp.Split(ctx, cfg.SourcePath, cfg.SplitDir(), cfg.ChunkPrefix())
	metrics.RecordStage(cfg.RunLabel, "split", err, time.Since(t0))
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	var total int64
	for _, c := range chunks {
		total += int64(c.DataLines)
		log.Debug().
			Str("chunk", filepath.Base(c.Path)).
			Int("data_lines", c.DataLines).
			Str("xxh3", fmt.Sprintf("%016x", c.Sum)).
			Msg("chunk written")
	}
	metrics.RecordRows(cfg.RunLabel, "split", total)

	log.Info().
		Int("chunks", len(chunks)).
		Int64("data_lines", total).
		Msg("source split")
	return chunks, nil
}

// runNormalize rewrites each chunk as a comma-delimited, UTF-8 CSV file.
func runNormalize(ctx context.Context, cfg config.Config, chunks []splitter.Chunk) ([]string, error) {
	log := logging.WithStage("normalize")
	t0 := time.Now()

	n := normalizer.Normalizer{
		Delimiter: cfg.Delimiter,
		Encoding:  cfg.Encoding,
	}

	var (
		out   []string
		total int64
	)
	for _, c := range chunks {
		name := strings.TrimSuffix(filepath.Base(c.Path), ".txt") + ".csv"
		dst := filepath.Join(cfg.CSVDir(), name)

		lines, err := n.NormalizeFile(ctx, c.Path, dst)
		if err != nil {
			metrics.RecordStage(cfg.RunLabel, "normalize", err, time.Since(t0))
			return nil, err
		}
		total += int64(lines)
		out = append(out, dst)
	}
	metrics.RecordStage(cfg.RunLabel, "normalize", nil, time.Since(t0))
	metrics.RecordRows(cfg.RunLabel, "normalized", total)

	log.Info().
		Int("csv_files", len(out)).
		Int64("lines", total).
		Msg("chunks normalized")
	return out, nil
}

// runEmit infers the table schema from the first CSV and streams every CSV's
// data rows into batched INSERT statements.
func runEmit(ctx context.Context, cfg config.Config, res *Result) error {
	log := logging.WithStage("emit")
	t0 := time.Now()

	emitErr := func(err error) error {
		metrics.RecordStage(cfg.RunLabel, "emit", err, time.Since(t0))
		return err
	}

	csvs, err := file.ListNumbered(cfg.CSVDir(), cfg.ChunkPrefix(), ".csv")
	if err != nil {
		return emitErr(err)
	}
	if len(csvs) == 0 {
		return emitErr(fmt.Errorf("no CSV files found in %s; cannot infer table schema", cfg.CSVDir()))
	}

	header, err := ddl.ReadHeader(csvs[0])
	if err != nil {
		return emitErr(err)
	}
	cols, err := ddl.InferColumns(header)
	if err != nil {
		return emitErr(err)
	}

	script, err := os.Create(cfg.ScriptPath())
	if err != nil {
		return emitErr(fmt.Errorf("create script %s: %w", cfg.ScriptPath(), err))
	}
	defer script.Close()

	em, err := sqlgen.NewEmitter(script, cfg.RunLabel, cfg.BaseName(), cfg.BatchSize, cfg.ProgressEvery, log)
	if err != nil {
		return emitErr(err)
	}

	database := ddl.SanitizeIdent(cfg.RunLabel)
	if err := em.WritePreamble(database, cols); err != nil {
		return emitErr(err)
	}

	shape := shapeAgg{limit: shapeSamples}
	for _, path := range csvs {
		if err := emitFile(ctx, em, path, len(cols), &shape); err != nil {
			return emitErr(err)
		}
	}
	if err := em.Finish(); err != nil {
		return emitErr(err)
	}
	if err := script.Close(); err != nil {
		return emitErr(fmt.Errorf("close script: %w", err))
	}

	res.Rows = em.TotalRows()
	res.Statements = em.Statements()
	res.ShapeAnomalies = shape.count

	for _, s := range shape.first {
		log.Warn().Msg(s)
	}
	if shape.count > int64(len(shape.first)) {
		log.Warn().
			Int64("total", shape.count).
			Msgf("additional row-shape anomalies suppressed (showing first %d)", len(shape.first))
	}
	metrics.RecordRows(cfg.RunLabel, "shape_anomalies", shape.count)
	metrics.RecordStage(cfg.RunLabel, "emit", nil, time.Since(t0))

	return nil
}

// emitFile streams one CSV's data rows into the emitter, skipping the file's
// header line. Rows whose field count differs from the inferred column count
// are passed through positionally and counted as anomalies.
func emitFile(ctx context.Context, em *sqlgen.Emitter, path string, wantFields int, shape *shapeAgg) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	if err := em.BeginFile(filepath.Base(path)); err != nil {
		return err
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, scanBufSize), maxLineSize)

	line := 0
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line++
		if line == 1 {
			// Header line; every CSV carries one.
			continue
		}

		fields := strings.Split(sc.Text(), ",")
		if len(fields) != wantFields {
			shape.add(fmt.Sprintf("%s line %d: %d fields, header has %d",
				filepath.Base(path), line, len(fields), wantFields))
		}
		if err := em.AddRow(fields); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read csv %s: %w", path, err)
	}

	return em.EndFile()
}

// shapeAgg counts row-shape anomalies, retaining the first few messages for
// the run log. The pipeline is single-threaded, so no locking is needed.
type shapeAgg struct {
	limit int
	count int64
	first []string
}

func (a *shapeAgg) add(msg string) {
	if len(a.first) < a.limit {
		a.first = append(a.first, msg)
	}
	a.count++
}
