package sqlgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"csv2sql/internal/metrics"
	"csv2sql/internal/schema/ddl"
)

// Emitter accumulates row tuples into fixed-size batches and writes one
// multi-row INSERT statement per batch to the underlying script writer.
//
// Batches never carry across CSV file boundaries: EndFile flushes the
// trailing partial batch of the current file before the next file begins.
// The Emitter is single-writer and not safe for concurrent use; the pipeline
// runs strictly sequentially.
type Emitter struct {
	w             *bufio.Writer
	run           string
	table         string
	batchSize     int
	progressEvery int
	log           zerolog.Logger

	batch      []string
	curFile    string
	fileRows   int64
	totalRows  int64
	statements int64
}

// NewEmitter returns an Emitter writing to w. batchSize must be at least 1.
func NewEmitter(w io.Writer, run, table string, batchSize, progressEvery int, log zerolog.Logger) (*Emitter, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("sqlgen: batch size must be at least 1, got %d", batchSize)
	}
	return &Emitter{
		w:             bufio.NewWriter(w),
		run:           run,
		table:         table,
		batchSize:     batchSize,
		progressEvery: progressEvery,
		log:           log,
		batch:         make([]string, 0, batchSize),
	}, nil
}

// WritePreamble writes the DDL header of the script: database guard, table
// drop-and-recreate, and the insert section comment.
func (e *Emitter) WritePreamble(database string, cols []ddl.Column) error {
	pre, err := ddl.BuildScriptPreamble(database, e.table, cols)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, pre); err != nil {
		return fmt.Errorf("sqlgen: write preamble: %w", err)
	}
	if _, err := fmt.Fprintf(e.w, "-- SQL script for inserting data into %s\n", e.table); err != nil {
		return fmt.Errorf("sqlgen: write preamble: %w", err)
	}
	return nil
}

// BeginFile marks the start of one CSV file's rows and writes its marker
// comment into the script.
func (e *Emitter) BeginFile(name string) error {
	e.curFile = name
	e.fileRows = 0
	if _, err := fmt.Fprintf(e.w, "-- Processing %s...\n", name); err != nil {
		return fmt.Errorf("sqlgen: write file marker: %w", err)
	}
	return nil
}

// AddRow appends one data row to the current batch, flushing a full INSERT
// statement when the batch reaches the configured size.
func (e *Emitter) AddRow(fields []string) error {
	e.batch = append(e.batch, RowToTuple(fields))
	e.fileRows++
	e.totalRows++

	if e.progressEvery > 0 && e.totalRows%int64(e.progressEvery) == 0 {
		e.log.Info().
			Int64("rows", e.totalRows).
			Str("file", e.curFile).
			Msg("emit progress")
	}

	if len(e.batch) >= e.batchSize {
		return e.flush()
	}
	return nil
}

// EndFile flushes the trailing partial batch of the current file, if any, and
// logs file completion. A file with zero data rows emits no INSERT statement.
func (e *Emitter) EndFile() error {
	if err := e.flush(); err != nil {
		return err
	}
	e.log.Info().
		Str("file", e.curFile).
		Int64("rows", e.fileRows).
		Msg("file emitted")
	metrics.RecordRows(e.run, "emitted", e.fileRows)
	return nil
}

// Finish writes the script trailer and flushes buffered output. The caller
// must have ended the last file first.
func (e *Emitter) Finish() error {
	if len(e.batch) > 0 {
		if err := e.flush(); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(e.w, "GO\n"); err != nil {
		return fmt.Errorf("sqlgen: write trailer: %w", err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("sqlgen: flush script: %w", err)
	}
	return nil
}

// TotalRows reports the number of data rows emitted so far.
func (e *Emitter) TotalRows() int64 { return e.totalRows }

// Statements reports the number of INSERT statements written so far.
func (e *Emitter) Statements() int64 { return e.statements }

// flush writes the current batch as one multi-row INSERT statement.
func (e *Emitter) flush() error {
	if len(e.batch) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(e.w, "INSERT INTO %s VALUES %s;\n",
		ddl.QuoteIdent(e.table), strings.Join(e.batch, ", "))
	if err != nil {
		return fmt.Errorf("sqlgen: write insert: %w", err)
	}
	e.batch = e.batch[:0]
	e.statements++
	metrics.RecordBatches(e.run, 1)
	return nil
}
