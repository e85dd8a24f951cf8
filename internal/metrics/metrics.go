// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the pipeline.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//
// The primary use case is instrumentation of the pipeline stages (split,
// normalize, emit) without coupling the core logic to a specific metrics
// system.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
// It is intentionally generic so a concrete system can be plugged in later.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures latency + success/failure for one pipeline stage.
func RecordStage(run, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"run":    run,
		"stage":  stage,
		"status": status,
	}

	backend.IncCounter("csv2sql_stage_total", 1, lbls)
	backend.ObserveHistogram("csv2sql_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given run and kind.
//
// Typical kinds mirror the run summary fields, e.g.:
//   - "split"
//   - "normalized"
//   - "emitted"
//   - "shape_anomalies"
func RecordRows(run, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("csv2sql_rows_total", float64(delta), Labels{
		"run":  run,
		"kind": kind,
	})
}

// RecordBatches increments the INSERT statement counter for the given run.
func RecordBatches(run string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("csv2sql_insert_batches_total", float64(delta), Labels{
		"run": run,
	})
}
