// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline and loader.
//
// It exposes a narrow Backend interface focused on counters and durations,
// with a global, pluggable backend defaulting to a no-op implementation so
// metric calls are always safe even when nothing is configured. Concrete
// systems (Prometheus Pushgateway) are isolated in subpackages; the rest of
// the codebase depends only on this interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style observation.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics stay optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)      {}
func (nopBackend) ObserveDuration(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                              { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
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

// RecordStep measures one pipeline or loader step: latency plus a
// success/failure counter.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("etl_step_total", 1, lbls)
	backend.ObserveDuration("etl_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a record-level counter for the given job and kind.
//
// Typical kinds mirror the run report fields, e.g.:
//   - "sales_parsed"
//   - "sales_filtered"
//   - "customers_parsed"
//   - "enriched"
//   - "loaded"
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("etl_records_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordTable counts one finished table load with its outcome.
func RecordTable(job, table string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	backend.IncCounter("etl_tables_total", 1, Labels{
		"job":    job,
		"table":  table,
		"status": status,
	})
}
