// Package metrics provides timing instrumentation for rv.
//
// Timings are collected in-memory with atomic operations and dumped through
// the debug logger when a command finishes. Collection is enabled by default
// but can be disabled via RV_METRICS=0.
//
// Usage:
//
//	func SaveSnapshot(v *voting.Voting) error {
//	    defer metrics.Timer(metrics.SnapshotSave)()
//	    // ...
//	}
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

var enabled = os.Getenv("RV_METRICS") != "0"

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of metrics collection.
func SetEnabled(e bool) {
	enabled = e
}

// TimingMetric tracks count, total and worst-case time of one operation.
type TimingMetric struct {
	name    string
	count   atomic.Int64
	totalNs atomic.Int64
	maxNs   atomic.Int64
}

// Record adds one measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !enabled {
		return
	}
	ns := d.Nanoseconds()
	m.count.Add(1)
	m.totalNs.Add(ns)
	for {
		old := m.maxNs.Load()
		if ns <= old || m.maxNs.CompareAndSwap(old, ns) {
			return
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string { return m.name }

// Count returns the number of recorded measurements.
func (m *TimingMetric) Count() int64 { return m.count.Load() }

// Stats returns a consistent-enough copy of the current numbers.
func (m *TimingMetric) Stats() TimingStats {
	count := m.count.Load()
	total := m.totalNs.Load()
	var avg time.Duration
	if count > 0 {
		avg = time.Duration(total / count)
	}
	return TimingStats{
		Name:  m.name,
		Count: count,
		Total: time.Duration(total),
		Avg:   avg,
		Max:   time.Duration(m.maxNs.Load()),
	}
}

// Reset clears all recorded measurements.
func (m *TimingMetric) Reset() {
	m.count.Store(0)
	m.totalNs.Store(0)
	m.maxNs.Store(0)
}

// TimingStats is a snapshot of one metric.
type TimingStats struct {
	Name  string        `json:"name"`
	Count int64         `json:"count"`
	Total time.Duration `json:"total"`
	Avg   time.Duration `json:"avg"`
	Max   time.Duration `json:"max"`
}

// Timer returns a function that records elapsed time when called.
func Timer(m *TimingMetric) func() {
	if !enabled || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.Record(time.Since(start))
	}
}

// Global timing metrics.
var (
	SnapshotSave = &TimingMetric{name: "snapshot_save"}
	SnapshotLoad = &TimingMetric{name: "snapshot_load"}
	UIRender     = &TimingMetric{name: "ui_render"}
)

// All returns every registered metric.
func All() []*TimingMetric {
	return []*TimingMetric{SnapshotSave, SnapshotLoad, UIRender}
}

// ResetAll resets all timing metrics.
func ResetAll() {
	for _, m := range All() {
		m.Reset()
	}
}

// AllStats returns stats for metrics that have data.
func AllStats() []TimingStats {
	var stats []TimingStats
	for _, m := range All() {
		if m.Count() > 0 {
			stats = append(stats, m.Stats())
		}
	}
	return stats
}
