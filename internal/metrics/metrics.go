// Package metrics provides counters for sitemap generation runs.
package metrics

import (
	"sync"
	"time"
)

// Metrics holds the generation metrics for a run.
type Metrics struct {
	// EntriesEncoded is the number of URL entries encoded.
	EntriesEncoded int64
	// DocumentsWritten is the number of sitemap files written.
	DocumentsWritten int64
	// BytesWritten is the total encoded fragment size.
	BytesWritten int64
	// ErrorCount is the number of entries that failed to encode.
	ErrorCount int64
	// StartTime is when the run began.
	StartTime time.Time
	// LastEntryTime is the time of the last successful encode.
	LastEntryTime time.Time

	mu sync.Mutex
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// RecordEntry records one encoded entry of the given size.
func (m *Metrics) RecordEntry(bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesEncoded++
	m.BytesWritten += int64(bytes)
	m.LastEntryTime = time.Now()
}

// RecordError records one failed entry.
func (m *Metrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCount++
}

// RecordDocuments records the number of sitemap files written.
func (m *Metrics) RecordDocuments(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DocumentsWritten = int64(count)
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		EntriesEncoded:   m.EntriesEncoded,
		DocumentsWritten: m.DocumentsWritten,
		BytesWritten:     m.BytesWritten,
		ErrorCount:       m.ErrorCount,
		Elapsed:          time.Since(m.StartTime),
	}
}

// Snapshot is a point-in-time copy of the run counters.
type Snapshot struct {
	EntriesEncoded   int64
	DocumentsWritten int64
	BytesWritten     int64
	ErrorCount       int64
	Elapsed          time.Duration
}
