package metrics

import "sync/atomic"

// Counters holds running totals for the compression pipeline. All
// updates are lock-free atomic adds, so concurrent requests never
// lose increments; only the aggregate totals are meaningful.
type Counters struct {
	requests atomic.Int64
	bytes    atomic.Int64
}

// Snapshot is the read-only view served by GET /metrics.
type Snapshot struct {
	RequestsProcessed int64 `json:"requests_processed"`
	BytesProcessed    int64 `json:"bytes_processed"`
}

// Record adds one completed compression and its input size.
func (c *Counters) Record(inputBytes int) {
	c.requests.Add(1)
	c.bytes.Add(int64(inputBytes))
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		RequestsProcessed: c.requests.Load(),
		BytesProcessed:    c.bytes.Load(),
	}
}

// std is the process-wide counter set. It lives for the process
// lifetime and is never persisted.
var std Counters

// Record adds one completed compression to the process-wide counters.
func Record(inputBytes int) { std.Record(inputBytes) }

// Current returns a snapshot of the process-wide counters.
func Current() Snapshot { return std.Snapshot() }
