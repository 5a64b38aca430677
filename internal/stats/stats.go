// Package stats accumulates end-to-end latencies over one reporting
// interval and samples quantiles from the sorted buffer. The buffer and
// counters reset on every snapshot; quantiles describe the interval, not
// the whole run.
package stats

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// Snapshot is one reporting interval's worth of pipeline statistics.
// Latency quantiles are microseconds.
type Snapshot struct {
	Messages      uint64  `json:"messages"`
	Updates       uint64  `json:"updates"`
	Dropped       uint64  `json:"dropped"`
	MsgsPerSec    float64 `json:"msgs_per_sec"`
	UpdatesPerSec float64 `json:"updates_per_sec"`
	P50           float64 `json:"p50_us"`
	P95           float64 `json:"p95_us"`
	P99           float64 `json:"p99_us"`
	P999          float64 `json:"p999_us"`
}

// JSON renders the snapshot as a single line for no-display mode.
func (s Snapshot) JSON() string {
	out, err := jsoniter.MarshalToString(s)
	if err != nil {
		return "{}"
	}
	return out
}

// Reporter is owned exclusively by the sink thread.
type Reporter struct {
	latencies []uint64
	updates   uint64
}

// NewReporter pre-sizes the latency buffer so steady-state intervals do not
// reallocate.
func NewReporter(capacity int) *Reporter {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	return &Reporter{
		latencies: make([]uint64, 0, capacity),
	}
}

// Record adds one book update's end-to-end latency in nanoseconds.
func (r *Reporter) Record(latencyNs uint64) {
	r.latencies = append(r.latencies, latencyNs)
	r.updates++
}

// Updates is the count recorded since the last snapshot.
func (r *Reporter) Updates() uint64 {
	return r.updates
}

// Snapshot sorts the interval's latencies in place, samples quantiles at
// floor(n*p) with p999 clamped to the last element, then resets the buffer
// and counters. messages and dropped are counted by earlier stages and
// passed in as interval deltas.
func (r *Reporter) Snapshot(elapsedNs, messages, dropped uint64) Snapshot {
	s := Snapshot{
		Messages: messages,
		Updates:  r.updates,
		Dropped:  dropped,
	}
	if elapsedNs > 0 {
		secs := float64(elapsedNs) / 1e9
		s.MsgsPerSec = float64(messages) / secs
		s.UpdatesPerSec = float64(r.updates) / secs
	}

	if n := len(r.latencies); n > 0 {
		sort.Slice(r.latencies, func(i, j int) bool { return r.latencies[i] < r.latencies[j] })
		s.P50 = float64(r.latencies[n/2]) / 1e3
		s.P95 = float64(r.latencies[n*95/100]) / 1e3
		s.P99 = float64(r.latencies[n*99/100]) / 1e3
		p999 := n * 999 / 1000
		if p999 >= n {
			p999 = n - 1
		}
		s.P999 = float64(r.latencies[p999]) / 1e3
	}

	r.latencies = r.latencies[:0]
	r.updates = 0
	return s
}
