package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lightweight per-tick CPU profiler. Durations are kept as per-tick totals for
// quick log lines and are also exported as a Prometheus histogram.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)

	registry = prometheus.NewRegistry()

	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voxel",
		Name:      "operation_duration_seconds",
		Help:      "Time spent in tracked voxel operations.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"op"})

	// BlockEdits counts accepted grid edits by kind (set, fill, break, place, load).
	BlockEdits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Name:      "block_edits_total",
		Help:      "Accepted chunk edits by kind.",
	}, []string{"kind"})

	// RejectedEdits counts edits refused by validation.
	RejectedEdits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxel",
		Name:      "rejected_edits_total",
		Help:      "Chunk edits rejected by validation.",
	}, []string{"kind"})
)

func init() {
	registry.MustRegister(operationDuration, BlockEdits, RejectedEdits)
}

// Registry returns the registry holding every metric of this module.
func Registry() *prometheus.Registry {
	return registry
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		operationDuration.WithLabelValues(name).Observe(d.Seconds())
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears current per-tick totals. Call at the start of each tick.
func ResetFrame() {
	mu.Lock()
	for k := range frameTotals {
		delete(frameTotals, k)
	}
	mu.Unlock()
}

// Snapshot returns a copy of current per-tick totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats top N durations from the current totals.
// Example: "meshing.Build:4.2ms, physics.Raycast:0.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}
