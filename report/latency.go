package report

import (
	"fmt"
	"slices"
	"time"
)

// Latency summarizes a fixed-iteration benchmark phase. Mean is the headline
// figure; the percentiles show how the iterations were spread.
type Latency struct {
	Name    string
	Samples int
	Mean    time.Duration
	P50     time.Duration
	P95     time.Duration
	P99     time.Duration
}

func (l Latency) String() string {
	return fmt.Sprintf("%s ... %.6f s", l.Name, l.Mean.Seconds())
}

// LatencyBuilder collects one duration per iteration.
type LatencyBuilder struct {
	name    string
	samples []time.Duration
}

// NewLatency starts a builder sized for iters samples.
func NewLatency(name string, iters int) *LatencyBuilder {
	return &LatencyBuilder{
		name:    name,
		samples: make([]time.Duration, 0, max(iters, 0)),
	}
}

// Add records one iteration.
func (b *LatencyBuilder) Add(d time.Duration) {
	b.samples = append(b.samples, d)
}

// Build computes the summary. An empty builder yields zero durations.
func (b *LatencyBuilder) Build() Latency {
	l := Latency{Name: b.name, Samples: len(b.samples)}
	if len(b.samples) == 0 {
		return l
	}

	var total time.Duration
	for _, d := range b.samples {
		total += d
	}
	l.Mean = total / time.Duration(len(b.samples))

	sorted := slices.Clone(b.samples)
	slices.Sort(sorted)
	l.P50, l.P95, l.P99 = percentiles(sorted)

	return l
}

// percentiles computes P50, P95, P99 from latencies sorted ascending.
func percentiles(sorted []time.Duration) (p50, p95, p99 time.Duration) {
	n := len(sorted)
	if n == 0 {
		return 0, 0, 0
	}

	at := func(pct int) time.Duration {
		return sorted[min(n*pct/100, n-1)]
	}

	return at(50), at(95), at(99)
}
