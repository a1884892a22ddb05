// Package report turns per-iteration measurements into the immutable
// summaries returned by every benchmark family.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/utkarsh5026/devbench/internal/budget"
)

// Unit names used by the throughput reports.
const (
	UnitBytes = "bytes"
	UnitOps   = "ops"
)

// Throughput is the result of a time-boxed benchmark: how many units were
// performed over how long.
type Throughput struct {
	Name      string
	Unit      string
	Duration  time.Duration
	Units     uint64
	PerSecond float64
}

func (t Throughput) String() string {
	rate := math.Floor(t.PerSecond)
	if t.Unit == UnitBytes {
		return fmt.Sprintf("%s ... %s/s", t.Name, humanize.IBytes(uint64(rate)))
	}
	return fmt.Sprintf("%s ... %s %s/s", t.Name, humanize.Comma(int64(rate)), t.Unit)
}

// ThroughputBuilder accumulates elapsed time and unit counts across the
// iterations of one benchmark run. It is owned by a single run.
type ThroughputBuilder struct {
	name     string
	unit     string
	duration time.Duration
	units    uint64
}

// NewThroughput starts an empty builder.
func NewThroughput(name, unit string) *ThroughputBuilder {
	return &ThroughputBuilder{name: name, unit: unit}
}

// Add folds one timed iteration in. Interrupted counts are added too: the
// work they report was really done.
func (b *ThroughputBuilder) Add(elapsed time.Duration, c budget.Count) {
	b.duration += elapsed
	b.units += c.Units
}

// AddUnits folds in units without timing them, for runs measured over the
// whole wall-clock window instead of per iteration.
func (b *ThroughputBuilder) AddUnits(c budget.Count) {
	b.units += c.Units
}

// Units returns the units accumulated so far.
func (b *ThroughputBuilder) Units() uint64 {
	return b.units
}

// Build summarizes over the accumulated per-iteration time.
func (b *ThroughputBuilder) Build() Throughput {
	return b.BuildOver(b.duration)
}

// BuildOver summarizes over the given wall time.
func (b *ThroughputBuilder) BuildOver(wall time.Duration) Throughput {
	t := Throughput{
		Name:     b.name,
		Unit:     b.unit,
		Duration: wall,
		Units:    b.units,
	}
	if wall > 0 {
		t.PerSecond = float64(b.units) / wall.Seconds()
	}
	return t
}
