// Package progress throttles the per-iteration debug logging of benchmark
// outer loops so a tight loop never floods the log.
package progress

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/utkarsh5026/devbench/internal/budget"
)

// Interval is the minimum spacing between two iteration log lines.
const Interval = time.Second

// Logger is owned by a single benchmark run.
type Logger struct {
	log   *slog.Logger
	every rate.Sometimes
}

// New returns a throttled logger for one benchmark. A nil l discards.
func New(l *slog.Logger, benchmark string) *Logger {
	return &Logger{
		log:   OrDiscard(l).With(slog.String("benchmark", benchmark)),
		every: rate.Sometimes{First: 1, Interval: Interval},
	}
}

// OrDiscard returns l, or a logger that drops every record when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

// Iteration logs the running unit total at most once per Interval.
func (p *Logger) Iteration(iter int, total uint64) {
	p.every.Do(func() {
		p.log.Debug("bench: iteration", slog.Int("iter", iter), slog.Uint64("units", total))
	})
}

// Done logs the end of the run at debug level.
func (p *Logger) Done(iters int, c budget.Count, elapsed time.Duration) {
	p.log.Debug("bench: finished",
		slog.Int("iters", iters),
		slog.Uint64("units", c.Units),
		slog.Bool("interrupted", c.Interrupted),
		slog.Duration("elapsed", elapsed),
	)
}

// Logger returns the underlying structured logger.
func (p *Logger) Logger() *slog.Logger {
	return p.log
}
