package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/devbench/capability"
	"github.com/utkarsh5026/devbench/report"
)

func printHeader(out io.Writer, caps capability.Record, multithread bool) {
	mode := "single-threaded"
	if multithread {
		mode = fmt.Sprintf("multithreaded, %d workers", caps.Workers())
	}

	_, _ = bold.Fprintf(out, "devbench (%s)\n\n", mode)

	table := tablewriter.NewWriter(out)
	table.Header("Cores", "SVE", "I8MM", "Total RAM", "Available Storage")
	_ = table.Append(
		strconv.Itoa(caps.Cores),
		yesNo(caps.SVE),
		yesNo(caps.I8MM),
		humanize.IBytes(caps.TotalRAM),
		humanize.IBytes(caps.AvailStorage),
	)
	_ = table.Render()
}

func printSection(out io.Writer, title string) {
	_, _ = fmt.Fprintln(out)
	_, _ = bold.Fprintln(out, title)
}

func renderThroughput(out io.Writer, results ...report.Throughput) {
	table := tablewriter.NewWriter(out)
	table.Header("Benchmark", "Units", "Measured", "Rate")

	for _, r := range results {
		_ = table.Append(
			r.Name,
			humanize.Comma(int64(r.Units)),
			r.Duration.Round(time.Millisecond).String(),
			formatRate(r),
		)
	}

	if err := table.Render(); err != nil {
		_, _ = red.Fprintln(out, "error rendering throughput table")
	}
}

func renderLatency(out io.Writer, results ...report.Latency) {
	table := tablewriter.NewWriter(out)
	table.Header("Benchmark", "Iterations", "Mean", "P50", "P95", "P99")

	for _, r := range results {
		_ = table.Append(
			r.Name,
			strconv.Itoa(r.Samples),
			formatLatency(r.Mean),
			formatLatency(r.P50),
			formatLatency(r.P95),
			formatLatency(r.P99),
		)
	}

	if err := table.Render(); err != nil {
		_, _ = red.Fprintln(out, "error rendering latency table")
	}
}

func formatRate(r report.Throughput) string {
	rate := math.Floor(r.PerSecond)
	if r.Unit == report.UnitBytes {
		return humanize.IBytes(uint64(rate)) + "/s"
	}
	return humanize.SIWithDigits(rate, 2, r.Unit+"/s")
}

// formatLatency formats a duration in the most appropriate unit.
func formatLatency(d time.Duration) string {
	if d == 0 {
		return "0"
	}

	ns := d.Nanoseconds()
	switch {
	case ns < 1000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.1fµs", float64(ns)/1000.0)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.2fms", float64(ns)/1_000_000.0)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
