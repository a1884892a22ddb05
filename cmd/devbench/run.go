package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/utkarsh5026/devbench/bench"
	"github.com/utkarsh5026/devbench/capability"
)

type group int

const (
	groupAll group = iota
	groupCPU
	groupRAM
	groupStorage
)

// families is the number of families a group runs.
func (g group) families() int {
	switch g {
	case groupCPU:
		return 3
	case groupRAM:
		return 2
	case groupStorage:
		return 1
	default:
		return len(bench.Families)
	}
}

func groupRunner(v *viper.Viper, g group) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(v)
		if err != nil {
			return err
		}

		multithread := v.GetBool("multithread")
		out := cmd.OutOrStdout()

		bar := newProgressBar(g.families())
		b := bench.New(capability.Detect(cfg.Storage.Access.Dir),
			bench.WithLogger(newLogger(v.GetBool("verbose"))),
			bench.WithOnFamily(func(f bench.Family, err error) {
				bar.Describe(fmt.Sprintf("Finished: %s", f))
				_ = bar.Add(1)
			}),
		)

		printHeader(out, b.Capability(), multithread)

		start := time.Now()
		err = runGroup(out, b, cfg, g, multithread)
		_ = bar.Finish()
		if err != nil {
			return err
		}

		_, _ = green.Fprintf(out, "\n✓ all benchmarks verified in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	}
}

func runGroup(out io.Writer, b *bench.Bench, cfg bench.Config, g group, multithread bool) error {
	switch g {
	case groupCPU:
		cpu := b.CPU
		if multithread {
			cpu = b.CPUMultithread
		}
		r, err := cpu(cfg.CPU)
		if err != nil {
			return err
		}
		renderCPU(out, r)

	case groupRAM:
		r, err := b.RAM(cfg.RAM)
		if err != nil {
			return err
		}
		renderRAM(out, r)

	case groupStorage:
		r, err := b.Storage(cfg.Storage)
		if err != nil {
			return err
		}
		renderStorage(out, r)

	default:
		all := b.All
		if multithread {
			all = b.AllMultithread
		}
		r, err := all(cfg)
		if err != nil {
			return err
		}
		renderCPU(out, r.CPU)
		renderRAM(out, r.RAM)
		renderStorage(out, r.Storage)
	}

	return nil
}

func renderCPU(out io.Writer, r bench.CPUReport) {
	printSection(out, "CPU")
	renderThroughput(out, r.Crypto, r.Math, r.Sort)
}

func renderRAM(out io.Writer, r bench.RAMReport) {
	printSection(out, "RAM")
	renderLatency(out, r.Alloc.Latency, r.Access.Sequential, r.Access.Random, r.Access.Concurrent)
}

func renderStorage(out io.Writer, r bench.StorageReport) {
	printSection(out, "STORAGE")
	renderLatency(out, r.Access.Sequential, r.Access.Random)
}

func newProgressBar(n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription("Running benchmarks"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
