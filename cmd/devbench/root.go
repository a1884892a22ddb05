package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	exit = os.Exit

	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Execute runs the root command and exits non-zero on any failure.
func Execute() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		_, _ = red.Fprintf(os.Stderr, "✗ %v\n", err)
		exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "devbench",
		Short: "Benchmark the compute, memory and storage of this device",
		Long: `devbench runs time-boxed, self-verifying benchmarks: AES-256 and
hashing, recursive matrix multiplication, merge sort, RAM allocation and
access patterns, and synced file I/O. Every timed computation is checked,
so a broken fast path fails instead of reporting a high score.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./devbench.yaml if present)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.BoolP("multithread", "m", false, "run the multithreaded compute benchmarks")
	flags.DurationP("duration", "d", 10*time.Second, "time budget of each compute benchmark")
	flags.Uint64("seed", 0, "seed for all random data (0 picks a random seed)")
	flags.String("dir", "", "directory for the storage benchmark file (default is the system temp dir)")
	flags.Bool("pin", false, "pin concurrent RAM access workers to cores")

	for _, name := range []string{"verbose", "multithread", "duration", "seed", "dir", "pin"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	runAll := groupRunner(v, groupAll)
	root.RunE = runAll

	root.AddCommand(
		&cobra.Command{Use: "cpu", Short: "Run the crypto, math and sort benchmarks", RunE: groupRunner(v, groupCPU)},
		&cobra.Command{Use: "ram", Short: "Run the RAM allocation and access benchmarks", RunE: groupRunner(v, groupRAM)},
		&cobra.Command{Use: "storage", Short: "Run the storage access benchmark", RunE: groupRunner(v, groupStorage)},
		&cobra.Command{Use: "all", Short: "Run every benchmark", RunE: runAll},
	)

	return root
}

// initConfig reads the config file and DEVBENCH_* environment variables.
// A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("devbench")
	}

	v.SetEnvPrefix("DEVBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger writes to stderr. Without verbose only warnings and errors are
// shown so the progress bar stays readable.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
