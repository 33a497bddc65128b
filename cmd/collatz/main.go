// Command collatz reads whitespace-separated positive integers from stdin
// and prints the stopping time of each, one per line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hupe1980/collatzgo"
	"github.com/hupe1980/collatzgo/prommetrics"
)

func main() {
	// Process strategies start this binary again as their workers.
	if collatzgo.IsWorker() {
		os.Exit(collatzgo.ServeWorker())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("collatz", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "YAML configuration file")
		strategy    = fs.String("strategy", "", "concurrency strategy (wave-threads, static-threads, thread-pool, wave-processes, static-processes, async)")
		workers     = fs.Int("workers", 0, "wave size, worker count or pool size")
		memoize     = fs.Bool("memo", false, "enable memoization")
		capacity    = fs.Int("capacity", 0, "partial cache slots for memoizing process strategies")
		memoryLimit = fs.Int64("memory-limit", 0, "shared memory budget in bytes (0 = unlimited)")
		logLevel    = fs.String("log-level", "", "log level (debug, info, warn, error)")
		logFormat   = fs.String("log-format", "", "log format (text, json)")
		metrics     = fs.Bool("metrics", false, "write Prometheus metrics to stderr after the run")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := collatzgo.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = collatzgo.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(stderr, "collatz:", err)
			return 2
		}
	}

	// Flags given on the command line override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			cfg.Strategy = collatzgo.Strategy(*strategy)
		case "workers":
			cfg.Workers = *workers
		case "memo":
			cfg.Memoize = *memoize
		case "capacity":
			cfg.PartialCacheCapacity = *capacity
		case "memory-limit":
			cfg.MemoryLimitBytes = *memoryLimit
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, "collatz:", err)
		return 2
	}

	opts := []collatzgo.Option{collatzgo.WithLogger(logger)}
	reg := prometheus.NewRegistry()
	if *metrics {
		opts = append(opts, collatzgo.WithMetricsCollector(prommetrics.New(reg)))
	}

	solver, err := collatzgo.New(cfg, opts...)
	if err != nil {
		fmt.Fprintln(stderr, "collatz:", err)
		return 2
	}

	batch, err := collatzgo.ReadBatch(stdin)
	if err != nil {
		fmt.Fprintln(stderr, "collatz:", err)
		return 1
	}

	results, runErr := solver.Run(ctx, batch)
	if runErr == nil {
		if err := collatzgo.WriteResults(stdout, results); err != nil {
			fmt.Fprintln(stderr, "collatz:", err)
			return 1
		}
	}

	if *metrics {
		if err := writeMetrics(stderr, reg); err != nil {
			fmt.Fprintln(stderr, "collatz: metrics:", err)
		}
	}

	if runErr != nil {
		fmt.Fprintln(stderr, "collatz:", runErr)
		return 1
	}
	return 0
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
