// Command salary-seed writes a synthetic salary dataset that the file store
// driver and salary-report can load.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/seed"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("salary-seed", flag.ContinueOnError)
	var (
		rows    = fs.Int("rows", 5000, "number of submissions to generate")
		seedVal = fs.Uint64("seed", uint64(time.Now().UnixNano()), "random seed; equal seeds give equal datasets")
		workers = fs.Int("workers", runtime.NumCPU(), "parallel generators")
		messy   = fs.Bool("messy", true, "mix in hand-entry formatting noise")
		out     = fs.String("out", "salaries.xlsx", "output file (.xlsx or .json)")
		level   = fs.String("log-level", "info", "log level")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := logger.Init(logger.WithLevel(*level), logger.WithOutput(os.Stderr)); err != nil {
		return err
	}
	log := logger.Get().Named("salary-seed")

	start := time.Now()
	data, err := seed.Generate(ctx, seed.Config{
		Rows:    *rows,
		Seed:    *seedVal,
		Workers: *workers,
		Messy:   *messy,
	})
	if err != nil {
		return err
	}
	if err := repository.Save(*out, data); err != nil {
		return err
	}

	log.Info(ctx, "dataset written",
		logger.String("path", *out),
		logger.Int("rows", len(data)),
		logger.Any("seed", *seedVal),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}
