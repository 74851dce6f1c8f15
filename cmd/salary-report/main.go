// Command salary-report prints a dashboard, a comparison or a take-home
// estimate as JSON without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	app "github.com/platypussharry/physician-salary-dashboard-sub000/internal/app"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/config"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/report"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/takehome"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("salary-report", flag.ContinueOnError)
	var (
		data         = fs.String("data", "", "dataset file (.xlsx or .json); overrides the configured store")
		specialty    = fs.String("specialty", "", "specialty filter")
		subspecialty = fs.String("subspecialty", "", "subspecialty filter")
		region       = fs.String("region", "", "region or state filter")
		practice     = fs.String("practice", "", "practice setting filter")
		compare      = fs.String("compare", "", "compensation to compare, e.g. \"$350,000\"")
		years        = fs.Int("years", 0, "years of experience for -compare")
		state        = fs.String("state", "", "state for -compare and -gross")
		gross        = fs.String("gross", "", "gross salary for a take-home estimate")
		status       = fs.String("status", string(takehome.Single), "filing status for -gross: single or married_joint")
		retirement   = fs.String("retirement", "0", "pre-tax retirement contribution for -gross")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if *data != "" {
		cfg.StoreDriver = config.DriverFile
		cfg.DatasetPath = *data
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel), logger.WithOutput(os.Stderr)); err != nil {
		return err
	}
	log := logger.Get()

	store, err := app.OpenStore(ctx, cfg, log.Named("store"))
	if err != nil {
		return err
	}
	svc := app.New(append(app.FromConfig(cfg),
		app.WithStore(store, cfg.StoreDriver),
		app.WithLogger(log.Named("service")),
	)...)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	var result any
	switch {
	case *gross != "":
		in, err := takeHomeInput(*gross, *retirement, *status, *state)
		if err != nil {
			return err
		}
		if result, err = svc.TakeHome(ctx, in); err != nil {
			return err
		}
	case *compare != "":
		m, err := svc.Compare(ctx, report.ComparisonInput{
			Compensation:      *compare,
			Specialty:         *specialty,
			Subspecialty:      *subspecialty,
			YearsOfExperience: *years,
			State:             *state,
			Region:            *region,
			PracticeSetting:   *practice,
		})
		if err != nil {
			return err
		}
		result = m
	default:
		d, err := svc.Dashboard(ctx, model.FilterCriteria{
			Specialty:       *specialty,
			Subspecialty:    *subspecialty,
			Region:          *region,
			PracticeSetting: *practice,
		})
		if err != nil {
			return err
		}
		result = d
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func takeHomeInput(gross, retirement, status, state string) (takehome.Input, error) {
	g, err := decimal.NewFromString(gross)
	if err != nil {
		return takehome.Input{}, fmt.Errorf("invalid -gross %q: %w", gross, err)
	}
	r, err := decimal.NewFromString(retirement)
	if err != nil {
		return takehome.Input{}, fmt.Errorf("invalid -retirement %q: %w", retirement, err)
	}
	return takehome.Input{
		GrossSalary:            g,
		Status:                 takehome.FilingStatus(status),
		State:                  state,
		RetirementContribution: r,
	}, nil
}
