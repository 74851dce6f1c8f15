package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/platypussharry/physician-salary-dashboard-sub000/internal/app"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/report"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/takehome"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func submissions() []model.RawSubmission {
	return []model.RawSubmission{
		{ID: "c1", Specialty: "Cardiology", State: "California", TotalCompensation: 300000, CreatedAt: "2024-05-01T00:00:00Z"},
		{ID: "c2", Specialty: "cardiology", GeographicLocation: "West", TotalCompensation: "$320,000", CreatedAt: "2024-05-02T00:00:00Z"},
		{ID: "c3", Specialty: "Cardiology", State: "TX", TotalCompensation: 310000.0, CreatedAt: "2024-05-03T00:00:00Z"},
		{ID: "c4", Specialty: "Cardiology", State: "Ohio", TotalCompensation: 0},
		{ID: "c5", Specialty: "Cardiology", State: "New York", TotalCompensation: "290000"},
		{ID: "i1", Specialty: "Interventional Cardiology", State: "Oregon", TotalCompensation: 650000},
		{ID: "d1", Specialty: "Dermatology", State: "Oregon", TotalCompensation: 420000},
	}
}

func newService(store repository.Store, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithStore(store, "memory"),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithLogger(logger.Nop()),
		service.WithPageSize(2),
	}
	return service.New(append(base, opts...)...)
}

type downStore struct{}

func (downStore) Count(context.Context, repository.Query) (int, error) {
	return 0, repository.ErrStoreUnavailable
}

func (downStore) Query(context.Context, repository.Query) ([]model.RawSubmission, error) {
	return nil, repository.ErrStoreUnavailable
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service without a store", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("Then starting fails", func() {
			So(errors.Is(svc.Start(context.Background()), service.ErrNoStore), ShouldBeTrue)
		})

		Convey("And operations report that it is not started", func() {
			_, err := svc.Dashboard(context.Background(), model.FilterCriteria{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a service over a memory store", t, func() {
		svc := newService(repository.NewMemoryStore(repository.DefaultTable, submissions()))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("Then it reports itself as started", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["store"], ShouldEqual, "memory")
			So(stats["table"], ShouldEqual, repository.DefaultTable)
		})

		Convey("When stopped", func() {
			svc.Stop()

			Convey("Then it is marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Dashboard(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newService(repository.NewMemoryStore(repository.DefaultTable, submissions()))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When filtering by specialty", func() {
			d, err := svc.Dashboard(ctx, model.FilterCriteria{Specialty: "cardiology"})

			Convey("Then only exact specialty matches are aggregated", func() {
				So(err, ShouldBeNil)
				So(d.FilteredCount, ShouldEqual, 5)
				So(d.TotalSubmissions, ShouldEqual, 4)
				So(d.AverageSalary, ShouldEqual, 305000)
			})
		})

		Convey("When filtering by region", func() {
			d, err := svc.Dashboard(ctx, model.FilterCriteria{Specialty: "Cardiology", Region: "West"})

			Convey("Then state and explicit locations both count", func() {
				So(err, ShouldBeNil)
				So(d.FilteredCount, ShouldEqual, 2)
				So(d.AverageSalary, ShouldEqual, 310000)
			})
		})

		Convey("When filtering by a state name as region", func() {
			d, err := svc.Dashboard(ctx, model.FilterCriteria{Region: "texas"})

			Convey("Then the whole region is included", func() {
				So(err, ShouldBeNil)
				So(d.FilteredCount, ShouldEqual, 1)
			})
		})

		Convey("When nothing is filtered", func() {
			d, err := svc.Dashboard(ctx, model.FilterCriteria{Specialty: "all"})

			Convey("Then every row is fetched across pages", func() {
				So(err, ShouldBeNil)
				So(d.FilteredCount, ShouldEqual, 7)
				So(svc.GetStats()["lastBatchSize"], ShouldEqual, int64(7))
				So(svc.GetStats()["dashboards"], ShouldEqual, int64(1))
			})
		})
	})

	Convey("Given states and locations in messy spellings", t, func() {
		ctx := context.Background()
		rows := []model.RawSubmission{
			{ID: "s1", Specialty: "Cardiology", State: "texas", TotalCompensation: 300000},
			{ID: "s2", Specialty: "Cardiology", State: "tx", TotalCompensation: 320000},
			{ID: "s3", Specialty: "Cardiology", State: " Texas ", TotalCompensation: 340000},
			{ID: "s4", Specialty: "Cardiology", State: "Texas", TotalCompensation: 360000},
			{ID: "n1", Specialty: "Cardiology", GeographicLocation: "north east", TotalCompensation: 400000},
			{ID: "m1", Specialty: "Cardiology", GeographicLocation: "mid west", State: "texas", TotalCompensation: 500000},
		}
		svc := newService(repository.NewMemoryStore(repository.DefaultTable, rows))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When filtering by South", func() {
			d, err := svc.Dashboard(ctx, model.FilterCriteria{Region: "South"})

			Convey("Then every spelling of a southern state is fetched", func() {
				So(err, ShouldBeNil)
				So(d.TotalSubmissions, ShouldEqual, 4)
				So(d.AverageSalary, ShouldEqual, 330000)
			})
		})

		Convey("When filtering by each region", func() {
			Convey("Then the service agrees with the core over the whole batch", func() {
				for _, r := range []string{"South", "Northeast", "north east", "Midwest", "West"} {
					c := model.FilterCriteria{Region: r}
					got, err := svc.Dashboard(ctx, c)
					So(err, ShouldBeNil)

					want := report.New().Dashboard(rows, c)
					So(got.TotalSubmissions, ShouldEqual, want.TotalSubmissions)
					So(got.AverageSalary, ShouldEqual, want.AverageSalary)
				}
			})
		})
	})

	Convey("Given a service whose store is down", t, func() {
		ctx := context.Background()
		svc := newService(downStore{})
		So(svc.Start(ctx), ShouldBeNil)

		_, err := svc.Dashboard(ctx, model.FilterCriteria{})

		Convey("Then the failure is surfaced", func() {
			So(errors.Is(err, service.ErrFetch), ShouldBeTrue)
			So(errors.Is(err, repository.ErrStoreUnavailable), ShouldBeTrue)
		})
	})
}

func TestService_Compare(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newService(repository.NewMemoryStore(repository.DefaultTable, submissions()))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a cardiologist compares at the cohort average", func() {
			m, err := svc.Compare(ctx, report.ComparisonInput{
				Compensation:      "$305,000",
				Specialty:         "Cardiology",
				YearsOfExperience: 10,
			})

			Convey("Then the cohort excludes other specialties and invalid totals", func() {
				So(err, ShouldBeNil)
				So(m.Failed(), ShouldBeFalse)
				So(m.CohortSize, ShouldEqual, 4)
				So(m.CohortAverage, ShouldEqual, 305000)
				So(m.Grade, ShouldEqual, "B+")
				So(svc.GetStats()["comparisons"], ShouldEqual, int64(1))
			})
		})

		Convey("When the specialty has too few submissions", func() {
			m, err := svc.Compare(ctx, report.ComparisonInput{
				Compensation: "400000",
				Specialty:    "Dermatology",
			})

			Convey("Then the model explains the shortfall", func() {
				So(err, ShouldBeNil)
				So(m.Failed(), ShouldBeTrue)
				So(m.Error, ShouldContainSubstring, "Not enough data")
				So(svc.GetStats()["insufficient"], ShouldEqual, int64(1))
			})
		})

		Convey("When the input is invalid", func() {
			m, err := svc.Compare(ctx, report.ComparisonInput{Compensation: "abc", Specialty: "Cardiology"})

			Convey("Then the model carries the validation message", func() {
				So(err, ShouldBeNil)
				So(m.Failed(), ShouldBeTrue)
				So(svc.GetStats()["invalidInputs"], ShouldEqual, int64(1))
			})
		})
	})

	Convey("Given a service whose store is down", t, func() {
		ctx := context.Background()
		svc := newService(downStore{})
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Then valid input surfaces the store failure", func() {
			_, err := svc.Compare(ctx, report.ComparisonInput{Compensation: "300000", Specialty: "Cardiology"})
			So(errors.Is(err, service.ErrFetch), ShouldBeTrue)
		})

		Convey("Then invalid input is rejected without touching the store", func() {
			m, err := svc.Compare(ctx, report.ComparisonInput{Compensation: "300000"})
			So(err, ShouldBeNil)
			So(m.Failed(), ShouldBeTrue)
		})
	})
}

func TestService_TakeHome(t *testing.T) {
	Convey("Given a started service with a custom state rate", t, func() {
		ctx := context.Background()
		svc := newService(
			repository.NewMemoryStore(repository.DefaultTable, nil),
			service.WithStateTaxRates(map[string]float64{"NY": 10}),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When estimating a New York salary", func() {
			r, err := svc.TakeHome(ctx, takehome.Input{
				GrossSalary: decimal.NewFromInt(100000),
				Status:      takehome.Single,
				State:       "New York",
			})

			Convey("Then the configured rate applies", func() {
				So(err, ShouldBeNil)
				So(r.StateTax.StringFixed(2), ShouldEqual, "10000.00")
				So(svc.GetStats()["takeHomes"], ShouldEqual, int64(1))
			})
		})

		Convey("When the gross salary is not positive", func() {
			_, err := svc.TakeHome(ctx, takehome.Input{GrossSalary: decimal.Zero})

			Convey("Then the input is rejected", func() {
				So(errors.Is(err, takehome.ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}
