package seed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/normalize"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/seed"
	. "github.com/smartystreets/goconvey/convey"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestGenerate(t *testing.T) {
	Convey("Given a seeded configuration", t, func() {
		ctx := context.Background()
		cfg := seed.Config{Rows: 1200, Seed: 42, Workers: 4, Now: fixedNow}

		rows, err := seed.Generate(ctx, cfg)
		So(err, ShouldBeNil)

		Convey("Then it yields the requested number of rows with unique ids", func() {
			So(rows, ShouldHaveLength, 1200)
			seen := make(map[any]bool, len(rows))
			for _, r := range rows {
				So(seen[r.ID], ShouldBeFalse)
				seen[r.ID] = true
			}
		})

		Convey("Then equal seeds reproduce the rows regardless of parallelism", func() {
			cfg.Workers = 1
			again, err := seed.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			So(again, ShouldResemble, rows)
		})

		Convey("Then clean rows normalize to valid submissions", func() {
			n := normalize.New(normalize.WithClock(func() time.Time { return fixedNow }))
			for _, s := range n.NormalizeAll(rows) {
				So(s.HasValidCompensation(), ShouldBeTrue)
				So(s.Region, ShouldNotEqual, model.RegionUnknown)
				So(s.PracticeSetting, ShouldNotEqual, model.PracticeUnknown)
				So(s.SubmittedAt.After(fixedNow), ShouldBeFalse)
				So(s.TotalCompensation, ShouldAlmostEqual, s.BaseSalary+s.Bonus, 0.01)
			}
		})
	})

	Convey("Given messy generation", t, func() {
		rows, err := seed.Generate(context.Background(), seed.Config{Rows: 2000, Seed: 7, Workers: 2, Messy: true, Now: fixedNow})
		So(err, ShouldBeNil)

		Convey("Then some rows carry formatted or missing amounts", func() {
			var formatted, missing int
			for _, r := range rows {
				switch v := r.TotalCompensation.(type) {
				case string:
					if v != "N/A" {
						formatted++
					}
				case nil:
					missing++
				}
			}
			So(formatted, ShouldBeGreaterThan, 0)
			So(missing, ShouldBeGreaterThan, 0)
		})

		Convey("Then regions still resolve for every row", func() {
			n := normalize.New()
			for _, s := range n.NormalizeAll(rows) {
				So(s.Region, ShouldNotEqual, model.RegionUnknown)
			}
		})
	})

	Convey("Given invalid configurations", t, func() {
		_, err := seed.Generate(context.Background(), seed.Config{Rows: -1, Workers: 1})
		So(errors.Is(err, seed.ErrInvalidConfig), ShouldBeTrue)

		_, err = seed.Generate(context.Background(), seed.Config{Rows: 1})
		So(errors.Is(err, seed.ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := seed.Generate(ctx, seed.Config{Rows: 10, Workers: 1})
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}
