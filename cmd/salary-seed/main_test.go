package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given an output path", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		convey.Convey("When writing a workbook", func() {
			path := filepath.Join(dir, "seed.xlsx")
			err := run(ctx, []string{"-rows", "25", "-seed", "3", "-out", path, "-log-level", "error"})

			convey.Convey("Then the loader reads every row back", func() {
				convey.So(err, convey.ShouldBeNil)
				rows, err := repository.Load(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 25)
			})
		})

		convey.Convey("When writing JSON", func() {
			path := filepath.Join(dir, "seed.json")
			convey.So(run(ctx, []string{"-rows", "10", "-out", path, "-log-level", "error"}), convey.ShouldBeNil)

			rows, err := repository.Load(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(rows, convey.ShouldHaveLength, 10)
		})

		convey.Convey("When the output format is unsupported", func() {
			err := run(ctx, []string{"-rows", "1", "-out", filepath.Join(dir, "seed.csv"), "-log-level", "error"})
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the flags are malformed", func() {
			err := run(ctx, []string{"-rows", "many"})
			convey.So(err, convey.ShouldEqual, errUsage)
		})
	})
}
