package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const dataset = `[
  {"id":"1","specialty":"Cardiology","state":"CA","total_compensation":"$300,000"},
  {"id":"2","specialty":"Cardiology","state":"TX","total_compensation":320000},
  {"id":"3","specialty":"Cardiology","state":"NY","total_compensation":310000},
  {"id":"4","specialty":"Cardiology","state":"OH","total_compensation":290000},
  {"id":"5","specialty":"Dermatology","state":"OR","total_compensation":420000}
]`

func writeDataset(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "salaries.json")
	if err := os.WriteFile(path, []byte(dataset), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	Convey("Given a dataset file", t, func() {
		ctx := context.Background()
		path := writeDataset(t)
		var out bytes.Buffer

		Convey("When printing the dashboard", func() {
			err := run(ctx, []string{"-data", path, "-specialty", "Cardiology", "-region", "west"}, &out)

			Convey("Then it is filtered and encoded as JSON", func() {
				So(err, ShouldBeNil)
				var body map[string]any
				So(json.Unmarshal(out.Bytes(), &body), ShouldBeNil)
				So(body["filtered_count"], ShouldEqual, 1.0)
				So(body["average_salary"], ShouldEqual, 300000.0)
			})
		})

		Convey("When comparing a compensation", func() {
			err := run(ctx, []string{"-data", path, "-specialty", "Cardiology", "-compare", "$305,000", "-years", "10"}, &out)

			Convey("Then the comparison is printed", func() {
				So(err, ShouldBeNil)
				var body map[string]any
				So(json.Unmarshal(out.Bytes(), &body), ShouldBeNil)
				So(body["grade"], ShouldEqual, "B+")
				So(body["cohort_size"], ShouldEqual, 4.0)
			})
		})

		Convey("When estimating take-home pay", func() {
			err := run(ctx, []string{"-data", path, "-gross", "300000", "-state", "TX"}, &out)

			Convey("Then the breakdown is printed", func() {
				So(err, ShouldBeNil)
				var body map[string]any
				So(json.Unmarshal(out.Bytes(), &body), ShouldBeNil)
				So(body["net_annual"], ShouldEqual, "214032.05")
			})
		})

		Convey("When the gross salary is not a number", func() {
			err := run(ctx, []string{"-data", path, "-gross", "lots"}, &out)
			So(err, ShouldNotBeNil)
		})

		Convey("When a flag is unknown", func() {
			err := run(ctx, []string{"-nope"}, &out)
			So(err, ShouldEqual, errUsage)
		})
	})
}
