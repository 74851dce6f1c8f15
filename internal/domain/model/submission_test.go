package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRawSubmission_Decode(t *testing.T) {
	convey.Convey("Given a loosely typed store row", t, func() {
		row := `{
			"id": 42,
			"specialty": "Cardiology",
			"base_salary": "$300,000",
			"bonus_incentives": 25000,
			"total_compensation": null,
			"would_choose_again": "yes",
			"unexpected_column": {"nested": true}
		}`

		convey.Convey("When decoding into a RawSubmission", func() {
			var raw model.RawSubmission
			err := json.Unmarshal([]byte(row), &raw)

			convey.Convey("Then mixed field types are accepted as-is", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(raw.ID, convey.ShouldEqual, float64(42))
				convey.So(raw.BaseSalary, convey.ShouldEqual, "$300,000")
				convey.So(raw.BonusIncentives, convey.ShouldEqual, float64(25000))
				convey.So(raw.TotalCompensation, convey.ShouldBeNil)
				convey.So(raw.WouldChooseAgain, convey.ShouldEqual, "yes")
			})
		})
	})
}

func TestSubmission_HasValidCompensation(t *testing.T) {
	convey.Convey("Given canonical submissions", t, func() {
		convey.So(model.Submission{TotalCompensation: 1}.HasValidCompensation(), convey.ShouldBeTrue)
		convey.So(model.Submission{TotalCompensation: 0}.HasValidCompensation(), convey.ShouldBeFalse)
		convey.So(model.Submission{TotalCompensation: -10}.HasValidCompensation(), convey.ShouldBeFalse)
	})
}

func TestIsSet(t *testing.T) {
	convey.Convey("Given filter values", t, func() {
		convey.So(model.IsSet(""), convey.ShouldBeFalse)
		convey.So(model.IsSet("   "), convey.ShouldBeFalse)
		convey.So(model.IsSet("All"), convey.ShouldBeFalse)
		convey.So(model.IsSet("Cardiology"), convey.ShouldBeTrue)
	})
}
