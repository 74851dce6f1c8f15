package region_test

import (
	"testing"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given the state table", t, func() {
		Convey("When resolving full names in any casing", func() {
			r, ok := region.Resolve("texas")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, model.RegionSouth)

			r, ok = region.Resolve("  New York ")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, model.RegionNortheast)
		})

		Convey("When resolving USPS codes", func() {
			r, ok := region.Resolve("CA")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, model.RegionWest)

			r, ok = region.Resolve("oh")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, model.RegionMidwest)
		})

		Convey("When resolving unknown input", func() {
			r, ok := region.Resolve("Ontario")
			So(ok, ShouldBeFalse)
			So(r, ShouldEqual, model.RegionUnknown)

			_, ok = region.Resolve("")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestStates(t *testing.T) {
	Convey("Given every region", t, func() {
		total := 0
		for _, r := range []model.Region{model.RegionNortheast, model.RegionMidwest, model.RegionSouth, model.RegionWest} {
			total += len(region.States(r))
		}

		Convey("Then all 50 states plus DC are covered exactly once", func() {
			So(total, ShouldEqual, 51)
			So(region.States(model.RegionNortheast), ShouldHaveLength, 9)
			So(region.States(model.RegionMidwest), ShouldHaveLength, 12)
			So(region.States(model.RegionSouth), ShouldHaveLength, 17)
			So(region.States(model.RegionWest), ShouldHaveLength, 13)
			So(region.States(model.RegionUnknown), ShouldBeEmpty)
		})

		Convey("Then states are listed alphabetically", func() {
			ne := region.States(model.RegionNortheast)
			So(ne[0], ShouldEqual, "Connecticut")
			So(ne[len(ne)-1], ShouldEqual, "Vermont")
		})
	})
}

func TestCanonical(t *testing.T) {
	Convey("Given free-text region names", t, func() {
		So(region.Canonical("NORTHEAST"), ShouldEqual, model.RegionNortheast)
		So(region.Canonical("Mid West"), ShouldEqual, model.RegionMidwest)
		So(region.Canonical(" south "), ShouldEqual, model.RegionSouth)
		So(region.Canonical("West"), ShouldEqual, model.RegionWest)
		So(region.Canonical("Pacific Northwest"), ShouldEqual, model.RegionUnknown)
		So(region.Canonical(""), ShouldEqual, model.RegionUnknown)
	})

	Convey("Given state names to canonicalize", t, func() {
		name, ok := region.CanonicalState("ma")
		So(ok, ShouldBeTrue)
		So(name, ShouldEqual, "Massachusetts")

		_, ok = region.CanonicalState("Atlantis")
		So(ok, ShouldBeFalse)
	})

	Convey("Given states to abbreviate", t, func() {
		code, ok := region.Code("district of columbia")
		So(ok, ShouldBeTrue)
		So(code, ShouldEqual, "DC")

		code, _ = region.Code("tx")
		So(code, ShouldEqual, "TX")

		_, ok = region.Code("Atlantis")
		So(ok, ShouldBeFalse)
	})
}
