package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then the salary namespace is used", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "salary")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("dash"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "dash")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.enabled, ShouldBeFalse)
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "salary")
				So(manager.histogramBuckets, ShouldNotBeEmpty)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When a comparison is recorded", func() {
			before := testutil.ToFloat64(globalManager.comparisons.WithLabelValues("exact", "B+"))
			RecordComparison("exact", "B+")

			Convey("Then the labelled counter increases", func() {
				So(testutil.ToFloat64(globalManager.comparisons.WithLabelValues("exact", "B+")), ShouldEqual, before+1)
			})
		})

		Convey("When store pages and failures are recorded", func() {
			pages := testutil.ToFloat64(globalManager.storePages.WithLabelValues("memory"))
			rows := testutil.ToFloat64(globalManager.recordsFetched.WithLabelValues("memory"))
			errs := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("memory", "query"))

			RecordPageFetched("memory", 250)
			RecordStoreRequest("memory", "query", 3*time.Millisecond, errors.New("boom"))
			RecordStoreRequest("memory", "query", time.Millisecond, nil)

			Convey("Then pages, rows and errors are counted", func() {
				So(testutil.ToFloat64(globalManager.storePages.WithLabelValues("memory")), ShouldEqual, pages+1)
				So(testutil.ToFloat64(globalManager.recordsFetched.WithLabelValues("memory")), ShouldEqual, rows+250)
				So(testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("memory", "query")), ShouldEqual, errs+1)
			})
		})

		Convey("When the remaining recorders are called", func() {
			So(func() {
				RecordStoreRetry("rest")
				RecordNormalized(10)
				UpdateDatasetSize(10)
				RecordDashboard(12 * time.Millisecond)
				RecordInsufficientCohort()
				RecordInvalidInput("compare")
				RecordTakeHome("single")
				RecordHTTPRequest("/dashboard", http.MethodGet, http.StatusOK, time.Millisecond)
				RecordErrorByEndpoint("/compare", http.MethodPost, "insufficient_data")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.datasetSize), ShouldEqual, 10)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given the metrics handler", t, func() {
		RecordDashboard(time.Millisecond)
		rec := httptest.NewRecorder()
		Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Convey("Then salary metrics are exposed", func() {
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.Contains(rec.Body.String(), "salary_dashboards_built_total"), ShouldBeTrue)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
