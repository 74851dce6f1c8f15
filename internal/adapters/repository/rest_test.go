package repository_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRESTStore(t *testing.T) {
	Convey("Given a PostgREST-style server", t, func() {
		var (
			calls   atomic.Int32
			lastURL atomic.Value
			lastHdr atomic.Value
			status  atomic.Int32
		)
		status.Store(http.StatusOK)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			lastURL.Store(r.URL)
			lastHdr.Store(r.Header.Clone())
			if code := int(status.Load()); code != http.StatusOK {
				status.Store(http.StatusOK)
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"message":"try later"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if r.Header.Get("Prefer") == "count=exact" {
				w.Header().Set("Content-Range", "0-0/42")
			}
			_, _ = w.Write([]byte(`[{"id":"a1","specialty":"Cardiology","total_compensation":"$450,000","years_of_experience":12}]`))
		}))
		defer srv.Close()

		s, err := repository.NewRESTStore(srv.URL+"/rest/v1/", repository.WithAPIKey("anon-key"),
			repository.WithRetry(time.Millisecond, time.Second))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When querying with filters, order and paging", func() {
			rows, err := s.Query(ctx, repository.Query{
				Table: "salary_submissions",
				Filters: []repository.Filter{
					repository.ILike(repository.ColSpecialty, "cardio"),
					repository.Or(
						repository.In(repository.ColState, "New York", "New Jersey"),
						repository.Eq(repository.ColGeographicLocation, "Northeast"),
					),
				},
				OrderBy:    repository.ColCreatedAt,
				Descending: true,
				Offset:     1000,
				Limit:      1000,
			})

			Convey("Then the request uses PostgREST operators and the api key", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0].TotalCompensation, ShouldEqual, "$450,000")
				So(rows[0].YearsOfExperience, ShouldEqual, 12.0)

				u := lastURL.Load().(*url.URL)
				q := u.Query()
				So(u.Path, ShouldEqual, "/rest/v1/salary_submissions")
				So(q.Get("specialty"), ShouldEqual, "ilike.*cardio*")
				So(q.Get("or"), ShouldEqual, `(state.in.("New York","New Jersey"),geographic_location.eq."Northeast")`)
				So(q.Get("order"), ShouldEqual, "created_at.desc")
				So(q.Get("offset"), ShouldEqual, "1000")
				So(q.Get("limit"), ShouldEqual, "1000")
				So(q.Get("select"), ShouldEqual, "*")

				h := lastHdr.Load().(http.Header)
				So(h.Get("apikey"), ShouldEqual, "anon-key")
				So(h.Get("Authorization"), ShouldEqual, "Bearer anon-key")
			})
		})

		Convey("When counting", func() {
			n, err := s.Count(ctx, repository.Query{Table: "salary_submissions",
				Filters: []repository.Filter{repository.Eq(repository.ColSpecialty, "Cardiology")}})

			Convey("Then the total comes from Content-Range", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 42)
				So(lastURL.Load().(*url.URL).Query().Get("specialty"), ShouldEqual, "eq.Cardiology")
			})
		})

		Convey("When the server fails once with 503", func() {
			status.Store(http.StatusServiceUnavailable)
			rows, err := s.Query(ctx, repository.Query{Table: "salary_submissions"})

			Convey("Then the request is retried", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(calls.Load(), ShouldEqual, 2)
			})
		})

		Convey("When the server rejects the request with 400", func() {
			status.Store(http.StatusBadRequest)
			_, err := s.Query(ctx, repository.Query{Table: "salary_submissions"})

			Convey("Then it fails without retrying", func() {
				So(errors.Is(err, repository.ErrUnexpectedStatus), ShouldBeTrue)
				So(calls.Load(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a server that is always down", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		s, err := repository.NewRESTStore(srv.URL, repository.WithRetry(time.Millisecond, 20*time.Millisecond))
		So(err, ShouldBeNil)

		_, err = s.Count(context.Background(), repository.Query{Table: "salary_submissions"})
		So(errors.Is(err, repository.ErrStoreUnavailable), ShouldBeTrue)
	})

	Convey("Given an invalid base URL", t, func() {
		_, err := repository.NewRESTStore("not a url")
		So(err, ShouldNotBeNil)
	})
}
