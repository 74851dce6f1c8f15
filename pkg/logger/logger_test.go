package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat("json"), WithLevel("debug"), WithOutput(&buf)), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("When a named logger writes typed fields", func() {
			Named("fetcher").Info(context.Background(), "fetched page",
				Int("page", 2),
				Bool("last", true),
				Duration("took", 1500*time.Millisecond),
				Float64("ratio", 0.5),
				Error(errors.New("boom")),
			)

			Convey("Then one JSON line carries the group and the source", func() {
				var line map[string]any
				So(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), ShouldBeNil)
				So(line["msg"], ShouldEqual, "fetched page")
				group, ok := line["fetcher"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(group["page"], ShouldEqual, 2.0)
				So(group["last"], ShouldEqual, true)
				So(group["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(context.Background(), "hidden")
			Get().Warn(context.Background(), "hidden too")
			So(buf.Len(), ShouldEqual, 0)
			So(SetLevelString("info"), ShouldBeNil)
		})
	})

	Convey("Given invalid settings", t, func() {
		So(Init(WithFormat("xml")), ShouldNotBeNil)
		So(Init(WithLevel("loud")), ShouldNotBeNil)
		So(SetLevelString("WARNING"), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given the discarding logger", t, func() {
		l := Nop().Named("x")
		So(func() {
			l.Info(context.Background(), "ignored", String("k", "v"))
			l.Error(context.Background(), "ignored", Any("k", []int{1}))
			l.Debug(context.Background(), "ignored")
		}, ShouldNotPanic)
		So(GetOrNop(), ShouldNotBeNil)
	})
}

func TestGetCaller(t *testing.T) {
	Convey("Given a text logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)
		Get().Warn(context.Background(), "where")
		So(strings.Contains(buf.String(), "logger_test.go"), ShouldBeTrue)
	})
}
