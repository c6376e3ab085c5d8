package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/gaffer/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at every level", func() {
			l := logger.Get()

			Convey("Then no call should panic", func() {
				So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("count", 3))
					l.Warn(ctx, "warn message", logger.Bool("flag", true))
					l.Error(ctx, "error message", logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("resolver")

			Convey("Then it should log without panicking", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(ctx, "named message") }, ShouldNotPanic)
			})
		})

		Convey("When setting levels by string", func() {
			Convey("Then known levels parse", func() {
				for _, lvl := range []string{"debug", "info", "WARN", "warning", "error", ""} {
					So(logger.SetLevelString(lvl), ShouldBeNil)
				}
			})

			Convey("And unknown levels are rejected", func() {
				So(logger.SetLevelString("chatty"), ShouldNotBeNil)
			})
		})

		Convey("When syncing", func() {
			Convey("Then it is a no-op", func() {
				So(logger.Sync(), ShouldBeNil)
			})
		})
	})
}
