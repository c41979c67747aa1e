package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gymlab/palaestra/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger without panicking", func() {
			log := logger.Get()
			So(log, ShouldNotBeNil)
			So(func() {
				log.Info(context.Background(), "hello",
					logger.String("k", "v"),
					logger.Int("n", 1),
					logger.Float64("f", 9.5),
					logger.Any("x", []int{1}),
					logger.Error(errors.New("boom")))
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a scoped logger", func() {
			So(logger.Named("api"), ShouldNotBeNil)
		})

		Convey("Then levels parse case-insensitively", func() {
			So(logger.SetLevelString("DEBUG"), ShouldBeNil)
			So(logger.SetLevelString("warn"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
			So(logger.SetLevelString("nope"), ShouldNotBeNil)
		})
	})
}
