package config_test

import (
	"context"
	"testing"

	config "github.com/gymlab/palaestra/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given default configuration", t, func() {
		cfg := config.New(context.Background())

		Convey("Then sensible defaults are set", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.DataPath, ShouldEqual, "palaestra.db")
			So(cfg.MaxHistory, ShouldEqual, 0)
		})
	})
}
