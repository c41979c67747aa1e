package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/gymlab/palaestra/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then defaults apply", func() {
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.DataPath, ShouldEqual, "palaestra.db")
		})
	})

	Convey("Given env overrides", t, func() {
		t.Setenv("PALAESTRA_ADDR", ":9999")
		t.Setenv("PALAESTRA_DATA_PATH", "/tmp/meets.db")
		t.Setenv("PALAESTRA_MAX_HISTORY", "25")

		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env values win over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":9999")
			So(cfg.DataPath, ShouldEqual, "/tmp/meets.db")
			So(cfg.MaxHistory, ShouldEqual, 25)
		})
	})

	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		So(os.WriteFile(path, []byte("addr: \":7070\"\nlog_level: debug\n"), 0o600), ShouldBeNil)
		t.Setenv("PALAESTRA_CONFIG", path)

		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then file values layer over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.DataPath, ShouldEqual, "palaestra.db")
		})

		Convey("And env still wins over the file", func() {
			t.Setenv("PALAESTRA_ADDR", ":6060")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})

	Convey("Given an invalid override", t, func() {
		t.Setenv("PALAESTRA_ADDR", "")

		Convey("Then Load rejects the config", func() {
			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
