package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/gaji/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8501")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "artifacts/gradient_boosting_model.json")
			convey.So(cfg.ScalerPath, convey.ShouldEqual, "artifacts/scaler.json")
			convey.So(cfg.StrictCategories, convey.ShouldBeTrue)
			convey.So(cfg.CORSAllowedOrigins, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one invalid setting", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = " " },
			"empty model path":   func(c *config.Config) { c.ModelPath = "" },
			"empty scaler path":  func(c *config.Config) { c.ScalerPath = "" },
			"unknown log format": func(c *config.Config) { c.LogFormat = "xml" },
		}
		for name, mutate := range cases {
			convey.Convey("When the config has "+name, func() {
				cfg := config.New(context.Background())
				mutate(cfg)

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
