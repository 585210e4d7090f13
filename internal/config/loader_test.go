package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/debattle/engine/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"DEBATTLE_CONFIG",
	"DEBATTLE_ADDR",
	"DEBATTLE_K_FACTOR",
	"DEBATTLE_MIN_RATING",
	"DEBATTLE_MAX_RATING",
	"DEBATTLE_STARTING_RATING",
	"DEBATTLE_XP_PER_WIN",
	"DEBATTLE_COMMIT_RETRIES",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then defaults come through", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.KFactor, convey.ShouldEqual, 32)
				convey.So(cfg.StartingRating, convey.ShouldEqual, 1200)
			})
		})

		convey.Convey("When environment variables override defaults", func() {
			_ = os.Setenv("DEBATTLE_ADDR", ":8080")
			_ = os.Setenv("DEBATTLE_K_FACTOR", "24")
			_ = os.Setenv("DEBATTLE_XP_PER_WIN", "150")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env values win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.KFactor, convey.ShouldEqual, 24)
				convey.So(cfg.XPPerWin, convey.ShouldEqual, 150)
			})
		})

		convey.Convey("When a YAML file provides values and env overrides one", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "engine.yaml")
			yaml := "addr: \":7070\"\nk_factor: 16\nprovisional_games: 5\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("DEBATTLE_CONFIG", path)
			_ = os.Setenv("DEBATTLE_K_FACTOR", "20")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then precedence is defaults < file < env", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.KFactor, convey.ShouldEqual, 20)
				convey.So(cfg.ProvisionalGames, convey.ShouldEqual, 5)
				convey.So(cfg.MaxRating, convey.ShouldEqual, 3000)
			})
		})

		convey.Convey("When the rating floor sits above the ceiling", func() {
			_ = os.Setenv("DEBATTLE_MIN_RATING", "4000")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects the configuration", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the starting rating falls outside the bounds", func() {
			_ = os.Setenv("DEBATTLE_STARTING_RATING", "50")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects the configuration", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("DEBATTLE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the load kind", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}
