package config_test

import (
	"testing"

	"github.com/debattle/engine/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then the rating settings mirror the platform defaults", func() {
			convey.So(cfg.StartingRating, convey.ShouldEqual, 1200)
			convey.So(cfg.KFactor, convey.ShouldEqual, 32)
			convey.So(cfg.ProvisionalKMultiplier, convey.ShouldEqual, 2.0)
			convey.So(cfg.MinRating, convey.ShouldEqual, 100)
			convey.So(cfg.MaxRating, convey.ShouldEqual, 3000)
			convey.So(cfg.ProvisionalGames, convey.ShouldEqual, 10)
		})

		convey.Convey("Then the gamification settings mirror the platform defaults", func() {
			convey.So(cfg.XPPerWin, convey.ShouldEqual, 100)
			convey.So(cfg.XPPerLoss, convey.ShouldEqual, 25)
			convey.So(cfg.XPPerDraw, convey.ShouldEqual, 50)
			convey.So(cfg.LevelMultiplier, convey.ShouldEqual, 1.5)
			convey.So(cfg.StreakBonus, convey.ShouldEqual, 0.1)
		})

		convey.Convey("Then the ambient settings are sane", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.CommitRetries, convey.ShouldEqual, 3)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
		})
	})
}
