package rating_test

import (
	"testing"

	rating "github.com/debattle/engine/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngine_Compute(t *testing.T) {
	Convey("Given an engine with the default K of 32", t, func() {
		engine := rating.New(
			rating.WithKFactor(32),
			rating.WithBounds(100, 3000),
		)

		Convey("When 1200 beats 1150", func() {
			a, b := engine.Compute(
				rating.Side{Rating: 1200},
				rating.Side{Rating: 1150},
				rating.OutcomeAWins,
			)

			Convey("Then the winner gains 14 and the loser gives it back", func() {
				So(a.Delta, ShouldEqual, 14)
				So(b.Delta, ShouldEqual, -14)
				So(a.NewRating, ShouldEqual, 1214)
				So(b.NewRating, ShouldEqual, 1136)
			})
		})

		Convey("When equally rated sides draw", func() {
			a, b := engine.Compute(
				rating.Side{Rating: 1200},
				rating.Side{Rating: 1200},
				rating.OutcomeDraw,
			)

			Convey("Then neither side moves", func() {
				So(a.Delta, ShouldEqual, 0)
				So(b.Delta, ShouldEqual, 0)
			})
		})

		Convey("When unequally rated sides draw", func() {
			a, b := engine.Compute(
				rating.Side{Rating: 1400},
				rating.Side{Rating: 1200},
				rating.OutcomeDraw,
			)

			Convey("Then the favorite loses ground and the underdog gains it", func() {
				So(a.Delta, ShouldBeLessThan, 0)
				So(b.Delta, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When neither side is clamped or provisional", func() {
			cases := []struct {
				ra, rb  int
				outcome rating.Outcome
			}{
				{1200, 1150, rating.OutcomeAWins},
				{1500, 900, rating.OutcomeBWins},
				{1000, 2000, rating.OutcomeDraw},
				{1234, 1234, rating.OutcomeAWins},
			}

			Convey("Then deltas are zero-sum", func() {
				for _, c := range cases {
					a, b := engine.Compute(
						rating.Side{Rating: c.ra},
						rating.Side{Rating: c.rb},
						c.outcome,
					)
					So(a.Delta+b.Delta, ShouldEqual, 0)
				}
			})
		})

		Convey("When the loser sits at the rating floor", func() {
			a, b := engine.Compute(
				rating.Side{Rating: 110},
				rating.Side{Rating: 105},
				rating.OutcomeAWins,
			)

			Convey("Then the applied delta stops at the clamp, not the nominal", func() {
				So(b.NewRating, ShouldEqual, 100)
				So(b.Delta, ShouldEqual, -5)
				So(a.Delta, ShouldEqual, 16)
			})
		})

		Convey("When a winner keeps beating equal-rated opponents", func() {
			side := rating.Side{Rating: 1200}

			Convey("Then the rating climbs monotonically with shrinking gains", func() {
				prevRating := side.Rating
				prevGain := 1 << 30
				for i := 0; i < 20; i++ {
					a, _ := engine.Compute(side, rating.Side{Rating: 1200}, rating.OutcomeAWins)
					So(a.NewRating, ShouldBeGreaterThan, prevRating)
					So(a.Delta, ShouldBeLessThanOrEqualTo, prevGain)
					prevGain = a.Delta
					prevRating = a.NewRating
					side.Rating = a.NewRating
				}
			})
		})
	})

	Convey("Given an engine with a 2x provisional multiplier", t, func() {
		engine := rating.New(
			rating.WithKFactor(32),
			rating.WithProvisionalMultiplier(2),
		)

		Convey("When a provisional player beats an established one", func() {
			a, b := engine.Compute(
				rating.Side{Rating: 1200, Provisional: true},
				rating.Side{Rating: 1200},
				rating.OutcomeAWins,
			)

			Convey("Then the provisional side swings twice as far", func() {
				So(a.Delta, ShouldEqual, 32)
				So(b.Delta, ShouldEqual, -16)
			})
		})
	})
}
