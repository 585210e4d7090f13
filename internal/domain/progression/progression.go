// Package progression derives experience awards, levels, and tiers from
// debate results and total XP.
package progression

import (
	"math"

	"github.com/debattle/engine/internal/domain/model"
)

// Defaults mirror the platform's gamification settings.
const (
	defaultXPPerWin        = 100
	defaultXPPerLoss       = 25
	defaultXPPerDraw       = 50
	defaultStreakBonus     = 0.1
	defaultLevelBaseXP     = 100
	defaultLevelMultiplier = 1.5
)

// maxLevel caps the level search; the geometric XP curve makes levels this
// high unreachable in practice.
const maxLevel = 200

// defaultTierLevels maps each tier to the minimum level that grants it.
var defaultTierLevels = map[model.Tier]int{
	model.TierBronze:   1,
	model.TierSilver:   6,
	model.TierGold:     11,
	model.TierPlatinum: 16,
	model.TierDiamond:  21,
}

// tierOrder is ascending so Tier picks the highest qualifying bucket.
var tierOrder = []model.Tier{
	model.TierBronze,
	model.TierSilver,
	model.TierGold,
	model.TierPlatinum,
	model.TierDiamond,
}

// Progression computes XP awards and the level/tier step function.
type Progression struct {
	xpPerWin        int
	xpPerLoss       int
	xpPerDraw       int
	streakBonus     float64
	levelBaseXP     int
	levelMultiplier float64
	tierLevels      map[model.Tier]int
}

// Option applies a configuration option to the Progression.
type Option func(*Progression)

// WithXPAwards sets the flat XP granted per result.
func WithXPAwards(win, loss, draw int) Option {
	return func(p *Progression) {
		if win >= 0 {
			p.xpPerWin = win
		}
		if loss >= 0 {
			p.xpPerLoss = loss
		}
		if draw >= 0 {
			p.xpPerDraw = draw
		}
	}
}

// WithStreakBonus sets the fractional win-XP bonus per consecutive win
// beyond the first.
func WithStreakBonus(bonus float64) Option {
	return func(p *Progression) {
		if bonus >= 0 {
			p.streakBonus = bonus
		}
	}
}

// WithLevelCurve sets the base XP and multiplier of the level step function.
func WithLevelCurve(baseXP int, multiplier float64) Option {
	return func(p *Progression) {
		if baseXP > 0 {
			p.levelBaseXP = baseXP
		}
		if multiplier > 1 {
			p.levelMultiplier = multiplier
		}
	}
}

// WithTierLevels replaces the tier boundary table.
func WithTierLevels(levels map[model.Tier]int) Option {
	return func(p *Progression) {
		if len(levels) > 0 {
			p.tierLevels = levels
		}
	}
}

// New constructs a Progression with defaults overridden by opts.
func New(opts ...Option) *Progression {
	p := &Progression{
		xpPerWin:        defaultXPPerWin,
		xpPerLoss:       defaultXPPerLoss,
		xpPerDraw:       defaultXPPerDraw,
		streakBonus:     defaultStreakBonus,
		levelBaseXP:     defaultLevelBaseXP,
		levelMultiplier: defaultLevelMultiplier,
		tierLevels:      defaultTierLevels,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Award returns the XP earned for one result. Wins earn a streak bonus on
// top of the flat award, computed from the post-update streak.
func (p *Progression) Award(result model.Result, streak int) int {
	switch result {
	case model.ResultWin:
		bonus := 0
		if streak > 1 {
			bonus = int(math.Floor(float64(p.xpPerWin) * p.streakBonus * float64(streak-1)))
		}
		return p.xpPerWin + bonus
	case model.ResultLoss:
		return p.xpPerLoss
	case model.ResultDraw:
		return p.xpPerDraw
	}
	return 0
}

// Level maps total XP to a level via the geometric step function.
// Cumulative XP required for level n is base*(m^(n-1)-1)/(m-1), so level 1
// starts at zero and each level costs multiplier times the previous one.
func (p *Progression) Level(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	level := 1
	for level < maxLevel && float64(totalXP) >= p.threshold(level+1) {
		level++
	}
	return level
}

// NextLevelXP returns the cumulative XP needed to reach the next level.
func (p *Progression) NextLevelXP(totalXP int) int {
	return int(math.Ceil(p.threshold(p.Level(totalXP) + 1)))
}

// threshold is the cumulative XP floor of a level.
func (p *Progression) threshold(level int) float64 {
	if level <= 1 {
		return 0
	}
	m := p.levelMultiplier
	return float64(p.levelBaseXP) * (math.Pow(m, float64(level-1)) - 1) / (m - 1)
}

// Tier returns the display tier for a level.
func (p *Progression) Tier(level int) model.Tier {
	tier := model.TierBronze
	for _, t := range tierOrder {
		min, ok := p.tierLevels[t]
		if ok && level >= min {
			tier = t
		}
	}
	return tier
}
