// Package rating computes ELO-style rating updates for completed debates.
//
// The engine is a pure transform: it never touches storage and is total over
// its validated input domain. The lifecycle controller persists results.
package rating

import "math"

// Default engine parameters, matching the system settings the platform
// ships with. All of them are configuration, not policy baked in here.
const (
	defaultKFactor               = 32
	defaultProvisionalMultiplier = 2.0
	defaultMinRating             = 100
	defaultMaxRating             = 3000
	defaultStartingRating        = 1200
)

// Outcome is the debate result from side A's perspective.
type Outcome int

// Outcomes.
const (
	OutcomeAWins Outcome = iota
	OutcomeBWins
	OutcomeDraw
)

// Side is one participant's rating state at debate start.
type Side struct {
	Rating      int
	Provisional bool
}

// Update is the applied rating change for one side. Delta is post-clamp:
// NewRating - Side.Rating, so audit logs always agree with stored state.
type Update struct {
	Delta     int
	NewRating int
}

// Engine holds the tunable rating parameters.
type Engine struct {
	kFactor               float64
	provisionalMultiplier float64
	minRating             int
	maxRating             int
	startingRating        int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithKFactor sets the base K-factor.
func WithKFactor(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.kFactor = float64(k)
		}
	}
}

// WithProvisionalMultiplier scales K for provisional participants.
func WithProvisionalMultiplier(m float64) Option {
	return func(e *Engine) {
		if m > 0 {
			e.provisionalMultiplier = m
		}
	}
}

// WithBounds sets the rating clamp range.
func WithBounds(minRating, maxRating int) Option {
	return func(e *Engine) {
		if minRating < maxRating {
			e.minRating = minRating
			e.maxRating = maxRating
		}
	}
}

// WithStartingRating sets the rating assigned to new users.
func WithStartingRating(r int) Option {
	return func(e *Engine) {
		if r > 0 {
			e.startingRating = r
		}
	}
}

// New constructs an Engine with defaults overridden by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		kFactor:               defaultKFactor,
		provisionalMultiplier: defaultProvisionalMultiplier,
		minRating:             defaultMinRating,
		maxRating:             defaultMaxRating,
		startingRating:        defaultStartingRating,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartingRating is the rating assigned to a freshly created user.
func (e *Engine) StartingRating() int { return e.startingRating }

// Clamp forces a rating into the configured bounds. Callers applying a
// snapshot-derived delta to a rating that moved since the snapshot use this
// to keep the result in range.
func (e *Engine) Clamp(r int) int {
	if r < e.minRating {
		return e.minRating
	}
	if r > e.maxRating {
		return e.maxRating
	}
	return r
}

// Compute returns the applied rating updates for both sides of a completed
// debate. Deltas are zero-sum before clamping when both sides share the same
// effective K; a provisional side converges faster and breaks that symmetry
// on purpose.
func (e *Engine) Compute(a, b Side, outcome Outcome) (Update, Update) {
	expectedA := expectedScore(a.Rating, b.Rating)
	expectedB := 1 - expectedA

	var actualA, actualB float64
	switch outcome {
	case OutcomeAWins:
		actualA, actualB = 1, 0
	case OutcomeBWins:
		actualA, actualB = 0, 1
	case OutcomeDraw:
		actualA, actualB = 0.5, 0.5
	}

	return e.apply(a, actualA, expectedA), e.apply(b, actualB, expectedB)
}

// apply computes one side's nominal delta, clamps the resulting rating to
// the configured bounds, and reports the delta that actually took effect.
func (e *Engine) apply(s Side, actual, expected float64) Update {
	k := e.kFactor
	if s.Provisional {
		k *= e.provisionalMultiplier
	}
	nominal := int(math.Round(k * (actual - expected)))

	next := s.Rating + nominal
	if next < e.minRating {
		next = e.minRating
	}
	if next > e.maxRating {
		next = e.maxRating
	}
	return Update{Delta: next - s.Rating, NewRating: next}
}

// expectedScore is the standard logistic expectation for ratingA against
// ratingB on a 400-point scale.
func expectedScore(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
}
