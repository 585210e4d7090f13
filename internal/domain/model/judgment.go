package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Judgment validation errors.
var (
	ErrNoScores         = errors.New("judgment carries no scores")
	ErrScoreOutOfRange  = errors.New("judgment score out of range")
	ErrWinnerAndDraw    = errors.New("judgment declares both a winner and a draw")
	ErrNoVerdict        = errors.New("judgment declares neither a winner nor a draw")
	ErrUnknownWinner    = errors.New("judgment winner is not a participant")
	ErrBadConfidence    = errors.New("judgment confidence outside [0,1]")
	ErrInconsistentTotal = errors.New("judgment total disagrees with sub-scores")
)

// Scores are the per-participant sub-scores produced by the judging service,
// each in [0,100]. Total is the rounded mean of the five.
type Scores struct {
	Logic      int `json:"logic"`
	Evidence   int `json:"evidence"`
	Clarity    int `json:"clarity"`
	Rebuttal   int `json:"rebuttal"`
	Engagement int `json:"engagement"`
	Total      int `json:"total"`
}

// mean returns the rounded mean of the five sub-scores.
func (s Scores) mean() int {
	sum := s.Logic + s.Evidence + s.Clarity + s.Rebuttal + s.Engagement
	return int(math.Round(float64(sum) / 5))
}

func (s Scores) validate() error {
	for _, v := range []int{s.Logic, s.Evidence, s.Clarity, s.Rebuttal, s.Engagement} {
		if v < 0 || v > 100 {
			return ErrScoreOutOfRange
		}
	}
	return nil
}

// Judgment is produced by the external judging service and consumed as
// untrusted input. Exactly one of Winner or Draw must be set.
type Judgment struct {
	// ID identifies one delivery of a judgment for idempotency. The judging
	// service reuses it when it retries.
	ID string `json:"id"`

	Scores     map[string]Scores `json:"scores"`
	Winner     string            `json:"winner,omitempty"`
	Draw       bool              `json:"draw,omitempty"`
	Confidence float64           `json:"confidence"`
	Reasoning  string            `json:"reasoning,omitempty"`
	IssuedAt   time.Time         `json:"issued_at"`
}

// Validate checks the judgment invariants against the debate it targets.
// It normalizes Total to the sub-score mean when the judge left it zero.
func (j *Judgment) Validate(d *Debate) error {
	if j.Winner != "" && j.Draw {
		return ErrWinnerAndDraw
	}
	if j.Winner == "" && !j.Draw {
		return ErrNoVerdict
	}
	if j.Winner != "" && !d.HasParticipant(j.Winner) {
		return fmt.Errorf("%w: %s", ErrUnknownWinner, j.Winner)
	}
	if j.Confidence < 0 || j.Confidence > 1 {
		return ErrBadConfidence
	}
	if len(j.Scores) == 0 {
		return ErrNoScores
	}
	for uid, s := range j.Scores {
		if !d.HasParticipant(uid) {
			return fmt.Errorf("%w: scored user %s", ErrUnknownWinner, uid)
		}
		if err := s.validate(); err != nil {
			return fmt.Errorf("%s: %w", uid, err)
		}
		switch {
		case s.Total == 0:
			s.Total = s.mean()
			j.Scores[uid] = s
		case s.Total != s.mean():
			return fmt.Errorf("%s: %w", uid, ErrInconsistentTotal)
		}
	}
	return nil
}
