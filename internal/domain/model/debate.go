package model

import "time"

// Status is the lifecycle state of a debate.
type Status string

// Lifecycle states. Completed and Cancelled are terminal.
const (
	StatusCreated   Status = "created"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Stance is the side a participant argues.
type Stance string

// Stances.
const (
	StancePro Stance = "pro"
	StanceCon Stance = "con"
)

// Participant is one side of a debate with the rating snapshot captured at
// creation time. The snapshot is what expected scores are computed from,
// even if the live rating moved between creation and judgment.
type Participant struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	Provisional bool   `json:"provisional"`
	Stance      Stance `json:"stance"`
}

// Debate is the record owned by the lifecycle controller.
// RatingChanges and Judgment are set if and only if Status is completed.
type Debate struct {
	ID       string `json:"id"`
	TopicID  string `json:"topic_id"`
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Format   string `json:"format"`

	Participants [2]Participant `json:"participants"`
	Status       Status         `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Winner        string         `json:"winner,omitempty"`
	Judgment      *Judgment      `json:"judgment,omitempty"`
	RatingChanges map[string]int `json:"rating_changes,omitempty"`
}

// HasParticipant reports whether uid is one of the two participants.
func (d *Debate) HasParticipant(uid string) bool {
	return d.Participants[0].UserID == uid || d.Participants[1].UserID == uid
}
