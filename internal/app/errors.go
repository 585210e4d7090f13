package service

import "errors"

// Sentinel errors surfaced by the lifecycle controller. The HTTP layer maps
// these onto status codes.
var (
	// ErrValidation marks a request that can never succeed as given.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition marks an operation illegal for the debate's
	// current lifecycle state.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrNotFound marks a missing debate, user, or topic.
	ErrNotFound = errors.New("not found")

	// ErrUnknownUser marks a participant id with no user record.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownTopic marks a topic id with no catalog record.
	ErrUnknownTopic = errors.New("unknown topic")

	// ErrCommitExhausted is returned when a judgment commit kept losing
	// the optimistic-concurrency race and ran out of retries. The caller
	// may resubmit the same judgment.
	ErrCommitExhausted = errors.New("commit retries exhausted")

	// ErrNotStarted marks a call made before Start or after Stop.
	ErrNotStarted = errors.New("service not started")
)
