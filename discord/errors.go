package discord

import (
	"errors"
	"time"
)

type ErrKind int

const (
	// Transport failed before a response arrived
	ErrKindNetwork ErrKind = iota
	// The upstream call exceeded its deadline
	ErrKindTimeout
	// Rejected by our own limiter or by the upstream's
	ErrKindRateLimited
	// Upstream 404 where the resource was genuinely expected
	ErrKindNotFound
	// Upstream rejected our credential: a server misconfiguration
	ErrKindUnauthorized
	// Upstream returned 2xx but the payload broke its own contract
	ErrKindBadUpstream
	// Any other upstream non-2xx, passed through
	ErrKindUpstream
)

// Error is a classified upstream failure. Status is the upstream HTTP
// status where one was received; RetryAfter is set for rate limits.
type Error struct {
	Kind       ErrKind
	Status     int
	Message    string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return e.Message
}

// As unwraps err into a classified upstream Error, if it is one.
func As(err error) (*Error, bool) {
	var derr *Error

	if errors.As(err, &derr) {
		return derr, true
	}

	return nil, false
}
