package models

import (
	"time"
)

// SessionStatus represents the current state of a game session
type SessionStatus string

const (
	// SessionStatusScheduled indicates a session is waiting for its start time
	SessionStatusScheduled SessionStatus = "SCHEDULED"

	// SessionStatusCountdown is a reserved pre-live state, currently unused
	SessionStatusCountdown SessionStatus = "COUNTDOWN"

	// SessionStatusLive indicates numbers are being drawn
	SessionStatusLive SessionStatus = "LIVE"

	// SessionStatusCompleted indicates the session has ended
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// DrawPoolSize is the number of drawable numbers in a session
const DrawPoolSize = 90

// Session represents one live number-drawing game, from scheduling
// through completion
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// Code is the human-readable unique label for the session
	Code string

	// Status is the current state of the session
	Status SessionStatus

	// ScheduledAt is when the session is due to go live
	ScheduledAt time.Time

	// StartedAt is when the session went live, nil until then
	StartedAt *time.Time

	// EndedAt is when the session completed, nil until then
	EndedAt *time.Time

	// DrawSequence is the shuffled order all 90 numbers will be announced
	// in. It is generated once at the SCHEDULED to LIVE transition and is
	// immutable afterwards.
	DrawSequence []int

	// Cursor is the index of the next number to announce in DrawSequence
	Cursor int

	// Announced holds the numbers drawn so far, in announcement order.
	// It is always DrawSequence[0:Cursor].
	Announced []int

	// CurrentNumber is the most recently announced number, 0 before the
	// first draw
	CurrentNumber int

	// TotalSlots is the reservable capacity of the session
	TotalSlots int

	// BookedSlots is how many slots have been reserved
	BookedSlots int

	// Winners maps each win tier to its winner. A tier absent from the map
	// has no winner yet; a tier is write-once.
	Winners map[WinTier]*Winner

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}

// Remaining returns how many numbers have not been announced yet.
func (s *Session) Remaining() int {
	return DrawPoolSize - len(s.Announced)
}

// Winner returns the recorded winner for a tier, or nil if the tier is
// unclaimed.
func (s *Session) Winner(tier WinTier) *Winner {
	if s.Winners == nil {
		return nil
	}
	return s.Winners[tier]
}
