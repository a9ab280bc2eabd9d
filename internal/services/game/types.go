package game

import (
	"time"

	"github.com/housielive/housie/internal/models"
)

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	// Code is the human-readable unique label for the session
	Code string

	// ScheduledAt is when the session should go live
	ScheduledAt time.Time

	// TotalSlots is the reservable capacity; defaults to the service
	// configuration when zero
	TotalSlots int
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// Session is the created session
	Session *models.Session
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	// SessionID is the session to promote to LIVE
	SessionID string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	// Session is the session after the transition
	Session *models.Session

	// AlreadyLive indicates the session was LIVE before the call
	AlreadyLive bool
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	// SessionID is the session to complete
	SessionID string
}

// EndSessionOutput contains the result of ending a session
type EndSessionOutput struct {
	// Session is the session after the transition
	Session *models.Session
}

// DrawNextInput contains parameters for announcing the next number
type DrawNextInput struct {
	// SessionID is the session to draw in
	SessionID string
}

// DrawNextOutput contains the result of a draw tick
type DrawNextOutput struct {
	// Ended indicates a terminal condition was met; no number was drawn
	Ended bool

	// Number is the announced number, 0 when Ended
	Number int

	// Announced is the announcement log including Number
	Announced []int

	// Remaining is how many numbers are still undrawn
	Remaining int

	// Session is the session after the tick
	Session *models.Session
}

// ReserveInput contains parameters for reserving slots
type ReserveInput struct {
	// SessionID is the session to reserve in
	SessionID string

	// OwnerID is the player making the reservation
	OwnerID string

	// Count is how many slots (cards) to reserve
	Count int

	// TimeBucket is the discrete day plus time-of-day key of the
	// reservation
	TimeBucket string
}

// ReserveOutput contains the result of a reservation
type ReserveOutput struct {
	// Booking is the confirmed reservation record
	Booking *models.Booking

	// Cards are the issued cards, one per reserved slot
	Cards []*models.Card
}

// SubmitClaimInput contains parameters for a win claim
type SubmitClaimInput struct {
	// SessionID is the session the claim is made in
	SessionID string

	// OwnerID is the claiming player
	OwnerID string

	// CardID is the card the claim is made with
	CardID string

	// Tier is the win tier being claimed
	Tier models.WinTier
}

// SubmitClaimOutput contains the result of an accepted claim
type SubmitClaimOutput struct {
	// Winner is the recorded winner entry, coupon attached
	Winner *models.Winner
}

// GetSessionStateInput contains parameters for a state snapshot
type GetSessionStateInput struct {
	// SessionID is the session to read
	SessionID string
}

// GetSessionStateOutput is a read-only snapshot of a session
type GetSessionStateOutput struct {
	// Status is the session's current status
	Status models.SessionStatus

	// Announced is the announcement log
	Announced []int

	// CurrentNumber is the most recently announced number
	CurrentNumber int

	// Cursor is the index of the next number to announce
	Cursor int

	// Remaining is how many numbers are still undrawn
	Remaining int

	// Winners is the per-tier winners map
	Winners map[models.WinTier]*models.Winner

	// Session is the full session record
	Session *models.Session
}
