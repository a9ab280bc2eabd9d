package events

import (
	"time"

	"github.com/housielive/housie/internal/models"
)

// Type names an engine event. The values are the wire event names the
// stream clients subscribe to.
type Type string

const (
	// TypeSessionStarted fires when a session goes live
	TypeSessionStarted Type = "game:started"

	// TypeNumberAnnounced fires for every drawn number
	TypeNumberAnnounced Type = "number:announced"

	// TypeWinnerDeclared fires when a claim is accepted
	TypeWinnerDeclared Type = "winner:declared"

	// TypeSessionEnded fires when a session completes
	TypeSessionEnded Type = "game:ended"
)

// Event is the envelope delivered to subscribers of a session
type Event struct {
	// Type identifies the payload shape
	Type Type `json:"type"`

	// SessionID is the session the event belongs to
	SessionID string `json:"sessionId"`

	// Timestamp is when the event was published
	Timestamp time.Time `json:"timestamp"`

	// SessionStarted is set for TypeSessionStarted events
	SessionStarted *SessionStartedPayload `json:"sessionStarted,omitempty"`

	// NumberAnnounced is set for TypeNumberAnnounced events
	NumberAnnounced *NumberAnnouncedPayload `json:"numberAnnounced,omitempty"`

	// WinnerDeclared is set for TypeWinnerDeclared events
	WinnerDeclared *WinnerDeclaredPayload `json:"winnerDeclared,omitempty"`

	// SessionEnded is set for TypeSessionEnded events
	SessionEnded *SessionEndedPayload `json:"sessionEnded,omitempty"`
}

// SessionStartedPayload announces the SCHEDULED to LIVE transition
type SessionStartedPayload struct {
	StartedAt time.Time `json:"startTime"`
}

// NumberAnnouncedPayload carries one drawn number
type NumberAnnouncedPayload struct {
	// Number is the freshly drawn number
	Number int `json:"number"`

	// Announced is the full announcement log including Number
	Announced []int `json:"announcedNumbers"`

	// Remaining is how many numbers are still undrawn
	Remaining int `json:"remaining"`
}

// WinnerDeclaredPayload carries an accepted win claim
type WinnerDeclaredPayload struct {
	Tier   models.WinTier `json:"winType"`
	Winner *models.Winner `json:"winner"`
}

// SessionEndedPayload carries the final winners map
type SessionEndedPayload struct {
	Winners map[models.WinTier]*models.Winner `json:"winners"`
}
