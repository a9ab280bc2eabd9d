package models

import (
	"time"
)

// BookingStatus represents the lifecycle state of a reservation
type BookingStatus string

const (
	// BookingStatusPending indicates a reservation that has not been confirmed
	BookingStatusPending BookingStatus = "PENDING"

	// BookingStatusConfirmed indicates a granted reservation
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
)

// Booking records a confirmed slot reservation for a session
type Booking struct {
	// ID is the unique identifier for the booking
	ID string

	// SessionID is the session the slots were reserved in
	SessionID string

	// OwnerID is the player who holds the reservation
	OwnerID string

	// TimeBucket is the discrete day plus time-of-day key the reservation
	// was made for. A player holds at most one confirmed booking per
	// (session, bucket).
	TimeBucket string

	// CardIDs are the cards issued for this reservation
	CardIDs []string

	// Status is the current state of the booking
	Status BookingStatus

	// BookedAt is when the reservation was granted
	BookedAt time.Time
}
