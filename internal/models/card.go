package models

import (
	"time"
)

// CardRows is the number of rows on a card
const CardRows = 3

// CardRowSize is how many numbers each row holds
const CardRowSize = 5

// Card is a player's set of 15 numbers across 3 rows, used to evaluate
// win claims
type Card struct {
	// ID is the unique identifier for the card
	ID string

	// SessionID is the session the card was issued for
	SessionID string

	// OwnerID is the player the card belongs to
	OwnerID string

	// Label is the short human-readable card code
	Label string

	// TicketLabel is the session-scoped ticket number, derived from the
	// slot offset the card consumed
	TicketLabel string

	// Rows holds the card's numbers: three rows of five, all 15 distinct,
	// each in [1,90]. Immutable after generation.
	Rows [CardRows][CardRowSize]int

	// CreatedAt is when the card was generated
	CreatedAt time.Time
}

// Row returns one row of the card as a slice.
func (c *Card) Row(i int) []int {
	return c.Rows[i][:]
}

// Numbers returns all 15 numbers on the card in row order.
func (c *Card) Numbers() []int {
	out := make([]int, 0, CardRows*CardRowSize)
	for i := range c.Rows {
		out = append(out, c.Rows[i][:]...)
	}
	return out
}
