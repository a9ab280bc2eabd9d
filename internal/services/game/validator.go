package game

import (
	"github.com/housielive/housie/internal/models"
)

// validateClaim decides whether a win claim is acceptable. It is a pure
// function over the session's announced numbers, the card's rows and the
// requested tier; it performs no I/O and records nothing.
//
// Line tiers validate independently: a SECOND_LINE claim does not require
// FIRST_LINE to have been claimed first.
func validateClaim(session *models.Session, card *models.Card, ownerID string, tier models.WinTier) error {
	if !tier.Valid() {
		return ErrInvalidTier
	}

	if session.Status != models.SessionStatusLive {
		return ErrInvalidState
	}

	if len(session.Announced) == 0 {
		return ErrNoNumbersAnnounced
	}

	if card.OwnerID != ownerID || card.SessionID != session.ID {
		return ErrCardNotOwned
	}

	// A tier is write-once, but only a complete record counts: legacy
	// data held winner objects with status flags and no player, and those
	// must not block a real claim.
	if session.Winner(tier).Complete() {
		return ErrAlreadyClaimed
	}

	announced := make(map[int]bool, len(session.Announced))
	for _, n := range session.Announced {
		announced[n] = true
	}

	if !tierCovered(card, tier, announced) {
		return ErrNumbersIncomplete
	}

	return nil
}

// tierCovered reports whether the card satisfies the tier's coverage rule
// against the announced set.
func tierCovered(card *models.Card, tier models.WinTier, announced map[int]bool) bool {
	switch tier {
	case models.WinTierFirstLine:
		return rowCovered(card.Row(0), announced)
	case models.WinTierSecondLine:
		return rowCovered(card.Row(1), announced)
	case models.WinTierThirdLine:
		return rowCovered(card.Row(2), announced)
	case models.WinTierJaldi:
		// First to complete any single line
		for i := 0; i < models.CardRows; i++ {
			if rowCovered(card.Row(i), announced) {
				return true
			}
		}
		return false
	case models.WinTierHousie:
		// Full card
		for i := 0; i < models.CardRows; i++ {
			if !rowCovered(card.Row(i), announced) {
				return false
			}
		}
		return true
	}
	return false
}

// rowCovered reports whether every number of a row has been announced.
func rowCovered(row []int, announced map[int]bool) bool {
	for _, n := range row {
		if !announced[n] {
			return false
		}
	}
	return true
}
