package models

import (
	"time"
)

// WinTier is a named win condition players can claim
type WinTier string

const (
	// WinTierFirstLine is won by covering the whole first row of a card
	WinTierFirstLine WinTier = "FIRST_LINE"

	// WinTierSecondLine is won by covering the whole second row of a card
	WinTierSecondLine WinTier = "SECOND_LINE"

	// WinTierThirdLine is won by covering the whole third row of a card
	WinTierThirdLine WinTier = "THIRD_LINE"

	// WinTierJaldi is won by being first to cover any complete row
	WinTierJaldi WinTier = "JALDI"

	// WinTierHousie is won by covering all three rows of a card
	WinTierHousie WinTier = "HOUSIE"
)

// WinTiers lists all claimable tiers, weakest to strongest.
var WinTiers = []WinTier{
	WinTierFirstLine,
	WinTierSecondLine,
	WinTierThirdLine,
	WinTierJaldi,
	WinTierHousie,
}

// Valid reports whether t is a known win tier.
func (t WinTier) Valid() bool {
	switch t {
	case WinTierFirstLine, WinTierSecondLine, WinTierThirdLine, WinTierJaldi, WinTierHousie:
		return true
	}
	return false
}

// Winner records who claimed a win tier
type Winner struct {
	// PlayerID is the player who made the winning claim
	PlayerID string

	// CardID is the card the claim was made with
	CardID string

	// CardLabel is the human-readable label of the winning card
	CardLabel string

	// WonAt is when the claim was accepted
	WonAt time.Time

	// CouponCode is the reward coupon issued for the win
	CouponCode string

	// CouponValue is the value of the issued coupon
	CouponValue int
}

// Complete reports whether w carries both a player identity and a card
// reference. Records missing either were observed in legacy data and
// must not count as a win.
func (w *Winner) Complete() bool {
	return w != nil && w.PlayerID != "" && w.CardID != ""
}
