package game

import (
	"testing"

	"github.com/housielive/housie/internal/models"
	"github.com/stretchr/testify/assert"
)

func testCard() *models.Card {
	return &models.Card{
		ID:        "card-1",
		SessionID: "session-1",
		OwnerID:   "player-a",
		Rows: [models.CardRows][models.CardRowSize]int{
			{3, 17, 29, 44, 61},
			{5, 22, 38, 52, 70},
			{9, 33, 47, 68, 81},
		},
	}
}

func testLiveSession(announced ...int) *models.Session {
	return &models.Session{
		ID:        "session-1",
		Status:    models.SessionStatusLive,
		Announced: announced,
		Winners:   make(map[models.WinTier]*models.Winner),
	}
}

func TestValidateClaimFirstLine(t *testing.T) {
	card := testCard()

	// All of row 0 announced, plus noise
	session := testLiveSession(3, 17, 80, 29, 44, 12, 61)
	assert.NoError(t, validateClaim(session, card, "player-a", models.WinTierFirstLine))

	// One number of row 0 missing
	session = testLiveSession(3, 17, 29, 44)
	assert.Equal(t, ErrNumbersIncomplete, validateClaim(session, card, "player-a", models.WinTierFirstLine))
}

func TestValidateClaimLineTiersAreIndependent(t *testing.T) {
	card := testCard()

	// Second line fully covered, first line untouched and unclaimed
	session := testLiveSession(5, 22, 38, 52, 70)
	assert.NoError(t, validateClaim(session, card, "player-a", models.WinTierSecondLine))

	// Third line likewise needs no prior claims
	session = testLiveSession(9, 33, 47, 68, 81)
	assert.NoError(t, validateClaim(session, card, "player-a", models.WinTierThirdLine))
}

func TestValidateClaimJaldi(t *testing.T) {
	card := testCard()

	// Any one complete row qualifies
	session := testLiveSession(9, 33, 47, 68, 81)
	assert.NoError(t, validateClaim(session, card, "player-a", models.WinTierJaldi))

	// No complete row
	session = testLiveSession(3, 5, 9, 17, 22, 33)
	assert.Equal(t, ErrNumbersIncomplete, validateClaim(session, card, "player-a", models.WinTierJaldi))
}

func TestValidateClaimHousie(t *testing.T) {
	card := testCard()

	all := append(append(card.Row(0), card.Row(1)...), card.Row(2)...)
	session := testLiveSession(all...)
	assert.NoError(t, validateClaim(session, card, "player-a", models.WinTierHousie))

	// Missing a single number anywhere fails the full-card claim
	session = testLiveSession(all[:14]...)
	assert.Equal(t, ErrNumbersIncomplete, validateClaim(session, card, "player-a", models.WinTierHousie))
}

func TestValidateClaimAlreadyClaimed(t *testing.T) {
	card := testCard()
	session := testLiveSession(3, 17, 29, 44, 61)

	session.Winners[models.WinTierFirstLine] = &models.Winner{
		PlayerID: "player-b",
		CardID:   "card-2",
	}

	assert.Equal(t, ErrAlreadyClaimed, validateClaim(session, card, "player-a", models.WinTierFirstLine))
}

func TestValidateClaimIgnoresIncompleteWinnerRecord(t *testing.T) {
	card := testCard()
	session := testLiveSession(3, 17, 29, 44, 61)

	// A record without a player id must not block a real claim
	session.Winners[models.WinTierFirstLine] = &models.Winner{CardID: "card-2"}

	assert.NoError(t, validateClaim(session, card, "player-a", models.WinTierFirstLine))
}

func TestValidateClaimRejectsNonLiveSession(t *testing.T) {
	card := testCard()

	session := testLiveSession(3, 17, 29, 44, 61)
	session.Status = models.SessionStatusCompleted
	assert.Equal(t, ErrInvalidState, validateClaim(session, card, "player-a", models.WinTierFirstLine))

	session.Status = models.SessionStatusScheduled
	assert.Equal(t, ErrInvalidState, validateClaim(session, card, "player-a", models.WinTierFirstLine))
}

func TestValidateClaimRejectsEmptyAnnouncements(t *testing.T) {
	card := testCard()
	session := testLiveSession()

	assert.Equal(t, ErrNoNumbersAnnounced, validateClaim(session, card, "player-a", models.WinTierFirstLine))
}

func TestValidateClaimRejectsForeignCard(t *testing.T) {
	session := testLiveSession(3, 17, 29, 44, 61)

	// Someone else's card
	card := testCard()
	assert.Equal(t, ErrCardNotOwned, validateClaim(session, card, "player-b", models.WinTierFirstLine))

	// A card issued for a different session
	card = testCard()
	card.SessionID = "other-session"
	assert.Equal(t, ErrCardNotOwned, validateClaim(session, card, "player-a", models.WinTierFirstLine))
}

func TestValidateClaimRejectsUnknownTier(t *testing.T) {
	card := testCard()
	session := testLiveSession(3, 17, 29, 44, 61)

	assert.Equal(t, ErrInvalidTier, validateClaim(session, card, "player-a", models.WinTier("MIDDLE_SQUARE")))
}
