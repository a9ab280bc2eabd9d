package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound    GameError = "session not found"
	ErrCardNotFound       GameError = "card not found"
	ErrInvalidState       GameError = "operation not valid for current session status"
	ErrCapacityExceeded   GameError = "not enough slots available"
	ErrDuplicateBooking   GameError = "time slot already booked for this session"
	ErrDuplicateCode      GameError = "session code already exists"
	ErrAlreadyClaimed     GameError = "win tier already claimed"
	ErrNumbersIncomplete  GameError = "claimed numbers are not all announced"
	ErrNoNumbersAnnounced GameError = "no numbers announced yet"
	ErrCardNotOwned       GameError = "card does not belong to the claiming player"
	ErrInvalidTier        GameError = "invalid win tier"
	ErrInvalidSlotCount   GameError = "slot count must be at least 1"
	ErrNotTerminal        GameError = "session has no terminal condition yet"
	ErrOutOfRange         GameError = "draw cursor out of range"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilSessionRepo     GameError = "session repository cannot be nil"
	ErrNilBookingRepo     GameError = "booking repository cannot be nil"
	ErrNilGenerator       GameError = "generator cannot be nil"
	ErrNilIssuer          GameError = "reward issuer cannot be nil"
	ErrNilPublisher       GameError = "event publisher cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrNilUUIDGenerator   GameError = "UUID generator cannot be nil"
)
