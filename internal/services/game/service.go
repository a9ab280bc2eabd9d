package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/housielive/housie/internal/common/clock"
	commonuuid "github.com/housielive/housie/internal/common/uuid"
	"github.com/housielive/housie/internal/models"
	bookingRepo "github.com/housielive/housie/internal/repositories/booking"
	sessionRepo "github.com/housielive/housie/internal/repositories/session"
	"github.com/housielive/housie/internal/services/events"
	"github.com/housielive/housie/internal/services/rewards"
	"github.com/housielive/housie/internal/tambola"
)

// defaultTotalSlots is the session capacity used when none is given
const defaultTotalSlots = 100

// Config holds dependencies and tunables for the game service
type Config struct {
	// SessionRepo persists sessions
	SessionRepo sessionRepo.Repository

	// BookingRepo persists bookings and cards
	BookingRepo bookingRepo.Repository

	// Generator produces cards and draw sequences
	Generator *tambola.Generator

	// Rewards issues coupons for accepted claims
	Rewards rewards.Issuer

	// Publisher delivers engine events to subscribers
	Publisher events.Publisher

	// Clock provides the current time
	Clock clock.Clock

	// UUID generates identifiers
	UUID commonuuid.UUID

	// DefaultTotalSlots is the capacity for sessions created without one
	DefaultTotalSlots int
}

// service implements the Service interface
type service struct {
	sessionRepo       sessionRepo.Repository
	bookingRepo       bookingRepo.Repository
	generator         *tambola.Generator
	rewards           rewards.Issuer
	publisher         events.Publisher
	clock             clock.Clock
	uuid              commonuuid.UUID
	defaultTotalSlots int

	// All mutation of one session is serialized through its entry here so
	// draw ticks, reservations and claims never interleave their
	// read-modify-write of cursor, bookedSlots or winners.
	mu           sync.Mutex
	sessionLocks map[string]*sync.Mutex
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.BookingRepo == nil {
		return nil, ErrNilBookingRepo
	}
	if cfg.Generator == nil {
		return nil, ErrNilGenerator
	}
	if cfg.Rewards == nil {
		return nil, ErrNilIssuer
	}
	if cfg.Publisher == nil {
		return nil, ErrNilPublisher
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	uuidGen := cfg.UUID
	if uuidGen == nil {
		uuidGen = commonuuid.New()
	}

	totalSlots := cfg.DefaultTotalSlots
	if totalSlots <= 0 {
		totalSlots = defaultTotalSlots
	}

	return &service{
		sessionRepo:       cfg.SessionRepo,
		bookingRepo:       cfg.BookingRepo,
		generator:         cfg.Generator,
		rewards:           cfg.Rewards,
		publisher:         cfg.Publisher,
		clock:             clk,
		uuid:              uuidGen,
		defaultTotalSlots: totalSlots,
		sessionLocks:      make(map[string]*sync.Mutex),
	}, nil
}

// sessionLock returns the mutex serializing one session's mutators.
func (s *service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.sessionLocks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.sessionLocks[sessionID] = lock
	}
	return lock
}

// pruneSessionLock drops a completed session's registry entry so the
// map does not grow with every session ever touched. Mutators on a
// COMPLETED session fail the status check, so a racing lookup that
// re-creates the entry serializes nothing that matters.
func (s *service) pruneSessionLock(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessionLocks, sessionID)
}

// CreateSession creates a new scheduled session
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Code == "" {
		return nil, errors.New("code is required")
	}
	if input.ScheduledAt.IsZero() {
		return nil, errors.New("scheduled time is required")
	}

	// Check code uniqueness
	existing, err := s.sessionRepo.GetSessionByCode(ctx, &sessionRepo.GetSessionByCodeInput{
		Code: input.Code,
	})
	if err == nil && existing != nil {
		return nil, ErrDuplicateCode
	}
	if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, err
	}

	totalSlots := input.TotalSlots
	if totalSlots <= 0 {
		totalSlots = s.defaultTotalSlots
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:          s.uuid.NewUUID(),
		Code:        input.Code,
		Status:      models.SessionStatusScheduled,
		ScheduledAt: input.ScheduledAt,
		TotalSlots:  totalSlots,
		Winners:     make(map[models.WinTier]*models.Winner),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{
		Session: session,
	}, nil
}

// StartSession promotes a scheduled session to LIVE. Starting a session
// that is already LIVE is a no-op.
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	lock := s.sessionLock(input.SessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case models.SessionStatusLive:
		return &StartSessionOutput{Session: session, AlreadyLive: true}, nil
	case models.SessionStatusCompleted:
		return nil, ErrInvalidState
	}

	// Generate the draw sequence exactly once; a restart that finds a
	// sequence already present must never reshuffle it.
	if len(session.DrawSequence) == 0 {
		session.DrawSequence = s.generator.NewDrawSequence()
		session.Cursor = 0
	}

	now := s.clock.Now()
	session.Status = models.SessionStatusLive
	if session.StartedAt == nil {
		session.StartedAt = &now
	}
	session.UpdatedAt = now

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	log.Printf("game: session %s (%s) is LIVE", session.ID, session.Code)

	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeSessionStarted,
		SessionID: session.ID,
		Timestamp: now,
		SessionStarted: &events.SessionStartedPayload{
			StartedAt: *session.StartedAt,
		},
	})

	return &StartSessionOutput{
		Session: session,
	}, nil
}

// EndSession completes a LIVE session. It refuses unless a terminal
// condition holds: a complete HOUSIE winner record, or all 90 numbers
// announced. Ending an already completed session is a no-op.
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	lock := s.sessionLock(input.SessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case models.SessionStatusCompleted:
		return &EndSessionOutput{Session: session}, nil
	case models.SessionStatusScheduled, models.SessionStatusCountdown:
		return nil, ErrInvalidState
	}

	if !terminalConditionMet(session) {
		return nil, ErrNotTerminal
	}

	if err := s.completeSession(ctx, session); err != nil {
		return nil, err
	}

	return &EndSessionOutput{
		Session: session,
	}, nil
}

// DrawNext announces the next number of a LIVE session. When a terminal
// condition holds it completes the session instead and reports Ended.
func (s *service) DrawNext(ctx context.Context, input *DrawNextInput) (*DrawNextOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	lock := s.sessionLock(input.SessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusLive {
		return nil, ErrInvalidState
	}

	if terminalConditionMet(session) {
		if err := s.completeSession(ctx, session); err != nil {
			return nil, err
		}
		return &DrawNextOutput{
			Ended:     true,
			Announced: session.Announced,
			Remaining: session.Remaining(),
			Session:   session,
		}, nil
	}

	// With the terminal check passed the cursor must sit inside a full
	// sequence. Anything else is corrupted state: end the session rather
	// than announce garbage.
	if len(session.DrawSequence) != models.DrawPoolSize || session.Cursor < 0 || session.Cursor >= len(session.DrawSequence) {
		log.Printf("game: INVARIANT VIOLATION: session %s cursor=%d sequence_len=%d, forcing completion",
			session.ID, session.Cursor, len(session.DrawSequence))
		if err := s.completeSession(ctx, session); err != nil {
			return nil, err
		}
		return nil, ErrOutOfRange
	}

	number := session.DrawSequence[session.Cursor]
	now := s.clock.Now()

	session.Announced = append(session.Announced, number)
	session.CurrentNumber = number
	session.Cursor++
	session.UpdatedAt = now

	// The cursor only advances if this save succeeds; a failed tick is
	// retried with the same number on the next timer fire.
	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist draw: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeNumberAnnounced,
		SessionID: session.ID,
		Timestamp: now,
		NumberAnnounced: &events.NumberAnnouncedPayload{
			Number:    number,
			Announced: session.Announced,
			Remaining: session.Remaining(),
		},
	})

	return &DrawNextOutput{
		Number:    number,
		Announced: session.Announced,
		Remaining: session.Remaining(),
		Session:   session,
	}, nil
}

// Reserve books slots in a session and issues one card per slot
func (s *service) Reserve(ctx context.Context, input *ReserveInput) (*ReserveOutput, error) {
	if input == nil || input.SessionID == "" || input.OwnerID == "" || input.TimeBucket == "" {
		return nil, errors.New("input, session ID, owner ID and time bucket cannot be empty")
	}
	if input.Count < 1 {
		return nil, ErrInvalidSlotCount
	}

	lock := s.sessionLock(input.SessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionStatusScheduled {
		return nil, ErrInvalidState
	}

	if session.BookedSlots+input.Count > session.TotalSlots {
		return nil, ErrCapacityExceeded
	}

	// One confirmed reservation per (player, session, time bucket);
	// checked here under the session lock rather than with a storage
	// unique index.
	existing, err := s.bookingRepo.GetBookingByBucket(ctx, &bookingRepo.GetBookingByBucketInput{
		SessionID:  input.SessionID,
		OwnerID:    input.OwnerID,
		TimeBucket: input.TimeBucket,
	})
	if err == nil && existing != nil {
		return nil, ErrDuplicateBooking
	}
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, err
	}

	now := s.clock.Now()

	cards := make([]*models.Card, 0, input.Count)
	cardIDs := make([]string, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		card := &models.Card{
			ID:          s.uuid.NewUUID(),
			SessionID:   session.ID,
			OwnerID:     input.OwnerID,
			Label:       s.generator.NewCardLabel(),
			TicketLabel: tambola.TicketLabel(session.Code, session.BookedSlots+i+1),
			Rows:        s.generator.NewCardRows(),
			CreatedAt:   now,
		}
		cards = append(cards, card)
		cardIDs = append(cardIDs, card.ID)
	}

	booking := &models.Booking{
		ID:         s.uuid.NewUUID(),
		SessionID:  session.ID,
		OwnerID:    input.OwnerID,
		TimeBucket: input.TimeBucket,
		CardIDs:    cardIDs,
		Status:     models.BookingStatusConfirmed,
		BookedAt:   now,
	}

	if err := s.bookingRepo.SaveBooking(ctx, &bookingRepo.SaveBookingInput{
		Booking: booking,
		Cards:   cards,
	}); err != nil {
		return nil, err
	}

	session.BookedSlots += input.Count
	session.UpdatedAt = now

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	log.Printf("game: session %s booked %d slot(s) for %s (%d/%d)",
		session.Code, input.Count, input.OwnerID, session.BookedSlots, session.TotalSlots)

	return &ReserveOutput{
		Booking: booking,
		Cards:   cards,
	}, nil
}

// SubmitClaim validates a win claim, records the winner with an issued
// coupon, and notifies subscribers
func (s *service) SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*SubmitClaimOutput, error) {
	if input == nil || input.SessionID == "" || input.OwnerID == "" || input.CardID == "" {
		return nil, errors.New("input, session ID, owner ID and card ID cannot be empty")
	}

	lock := s.sessionLock(input.SessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	card, err := s.bookingRepo.GetCard(ctx, &bookingRepo.GetCardInput{
		CardID: input.CardID,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	if err := validateClaim(session, card, input.OwnerID, input.Tier); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	coupon := s.rewards.Issue(input.Tier)

	winner := &models.Winner{
		PlayerID:    input.OwnerID,
		CardID:      card.ID,
		CardLabel:   card.Label,
		WonAt:       now,
		CouponCode:  coupon.Code,
		CouponValue: coupon.Value,
	}

	if session.Winners == nil {
		session.Winners = make(map[models.WinTier]*models.Winner)
	}
	session.Winners[input.Tier] = winner
	session.UpdatedAt = now

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	log.Printf("game: session %s tier %s won by %s with card %s (coupon %s)",
		session.Code, input.Tier, input.OwnerID, card.Label, coupon.Code)

	// A HOUSIE win is a terminal condition; the draw loop completes the
	// session on its next tick, exactly like the claim path always has.
	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeWinnerDeclared,
		SessionID: session.ID,
		Timestamp: now,
		WinnerDeclared: &events.WinnerDeclaredPayload{
			Tier:   input.Tier,
			Winner: winner,
		},
	})

	return &SubmitClaimOutput{
		Winner: winner,
	}, nil
}

// GetSessionState returns a read-only snapshot of a session
func (s *service) GetSessionState(ctx context.Context, input *GetSessionStateInput) (*GetSessionStateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionStateOutput{
		Status:        session.Status,
		Announced:     session.Announced,
		CurrentNumber: session.CurrentNumber,
		Cursor:        session.Cursor,
		Remaining:     session.Remaining(),
		Winners:       session.Winners,
		Session:       session,
	}, nil
}

// getSession fetches a session, mapping the repository's not-found error.
func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// terminalConditionMet reports whether a session may complete: a HOUSIE
// winner record carrying both player and card, or all numbers announced.
// A partially-populated winner record does not count.
func terminalConditionMet(session *models.Session) bool {
	if session.Winner(models.WinTierHousie).Complete() {
		return true
	}
	return session.Cursor >= models.DrawPoolSize
}

// completeSession transitions a session to COMPLETED, persists it and
// publishes the end-of-game event. Callers hold the session lock.
func (s *service) completeSession(ctx context.Context, session *models.Session) error {
	now := s.clock.Now()
	session.Status = models.SessionStatusCompleted
	if session.EndedAt == nil {
		session.EndedAt = &now
	}
	session.UpdatedAt = now

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return err
	}

	log.Printf("game: session %s (%s) COMPLETED after %d announced number(s)",
		session.ID, session.Code, len(session.Announced))

	s.pruneSessionLock(session.ID)

	s.publisher.Publish(ctx, events.Event{
		Type:      events.TypeSessionEnded,
		SessionID: session.ID,
		Timestamp: now,
		SessionEnded: &events.SessionEndedPayload{
			Winners: session.Winners,
		},
	})

	return nil
}
