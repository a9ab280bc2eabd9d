package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/housielive/housie/internal/common/clock"
	"github.com/housielive/housie/internal/models"
	sessionRepo "github.com/housielive/housie/internal/repositories/session"
	"github.com/housielive/housie/internal/services/game"
)

const (
	defaultScanInterval = 10 * time.Second
	defaultDrawInterval = 5 * time.Second
)

var (
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrNilSessionRepo = errors.New("session repository cannot be nil")
	ErrNilGameService = errors.New("game service cannot be nil")
)

// Config holds dependencies and tunables for the scheduler
type Config struct {
	// SessionRepo is scanned for due and live sessions
	SessionRepo sessionRepo.Repository

	// Game drives session transitions and draws
	Game game.Service

	// Clock provides the current time
	Clock clock.Clock

	// ScanInterval is how often scheduled sessions are checked for start
	ScanInterval time.Duration

	// DrawInterval is the pause between announced numbers
	DrawInterval time.Duration
}

// Scheduler starts sessions when their scheduled time arrives and runs
// one draw loop per LIVE session. Loops are tracked in a registry so a
// session never gets two of them.
type Scheduler struct {
	sessionRepo  sessionRepo.Repository
	game         game.Service
	clock        clock.Clock
	scanInterval time.Duration
	drawInterval time.Duration

	// Draw loops derive from baseCtx, never from a caller's ctx: a loop
	// attached during an HTTP request must outlive the request.
	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu    sync.Mutex
	loops map[string]context.CancelFunc
	wg    sync.WaitGroup
}

// New creates a new scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.Game == nil {
		return nil, ErrNilGameService
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	scanInterval := cfg.ScanInterval
	if scanInterval <= 0 {
		scanInterval = defaultScanInterval
	}

	drawInterval := cfg.DrawInterval
	if drawInterval <= 0 {
		drawInterval = defaultDrawInterval
	}

	baseCtx, baseCancel := context.WithCancel(context.Background())

	return &Scheduler{
		sessionRepo:  cfg.SessionRepo,
		game:         cfg.Game,
		clock:        clk,
		scanInterval: scanInterval,
		drawInterval: drawInterval,
		baseCtx:      baseCtx,
		baseCancel:   baseCancel,
		loops:        make(map[string]context.CancelFunc),
	}, nil
}

// Run blocks, scanning for due sessions until ctx is cancelled. It
// begins with a recovery pass so sessions that were LIVE before a
// restart get their draw loops back.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Recover(ctx); err != nil {
		log.Printf("scheduler: recovery scan failed: %v", err)
	}

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.baseCancel()
			s.stopAll()
			s.wg.Wait()
			return ctx.Err()
		case <-ticker.C:
			s.startDue(ctx)
		}
	}
}

// Recover re-attaches draw loops for every session stored as LIVE.
func (s *Scheduler) Recover(ctx context.Context) error {
	output, err := s.sessionRepo.GetSessionsByStatus(ctx, &sessionRepo.GetSessionsByStatusInput{
		Status: models.SessionStatusLive,
	})
	if err != nil {
		return err
	}

	for _, session := range output.Sessions {
		if s.attach(session.ID) {
			log.Printf("scheduler: recovered draw loop for live session %s (%s)", session.ID, session.Code)
		}
	}
	return nil
}

// EnsureRunning attaches a draw loop for the session if it is LIVE and
// has none. Safe to call from any read path; it is how a session whose
// loop died comes back to life.
func (s *Scheduler) EnsureRunning(ctx context.Context, sessionID string) {
	if s.Running(sessionID) {
		return
	}

	state, err := s.game.GetSessionState(ctx, &game.GetSessionStateInput{SessionID: sessionID})
	if err != nil || state.Status != models.SessionStatusLive {
		return
	}

	if s.attach(sessionID) {
		log.Printf("scheduler: re-attached draw loop for session %s", sessionID)
	}
}

// Running reports whether a draw loop is attached for the session.
func (s *Scheduler) Running(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loops[sessionID]
	return ok
}

// startDue promotes every scheduled session whose time has come and
// attaches its draw loop.
func (s *Scheduler) startDue(ctx context.Context) {
	output, err := s.sessionRepo.GetSessionsByStatus(ctx, &sessionRepo.GetSessionsByStatusInput{
		Status: models.SessionStatusScheduled,
	})
	if err != nil {
		log.Printf("scheduler: scheduled scan failed: %v", err)
		return
	}

	now := s.clock.Now()
	for _, session := range output.Sessions {
		if session.ScheduledAt.After(now) {
			continue
		}

		if _, err := s.game.StartSession(ctx, &game.StartSessionInput{
			SessionID: session.ID,
		}); err != nil {
			log.Printf("scheduler: failed to start session %s (%s): %v", session.ID, session.Code, err)
			continue
		}

		s.attach(session.ID)
	}
}

// attach registers a draw loop for the session and spawns it. It
// reports false when a loop is already registered, so double starts
// collapse to one loop. The loop's context comes from baseCtx so the
// loop survives whatever request attached it.
func (s *Scheduler) attach(sessionID string) bool {
	s.mu.Lock()
	if _, ok := s.loops[sessionID]; ok {
		s.mu.Unlock()
		return false
	}
	loopCtx, cancel := context.WithCancel(s.baseCtx)
	s.loops[sessionID] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.detach(sessionID)
		s.drawLoop(loopCtx, sessionID)
	}()
	return true
}

// detach removes the session's loop registration.
func (s *Scheduler) detach(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.loops[sessionID]; ok {
		cancel()
		delete(s.loops, sessionID)
	}
}

// drawLoop announces one number per tick until the session completes
// or ctx is cancelled. Transient failures are retried on the next tick
// with the same number.
func (s *Scheduler) drawLoop(ctx context.Context, sessionID string) {
	ticker := time.NewTicker(s.drawInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := s.drawOnce(ctx, sessionID); done {
				return
			}
		}
	}
}

// drawOnce performs a single draw tick. It reports true when the loop
// should stop: the session ended, vanished, or left the LIVE state.
func (s *Scheduler) drawOnce(ctx context.Context, sessionID string) bool {
	output, err := s.game.DrawNext(ctx, &game.DrawNextInput{SessionID: sessionID})
	if err != nil {
		switch {
		case errors.Is(err, game.ErrSessionNotFound),
			errors.Is(err, game.ErrInvalidState),
			errors.Is(err, game.ErrOutOfRange):
			log.Printf("scheduler: stopping draw loop for session %s: %v", sessionID, err)
			return true
		default:
			// Persist failures and the like: the cursor did not advance,
			// so the next tick retries the same number.
			log.Printf("scheduler: draw tick failed for session %s, will retry: %v", sessionID, err)
			return false
		}
	}

	if output.Ended {
		log.Printf("scheduler: session %s completed, stopping draw loop", sessionID)
		return true
	}
	return false
}

// stopAll cancels every running draw loop.
func (s *Scheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sessionID, cancel := range s.loops {
		cancel()
		delete(s.loops, sessionID)
	}
}
