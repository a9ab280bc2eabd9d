package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	clockMocks "github.com/housielive/housie/internal/common/clock/mocks"
	"github.com/housielive/housie/internal/models"
	sessionRepo "github.com/housielive/housie/internal/repositories/session"
	sessionMocks "github.com/housielive/housie/internal/repositories/session/mocks"
	"github.com/housielive/housie/internal/services/game"
	gameMocks "github.com/housielive/housie/internal/services/game/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SchedulerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockGame        *gameMocks.MockService
	mockClock       *clockMocks.MockClock
	scheduler       *Scheduler
	ctx             context.Context

	testTime time.Time
}

func (s *SchedulerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockGame = gameMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	// Intervals long enough that no real tick fires during a test; the
	// tick bodies are driven directly.
	sched, err := New(&Config{
		SessionRepo:  s.mockSessionRepo,
		Game:         s.mockGame,
		Clock:        s.mockClock,
		ScanInterval: time.Hour,
		DrawInterval: time.Hour,
	})
	s.Require().NoError(err)
	s.scheduler = sched
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.scheduler.stopAll()
	s.scheduler.wg.Wait()
	s.mockCtrl.Finish()
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) TestStartDueStartsRipeSessionsOnly() {
	due := &models.Session{
		ID:          "due-session",
		Code:        "DUE1",
		Status:      models.SessionStatusScheduled,
		ScheduledAt: s.testTime.Add(-time.Minute),
	}
	future := &models.Session{
		ID:          "future-session",
		Code:        "LATER",
		Status:      models.SessionStatusScheduled,
		ScheduledAt: s.testTime.Add(time.Hour),
	}

	s.mockSessionRepo.EXPECT().
		GetSessionsByStatus(s.ctx, &sessionRepo.GetSessionsByStatusInput{
			Status: models.SessionStatusScheduled,
		}).
		Return(&sessionRepo.GetSessionsByStatusOutput{Sessions: []*models.Session{due, future}}, nil)
	s.mockGame.EXPECT().
		StartSession(s.ctx, &game.StartSessionInput{SessionID: "due-session"}).
		Return(&game.StartSessionOutput{}, nil)

	s.scheduler.startDue(s.ctx)

	s.True(s.scheduler.Running("due-session"))
	s.False(s.scheduler.Running("future-session"))
}

func (s *SchedulerTestSuite) TestStartDueSkipsSessionThatFailsToStart() {
	due := &models.Session{
		ID:          "due-session",
		Status:      models.SessionStatusScheduled,
		ScheduledAt: s.testTime.Add(-time.Minute),
	}

	s.mockSessionRepo.EXPECT().
		GetSessionsByStatus(s.ctx, gomock.Any()).
		Return(&sessionRepo.GetSessionsByStatusOutput{Sessions: []*models.Session{due}}, nil)
	s.mockGame.EXPECT().
		StartSession(s.ctx, gomock.Any()).
		Return(nil, errors.New("redis down"))

	s.scheduler.startDue(s.ctx)

	s.False(s.scheduler.Running("due-session"))
}

func (s *SchedulerTestSuite) TestAttachCollapsesDoubleStarts() {
	s.True(s.scheduler.attach("session-1"))
	s.False(s.scheduler.attach("session-1"), "second attach must not spawn a second loop")
	s.True(s.scheduler.Running("session-1"))
}

func (s *SchedulerTestSuite) TestEnsureRunningAttachesLiveSession() {
	s.mockGame.EXPECT().
		GetSessionState(s.ctx, &game.GetSessionStateInput{SessionID: "live-session"}).
		Return(&game.GetSessionStateOutput{Status: models.SessionStatusLive}, nil)

	s.scheduler.EnsureRunning(s.ctx, "live-session")
	s.True(s.scheduler.Running("live-session"))

	// Already attached: no further state lookup
	s.scheduler.EnsureRunning(s.ctx, "live-session")
}

// A loop attached from a request-scoped context must keep drawing
// after that request's context is cancelled.
func (s *SchedulerTestSuite) TestEnsureRunningLoopOutlivesCaller() {
	sched, err := New(&Config{
		SessionRepo:  s.mockSessionRepo,
		Game:         s.mockGame,
		Clock:        s.mockClock,
		ScanInterval: time.Hour,
		DrawInterval: 5 * time.Millisecond,
	})
	s.Require().NoError(err)
	defer func() {
		sched.stopAll()
		sched.wg.Wait()
	}()

	reqCtx, cancelReq := context.WithCancel(context.Background())

	s.mockGame.EXPECT().
		GetSessionState(reqCtx, &game.GetSessionStateInput{SessionID: "live-1"}).
		Return(&game.GetSessionStateOutput{Status: models.SessionStatusLive}, nil)

	var draws atomic.Int64
	s.mockGame.EXPECT().
		DrawNext(gomock.Any(), &game.DrawNextInput{SessionID: "live-1"}).
		DoAndReturn(func(context.Context, *game.DrawNextInput) (*game.DrawNextOutput, error) {
			draws.Add(1)
			return &game.DrawNextOutput{Number: 7, Remaining: 50}, nil
		}).
		AnyTimes()

	sched.EnsureRunning(reqCtx, "live-1")
	s.Require().True(sched.Running("live-1"))

	// The request ends here
	cancelReq()

	before := draws.Load()
	deadline := time.Now().Add(2 * time.Second)
	for draws.Load() <= before+2 {
		s.Require().True(time.Now().Before(deadline), "draw loop stopped with the caller's context")
		time.Sleep(5 * time.Millisecond)
	}

	s.True(sched.Running("live-1"))
}

func (s *SchedulerTestSuite) TestEnsureRunningIgnoresNonLiveSession() {
	s.mockGame.EXPECT().
		GetSessionState(s.ctx, gomock.Any()).
		Return(&game.GetSessionStateOutput{Status: models.SessionStatusCompleted}, nil)

	s.scheduler.EnsureRunning(s.ctx, "done-session")
	s.False(s.scheduler.Running("done-session"))
}

func (s *SchedulerTestSuite) TestRecoverReattachesLiveSessions() {
	live := []*models.Session{
		{ID: "live-1", Code: "A", Status: models.SessionStatusLive},
		{ID: "live-2", Code: "B", Status: models.SessionStatusLive},
	}

	s.mockSessionRepo.EXPECT().
		GetSessionsByStatus(s.ctx, &sessionRepo.GetSessionsByStatusInput{
			Status: models.SessionStatusLive,
		}).
		Return(&sessionRepo.GetSessionsByStatusOutput{Sessions: live}, nil)

	s.Require().NoError(s.scheduler.Recover(s.ctx))

	s.True(s.scheduler.Running("live-1"))
	s.True(s.scheduler.Running("live-2"))
}

func (s *SchedulerTestSuite) TestDrawOnceContinuesMidGame() {
	s.mockGame.EXPECT().
		DrawNext(s.ctx, &game.DrawNextInput{SessionID: "session-1"}).
		Return(&game.DrawNextOutput{Number: 42, Remaining: 50}, nil)

	s.False(s.scheduler.drawOnce(s.ctx, "session-1"))
}

func (s *SchedulerTestSuite) TestDrawOnceStopsWhenSessionEnds() {
	s.mockGame.EXPECT().
		DrawNext(s.ctx, gomock.Any()).
		Return(&game.DrawNextOutput{Ended: true}, nil)

	s.True(s.scheduler.drawOnce(s.ctx, "session-1"))
}

func (s *SchedulerTestSuite) TestDrawOnceRetriesTransientFailure() {
	s.mockGame.EXPECT().
		DrawNext(s.ctx, gomock.Any()).
		Return(nil, errors.New("redis down"))

	s.False(s.scheduler.drawOnce(s.ctx, "session-1"), "a failed persist is retried next tick")
}

func (s *SchedulerTestSuite) TestDrawOnceStopsOnTerminalErrors() {
	for _, err := range []error{game.ErrSessionNotFound, game.ErrInvalidState, game.ErrOutOfRange} {
		s.mockGame.EXPECT().
			DrawNext(s.ctx, gomock.Any()).
			Return(nil, err)

		s.True(s.scheduler.drawOnce(s.ctx, "session-1"), "expected stop for %v", err)
	}
}
