package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/housielive/housie/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newTestSession(id, code string, status models.SessionStatus) *models.Session {
	return &models.Session{
		ID:          id,
		Code:        code,
		Status:      status,
		ScheduledAt: s.testNow,
		TotalSlots:  100,
		Winners:     map[models.WinTier]*models.Winner{},
		CreatedAt:   s.testNow,
		UpdatedAt:   s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := s.newTestSession("test-session-id", "HOUSIE42", models.SessionStatusScheduled)
	session.DrawSequence = []int{3, 17, 29}
	session.Announced = []int{3}
	session.Cursor = 1
	session.CurrentNumber = 3
	session.BookedSlots = 5
	session.Winners[models.WinTierFirstLine] = &models.Winner{
		PlayerID:    "player-a",
		CardID:      "card-1",
		WonAt:       s.testNow,
		CouponCode:  "ABCD1234",
		CouponValue: 500,
	}

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-session-id", retrieved.ID)
	s.Equal("HOUSIE42", retrieved.Code)
	s.Equal(models.SessionStatusScheduled, retrieved.Status)
	s.Equal([]int{3, 17, 29}, retrieved.DrawSequence)
	s.Equal([]int{3}, retrieved.Announced)
	s.Equal(1, retrieved.Cursor)
	s.Equal(3, retrieved.CurrentNumber)
	s.Equal(100, retrieved.TotalSlots)
	s.Equal(5, retrieved.BookedSlots)
	s.Require().NotNil(retrieved.Winners[models.WinTierFirstLine])
	s.Equal("player-a", retrieved.Winners[models.WinTierFirstLine].PlayerID)
	s.Equal("ABCD1234", retrieved.Winners[models.WinTierFirstLine].CouponCode)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "missing",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestGetSessionByCode() {
	session := s.newTestSession("test-session-id", "HOUSIE42", models.SessionStatusScheduled)

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{
		Code: "HOUSIE42",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)
	s.Equal("test-session-id", retrieved.ID)

	_, err = s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{
		Code: "NOPE",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestGetSessionsByStatus() {
	scheduled := s.newTestSession("scheduled-id", "SCHED1", models.SessionStatusScheduled)
	live := s.newTestSession("live-id", "LIVE1", models.SessionStatusLive)
	completed := s.newTestSession("completed-id", "DONE1", models.SessionStatusCompleted)

	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: scheduled}))
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: live}))
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: completed}))

	result, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusScheduled,
	})
	s.Require().NoError(err)
	s.Require().Len(result.Sessions, 1)
	s.Equal("scheduled-id", result.Sessions[0].ID)

	result, err = s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusLive,
	})
	s.Require().NoError(err)
	s.Require().Len(result.Sessions, 1)
	s.Equal("live-id", result.Sessions[0].ID)
}

func (s *RedisRepositoryTestSuite) TestStatusTransitionMovesIndexSets() {
	session := s.newTestSession("test-session-id", "HOUSIE42", models.SessionStatusScheduled)

	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	// Promote to LIVE
	session.Status = models.SessionStatusLive
	session.UpdatedAt = s.testNow.Add(time.Minute)
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	scheduled, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusScheduled,
	})
	s.Require().NoError(err)
	s.Len(scheduled.Sessions, 0)

	live, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusLive,
	})
	s.Require().NoError(err)
	s.Require().Len(live.Sessions, 1)
	s.Equal("test-session-id", live.Sessions[0].ID)

	// Complete the session
	session.Status = models.SessionStatusCompleted
	session.UpdatedAt = s.testNow.Add(2 * time.Minute)
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	live, err = s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusLive,
	})
	s.Require().NoError(err)
	s.Len(live.Sessions, 0)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	session := s.newTestSession("test-session-id", "HOUSIE42", models.SessionStatusLive)

	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	err := s.repo.DeleteSession(context.Background(), &DeleteSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Equal(ErrSessionNotFound, err)

	_, err = s.repo.GetSessionByCode(context.Background(), &GetSessionByCodeInput{
		Code: "HOUSIE42",
	})
	s.Equal(ErrSessionNotFound, err)

	live, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusLive,
	})
	s.Require().NoError(err)
	s.Len(live.Sessions, 0)
}
