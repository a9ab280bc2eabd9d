package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/housielive/housie/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	codeKeyPrefix    = "session_code:"

	// Status index sets
	scheduledSessionsKey = "scheduled_sessions"
	liveSessionsKey      = "live_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// statusSetKey returns the index set a status belongs to, or "" if the
// status is not indexed.
func statusSetKey(status models.SessionStatus) string {
	switch status {
	case models.SessionStatusScheduled:
		return scheduledSessionsKey
	case models.SessionStatusLive:
		return liveSessionsKey
	}
	return ""
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	pipe.Set(ctx, sessionKey, sessionJSON, 0)

	// Keep the code-to-id mapping current
	if input.Session.Code != "" {
		codeKey := fmt.Sprintf("%s%s", codeKeyPrefix, input.Session.Code)
		pipe.Set(ctx, codeKey, input.Session.ID, 0)
	}

	// A session lives in at most one status set; membership follows the
	// saved status.
	for _, setKey := range []string{scheduledSessionsKey, liveSessionsKey} {
		if setKey == statusSetKey(input.Session.Status) {
			pipe.SAdd(ctx, setKey, input.Session.ID)
		} else {
			pipe.SRem(ctx, setKey, input.Session.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetSessionByCode retrieves a session by its code from Redis
func (r *redisRepository) GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	codeKey := fmt.Sprintf("%s%s", codeKeyPrefix, input.Code)
	sessionID, err := r.client.Get(ctx, codeKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session ID for code: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// GetSessionsByStatus retrieves all sessions in a status from Redis
func (r *redisRepository) GetSessionsByStatus(ctx context.Context, input *GetSessionsByStatusInput) (*GetSessionsByStatusOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	setKey := statusSetKey(input.Status)
	if setKey == "" {
		return nil, fmt.Errorf("status %q is not indexed", input.Status)
	}

	sessionIDs, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &GetSessionsByStatusOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	sessionCommands := make(map[string]*redis.StringCmd)

	for _, sessionID := range sessionIDs {
		sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
		sessionCommands[sessionID] = pipe.Get(ctx, sessionKey)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for sessionID, cmd := range sessionCommands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Session was deleted between getting the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
		}

		sessions = append(sessions, &session)
	}

	return &GetSessionsByStatusOutput{
		Sessions: sessions,
	}, nil
}

// DeleteSession removes a session from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	// Get the session first to find its code
	session, err := r.GetSession(ctx, &GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	pipe.Del(ctx, sessionKey)

	if session.Code != "" {
		codeKey := fmt.Sprintf("%s%s", codeKeyPrefix, session.Code)
		pipe.Del(ctx, codeKey)
	}

	pipe.SRem(ctx, scheduledSessionsKey, input.SessionID)
	pipe.SRem(ctx, liveSessionsKey, input.SessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
