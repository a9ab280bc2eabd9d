package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/housielive/housie/internal/repositories/session Repository

import (
	"context"

	"github.com/housielive/housie/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// SaveSession persists a session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionByCode retrieves a session by its human-readable code
	GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error)

	// GetSessionsByStatus retrieves all sessions currently in a status
	GetSessionsByStatus(ctx context.Context, input *GetSessionsByStatusInput) (*GetSessionsByStatusOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
