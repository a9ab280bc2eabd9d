package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/housielive/housie/internal/services/game Service

import "context"

// Service defines the interface for game session operations
type Service interface {
	// CreateSession creates a new scheduled session
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// StartSession promotes a scheduled session to LIVE, generating its
	// draw sequence if not already present
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// EndSession completes a LIVE session, subject to the terminal
	// condition guard
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// DrawNext announces the next number of a LIVE session
	DrawNext(ctx context.Context, input *DrawNextInput) (*DrawNextOutput, error)

	// Reserve books slots in a session and issues cards for them
	Reserve(ctx context.Context, input *ReserveInput) (*ReserveOutput, error)

	// SubmitClaim validates a win claim and records the winner
	SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*SubmitClaimOutput, error)

	// GetSessionState returns a read-only snapshot of a session
	GetSessionState(ctx context.Context, input *GetSessionStateInput) (*GetSessionStateOutput, error)
}
