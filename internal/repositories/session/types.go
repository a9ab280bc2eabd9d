package session

import "github.com/housielive/housie/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionByCodeInput struct {
	Code string
}

type GetSessionsByStatusInput struct {
	Status models.SessionStatus
}

type GetSessionsByStatusOutput struct {
	Sessions []*models.Session
}

type DeleteSessionInput struct {
	SessionID string
}
