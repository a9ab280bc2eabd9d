package httpapi

import (
	"time"

	"github.com/housielive/housie/internal/models"
)

type CreateSessionRequest struct {
	Code        string    `json:"code" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	TotalSlots  int       `json:"totalSlots"`
}

type CreateSessionResponse struct {
	Session *models.Session `json:"session"`
}

type BookRequest struct {
	OwnerID    string `json:"ownerId" binding:"required"`
	Count      int    `json:"count" binding:"required,gt=0"`
	TimeBucket string `json:"timeBucket" binding:"required"`
}

type BookResponse struct {
	Booking *models.Booking `json:"booking"`
	Cards   []*models.Card  `json:"cards"`
}

type ClaimRequest struct {
	OwnerID string         `json:"ownerId" binding:"required"`
	CardID  string         `json:"cardId" binding:"required"`
	Tier    models.WinTier `json:"winType" binding:"required"`
}

type ClaimResponse struct {
	Winner *models.Winner `json:"winner"`
}

type SessionStateResponse struct {
	Status        models.SessionStatus              `json:"status"`
	AnnouncedNums []int                             `json:"announcedNumbers"`
	CurrentNumber int                               `json:"currentNumber"`
	Remaining     int                               `json:"remaining"`
	Winners       map[models.WinTier]*models.Winner `json:"winners"`
}

type NumbersResponse struct {
	AnnouncedNums []int `json:"announcedNumbers"`
	CurrentNumber int   `json:"currentNumber"`
	Remaining     int   `json:"remaining"`
}

type BookingsResponse struct {
	Bookings []*models.Booking `json:"bookings"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
