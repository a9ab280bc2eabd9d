package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	bookingRepo "github.com/housielive/housie/internal/repositories/booking"
	"github.com/housielive/housie/internal/services/events"
	"github.com/housielive/housie/internal/services/game"
)

// LoopSupervisor re-attaches a session's draw loop when a read path
// discovers it LIVE without one.
type LoopSupervisor interface {
	EnsureRunning(ctx context.Context, sessionID string)
}

// Deps collects everything the router serves from.
type Deps struct {
	Game       game.Service
	Bookings   bookingRepo.Repository
	Hub        *events.Hub
	Supervisor LoopSupervisor
}

// NewRouter builds the HTTP surface over the game engine.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), gin.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/sessions", handleCreateSession(deps))
	r.GET("/sessions/:id", handleGetSession(deps))
	r.GET("/sessions/:id/numbers", handleGetNumbers(deps))
	r.GET("/sessions/:id/winners", handleGetWinners(deps))
	r.POST("/sessions/:id/start", handleStartSession(deps))
	r.POST("/sessions/:id/end", handleEndSession(deps))
	r.POST("/sessions/:id/book", handleBook(deps))
	r.POST("/sessions/:id/claims", handleClaim(deps))
	if deps.Hub != nil {
		r.GET("/sessions/:id/stream", handleStream(deps))
	}

	r.GET("/owners/:id/bookings", handleOwnerBookings(deps))

	return r
}

func handleCreateSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		output, err := deps.Game.CreateSession(c.Request.Context(), &game.CreateSessionInput{
			Code:        req.Code,
			ScheduledAt: req.ScheduledAt,
			TotalSlots:  req.TotalSlots,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, CreateSessionResponse{Session: output.Session})
	}
}

func handleStartSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		output, err := deps.Game.StartSession(c.Request.Context(), &game.StartSessionInput{
			SessionID: sessionID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		if deps.Supervisor != nil {
			deps.Supervisor.EnsureRunning(c.Request.Context(), sessionID)
		}

		c.JSON(http.StatusOK, gin.H{
			"session":     output.Session,
			"alreadyLive": output.AlreadyLive,
		})
	}
}

func handleEndSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		output, err := deps.Game.EndSession(c.Request.Context(), &game.EndSessionInput{
			SessionID: c.Param("id"),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": output.Session})
	}
}

func handleGetSession(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		output, err := deps.Game.GetSessionState(c.Request.Context(), &game.GetSessionStateInput{
			SessionID: sessionID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		// A LIVE session read is the recovery hook: if its draw loop died
		// with the process, reading it brings the loop back.
		if deps.Supervisor != nil {
			deps.Supervisor.EnsureRunning(c.Request.Context(), sessionID)
		}

		c.JSON(http.StatusOK, SessionStateResponse{
			Status:        output.Status,
			AnnouncedNums: output.Announced,
			CurrentNumber: output.CurrentNumber,
			Remaining:     output.Remaining,
			Winners:       output.Winners,
		})
	}
}

func handleGetNumbers(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		output, err := deps.Game.GetSessionState(c.Request.Context(), &game.GetSessionStateInput{
			SessionID: c.Param("id"),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, NumbersResponse{
			AnnouncedNums: output.Announced,
			CurrentNumber: output.CurrentNumber,
			Remaining:     output.Remaining,
		})
	}
}

func handleGetWinners(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		output, err := deps.Game.GetSessionState(c.Request.Context(), &game.GetSessionStateInput{
			SessionID: c.Param("id"),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"winners": output.Winners})
	}
}

func handleBook(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		output, err := deps.Game.Reserve(c.Request.Context(), &game.ReserveInput{
			SessionID:  c.Param("id"),
			OwnerID:    req.OwnerID,
			Count:      req.Count,
			TimeBucket: req.TimeBucket,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, BookResponse{
			Booking: output.Booking,
			Cards:   output.Cards,
		})
	}
}

func handleClaim(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ClaimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		output, err := deps.Game.SubmitClaim(c.Request.Context(), &game.SubmitClaimInput{
			SessionID: c.Param("id"),
			OwnerID:   req.OwnerID,
			CardID:    req.CardID,
			Tier:      req.Tier,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, ClaimResponse{Winner: output.Winner})
	}
}

func handleOwnerBookings(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		output, err := deps.Bookings.GetBookingsForOwner(c.Request.Context(), &bookingRepo.GetBookingsForOwnerInput{
			OwnerID: c.Param("id"),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, BookingsResponse{Bookings: output.Bookings})
	}
}

// respondErr maps engine errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, game.ErrSessionNotFound), errors.Is(err, game.ErrCardNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidState),
		errors.Is(err, game.ErrNotTerminal),
		errors.Is(err, game.ErrCapacityExceeded),
		errors.Is(err, game.ErrDuplicateBooking),
		errors.Is(err, game.ErrDuplicateCode),
		errors.Is(err, game.ErrAlreadyClaimed):
		status = http.StatusConflict
	case errors.Is(err, game.ErrNumbersIncomplete),
		errors.Is(err, game.ErrNoNumbersAnnounced),
		errors.Is(err, game.ErrCardNotOwned),
		errors.Is(err, game.ErrInvalidTier),
		errors.Is(err, game.ErrInvalidSlotCount):
		status = http.StatusBadRequest
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}
