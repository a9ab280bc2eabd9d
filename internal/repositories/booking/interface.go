package booking

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/housielive/housie/internal/repositories/booking Repository

import (
	"context"

	"github.com/housielive/housie/internal/models"
)

// Repository defines the interface for booking and card persistence
type Repository interface {
	// SaveBooking persists a booking together with its issued cards
	SaveBooking(ctx context.Context, input *SaveBookingInput) error

	// GetBooking retrieves a booking by ID
	GetBooking(ctx context.Context, input *GetBookingInput) (*models.Booking, error)

	// GetBookingByBucket retrieves the booking an owner holds for a
	// session time bucket, if any
	GetBookingByBucket(ctx context.Context, input *GetBookingByBucketInput) (*models.Booking, error)

	// GetBookingsForOwner retrieves all bookings held by an owner
	GetBookingsForOwner(ctx context.Context, input *GetBookingsForOwnerInput) (*GetBookingsForOwnerOutput, error)

	// GetCard retrieves an issued card by ID
	GetCard(ctx context.Context, input *GetCardInput) (*models.Card, error)
}
