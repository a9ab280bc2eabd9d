package booking

import "github.com/housielive/housie/internal/models"

type SaveBookingInput struct {
	Booking *models.Booking
	Cards   []*models.Card
}

type GetBookingInput struct {
	BookingID string
}

type GetBookingByBucketInput struct {
	SessionID  string
	OwnerID    string
	TimeBucket string
}

type GetBookingsForOwnerInput struct {
	OwnerID string
}

type GetBookingsForOwnerOutput struct {
	Bookings []*models.Booking
}

type GetCardInput struct {
	CardID string
}
