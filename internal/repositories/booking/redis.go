package booking

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
	bookingKeyPrefix = "booking:"
	cardKeyPrefix    = "card:"

	// bucketKeyPrefix indexes the confirmed booking an owner holds for a
	// (session, time bucket) pair
	bucketKeyPrefix = "booking_slot:"

	// ownerBookingsPrefix indexes booking IDs by owner, scored by booking time
	ownerBookingsPrefix = "owner_bookings:"
)

// ErrBookingNotFound is returned when a booking is not found
var ErrBookingNotFound = errors.New("booking not found")

// ErrCardNotFound is returned when a card is not found
var ErrCardNotFound = errors.New("card not found")

// Config holds configuration for the Redis booking repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed booking repository
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

func bucketKey(sessionID, ownerID, timeBucket string) string {
	return fmt.Sprintf("%s%s:%s:%s", bucketKeyPrefix, sessionID, ownerID, timeBucket)
}

// SaveBooking persists a booking and its cards to Redis
func (r *redisRepository) SaveBooking(ctx context.Context, input *SaveBookingInput) error {
	if input == nil || input.Booking == nil {
		return errors.New("input and booking cannot be nil")
	}

	bookingJSON, err := json.Marshal(input.Booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	pipe := r.client.Pipeline()

	bookingKey := fmt.Sprintf("%s%s", bookingKeyPrefix, input.Booking.ID)
	pipe.Set(ctx, bookingKey, bookingJSON, 0)

	// Index confirmed bookings by (session, owner, bucket) so the
	// allocator can do its duplicate check without a storage-level
	// unique constraint.
	if input.Booking.Status == models.BookingStatusConfirmed && input.Booking.TimeBucket != "" {
		pipe.Set(ctx, bucketKey(input.Booking.SessionID, input.Booking.OwnerID, input.Booking.TimeBucket), input.Booking.ID, 0)
	}

	if input.Booking.OwnerID != "" {
		ownerKey := fmt.Sprintf("%s%s", ownerBookingsPrefix, input.Booking.OwnerID)
		pipe.ZAdd(ctx, ownerKey, redis.Z{
			Score:  float64(input.Booking.BookedAt.UnixNano()),
			Member: input.Booking.ID,
		})
	}

	for _, card := range input.Cards {
		cardJSON, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("failed to marshal card %s: %w", card.ID, err)
		}
		cardKey := fmt.Sprintf("%s%s", cardKeyPrefix, card.ID)
		pipe.Set(ctx, cardKey, cardJSON, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}

	return nil
}

// GetBooking retrieves a booking by ID from Redis
func (r *redisRepository) GetBooking(ctx context.Context, input *GetBookingInput) (*models.Booking, error) {
	if input == nil || input.BookingID == "" {
		return nil, errors.New("input and booking ID cannot be empty")
	}

	bookingKey := fmt.Sprintf("%s%s", bookingKeyPrefix, input.BookingID)
	bookingJSON, err := r.client.Get(ctx, bookingKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	var booking models.Booking
	if err := json.Unmarshal([]byte(bookingJSON), &booking); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking: %w", err)
	}

	return &booking, nil
}

// GetBookingByBucket retrieves the booking an owner holds for a session
// time bucket from Redis
func (r *redisRepository) GetBookingByBucket(ctx context.Context, input *GetBookingByBucketInput) (*models.Booking, error) {
	if input == nil || input.SessionID == "" || input.OwnerID == "" || input.TimeBucket == "" {
		return nil, errors.New("input, session ID, owner ID and time bucket cannot be empty")
	}

	bookingID, err := r.client.Get(ctx, bucketKey(input.SessionID, input.OwnerID, input.TimeBucket)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking ID for bucket: %w", err)
	}

	return r.GetBooking(ctx, &GetBookingInput{
		BookingID: bookingID,
	})
}

// GetBookingsForOwner retrieves all bookings held by an owner from Redis
func (r *redisRepository) GetBookingsForOwner(ctx context.Context, input *GetBookingsForOwnerInput) (*GetBookingsForOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	ownerKey := fmt.Sprintf("%s%s", ownerBookingsPrefix, input.OwnerID)
	bookingIDs, err := r.client.ZRange(ctx, ownerKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking IDs for owner: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(bookingIDs))
	for _, bookingID := range bookingIDs {
		booking, err := r.GetBooking(ctx, &GetBookingInput{BookingID: bookingID})
		if err != nil {
			if errors.Is(err, ErrBookingNotFound) {
				continue
			}
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return &GetBookingsForOwnerOutput{
		Bookings: bookings,
	}, nil
}

// GetCard retrieves a card by ID from Redis
func (r *redisRepository) GetCard(ctx context.Context, input *GetCardInput) (*models.Card, error) {
	if input == nil || input.CardID == "" {
		return nil, errors.New("input and card ID cannot be empty")
	}

	cardKey := fmt.Sprintf("%s%s", cardKeyPrefix, input.CardID)
	cardJSON, err := r.client.Get(ctx, cardKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	var card models.Card
	if err := json.Unmarshal([]byte(cardJSON), &card); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card: %w", err)
	}

	return &card, nil
}
