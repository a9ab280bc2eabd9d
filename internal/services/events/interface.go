package events

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/housielive/housie/internal/services/events Publisher

import "context"

// Publisher delivers engine events to session subscribers. Publishing is
// best-effort: a failed delivery is logged, never surfaced to the caller,
// so a dropped notification cannot fail a draw tick or a claim. A
// subscriber that falls behind its buffer loses events rather than
// stalling the draw loop; each NumberAnnounced payload carries the full
// announcement log, so a lagging client resynchronizes on its next event.
type Publisher interface {
	// Publish fans an event out to all subscribers of its session
	Publish(ctx context.Context, event Event)
}
