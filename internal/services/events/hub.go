package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultChannelPrefix prefixes the Redis pub/sub channel per session
	defaultChannelPrefix = "housie:events:"

	// subscriberBuffer is the per-subscriber channel capacity. A
	// subscriber that falls this far behind starts losing events rather
	// than stalling the draw loop.
	subscriberBuffer = 64
)

// Config holds configuration for the event hub
type Config struct {
	// RedisClient, if set, mirrors every event to a per-session pub/sub
	// channel so out-of-process consumers can follow along
	RedisClient *redis.Client

	// ChannelPrefix overrides the Redis channel prefix
	ChannelPrefix string
}

// Hub fans engine events out to in-process subscribers and mirrors them
// to Redis pub/sub. It implements Publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[int]chan Event
	nextID int

	redisClient   *redis.Client
	channelPrefix string
}

// NewHub creates a new event hub
func NewHub(cfg *Config) *Hub {
	hub := &Hub{
		subs:          make(map[string]map[int]chan Event),
		channelPrefix: defaultChannelPrefix,
	}

	if cfg != nil {
		hub.redisClient = cfg.RedisClient
		if cfg.ChannelPrefix != "" {
			hub.channelPrefix = cfg.ChannelPrefix
		}
	}

	return hub
}

// Publish delivers an event to every subscriber of its session and
// mirrors it to the session's Redis channel.
func (h *Hub) Publish(ctx context.Context, event Event) {
	h.mu.RLock()
	for _, ch := range h.subs[event.SessionID] {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop rather than block
			// the publishing loop.
		}
	}
	h.mu.RUnlock()

	if h.redisClient == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal %s event for session %s: %v", event.Type, event.SessionID, err)
		return
	}

	channel := fmt.Sprintf("%s%s", h.channelPrefix, event.SessionID)
	if err := h.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("events: failed to publish %s event for session %s: %v", event.Type, event.SessionID, err)
	}
}

// Subscribe registers a subscriber for one session's events. The returned
// cancel func unregisters the subscriber and closes the channel; it is
// safe to call more than once.
func (h *Hub) Subscribe(sessionID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[int]chan Event)
	}

	id := h.nextID
	h.nextID++

	ch := make(chan Event, subscriberBuffer)
	h.subs[sessionID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.subs[sessionID], id)
			if len(h.subs[sessionID]) == 0 {
				delete(h.subs, sessionID)
			}
			close(ch)
		})
	}

	return ch, cancel
}
