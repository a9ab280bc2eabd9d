package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/housielive/housie/internal/config"
	httpapi "github.com/housielive/housie/internal/handlers/http"
	bookingRepository "github.com/housielive/housie/internal/repositories/booking"
	sessionRepository "github.com/housielive/housie/internal/repositories/session"
	"github.com/housielive/housie/internal/services/events"
	gameService "github.com/housielive/housie/internal/services/game"
	"github.com/housielive/housie/internal/services/rewards"
	"github.com/housielive/housie/internal/services/scheduler"
	"github.com/housielive/housie/internal/tambola"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	sessionRepo, err := sessionRepository.NewRedis(&sessionRepository.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	bookingRepo, err := bookingRepository.NewRedis(&bookingRepository.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create booking repository: %v", err)
	}

	// Initialize event hub with a Redis mirror for external consumers
	hub := events.NewHub(&events.Config{
		RedisClient: redisClient,
	})

	// Initialize the game service and its generators
	gameSvc, err := gameService.New(&gameService.Config{
		SessionRepo:       sessionRepo,
		BookingRepo:       bookingRepo,
		Generator:         tambola.New(&tambola.Config{}),
		Rewards:           rewards.New(&rewards.Config{}),
		Publisher:         hub,
		DefaultTotalSlots: cfg.Game.DefaultTotalSlots,
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	// Initialize the scheduler
	sched, err := scheduler.New(&scheduler.Config{
		SessionRepo:  sessionRepo,
		Game:         gameSvc,
		ScanInterval: cfg.Game.ScanInterval,
		DrawInterval: cfg.Game.DrawInterval,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Scheduler stopped: %v", err)
		}
	}()

	router := httpapi.NewRouter(httpapi.Deps{
		Game:       gameSvc,
		Bookings:   bookingRepo,
		Hub:        hub,
		Supervisor: sched,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	cancel()
	<-schedDone

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server has been shut down")
}
