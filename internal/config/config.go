package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Redis  Redis
	Game   Game
}

type Server struct {
	Host string
	Port int
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Game struct {
	// ScanInterval is how often scheduled sessions are checked for start
	ScanInterval time.Duration

	// DrawInterval is the pause between announced numbers
	DrawInterval time.Duration

	// DefaultTotalSlots is the capacity for sessions created without one
	DefaultTotalSlots int
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "0.0.0.0"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0"
	}

	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
	}

	scanInterval, err := durationEnv("SCAN_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	drawInterval, err := durationEnv("DRAW_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totalSlotsStr := os.Getenv("DEFAULT_TOTAL_SLOTS")
	if totalSlotsStr == "" {
		totalSlotsStr = "100"
	}

	totalSlots, err := strconv.Atoi(totalSlotsStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid DEFAULT_TOTAL_SLOTS: %w", op, err)
	}

	return &Config{
		Server: Server{
			Host: serverHost,
			Port: serverPort,
		},
		Redis: Redis{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Game: Game{
			ScanInterval:      scanInterval,
			DrawInterval:      drawInterval,
			DefaultTotalSlots: totalSlots,
		},
	}, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
