package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	ICSFeedURL    string
	DBDSN         string // пусто — брони живут в памяти процесса
	Environment   string

	Timezone    string
	OpenHour    int
	CloseHour   int
	SlotMinutes int

	FeedTimeout time.Duration

	SendgridAPIKey string
	EmailFrom      string
	OwnerEmail     string
}

func Load() (*Config, error) {
	// .env опционален: в проде переменные приходят из окружения
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		ICSFeedURL:     os.Getenv("ICS_FEED_URL"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getEnv("ENV", "development"),
		Timezone:       getEnv("TIMEZONE", "Asia/Jerusalem"),
		OpenHour:       getEnvInt("OPEN_HOUR", 10),
		CloseHour:      getEnvInt("CLOSE_HOUR", 19),
		SlotMinutes:    getEnvInt("SLOT_MINUTES", 60),
		FeedTimeout:    time.Duration(getEnvInt("FEED_TIMEOUT_SECONDS", 10)) * time.Second,
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      os.Getenv("EMAIL_FROM"),
		OwnerEmail:     os.Getenv("OWNER_EMAIL"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.ICSFeedURL == "" {
		return nil, fmt.Errorf("ICS_FEED_URL is required but not set")
	}
	if cfg.OpenHour < 0 || cfg.CloseHour > 24 || cfg.OpenHour >= cfg.CloseHour {
		return nil, fmt.Errorf("invalid business hours: %d-%d", cfg.OpenHour, cfg.CloseHour)
	}
	if cfg.SlotMinutes <= 0 {
		return nil, fmt.Errorf("invalid slot duration: %d minutes", cfg.SlotMinutes)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using default %d", key, raw, fallback)
		return fallback
	}
	return value
}
