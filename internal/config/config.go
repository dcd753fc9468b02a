package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings loaded from the environment.
type Config struct {
	// DatabaseDriver is "sqlite3" or "postgres".
	DatabaseDriver string
	// DatabaseDSN is a file path for sqlite or a connection URL for postgres.
	DatabaseDSN string
	// TelegramToken enables the Telegram presenter when set.
	TelegramToken string
	// ReminderHour is the hour of day (0-23) for daily review reminders.
	ReminderHour int
	// ReminderThreshold: cards scored below this count as needing review.
	ReminderThreshold int
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseDriver:    getEnv("FLASHQUIZ_DB_DRIVER", "sqlite3"),
		DatabaseDSN:       getEnv("FLASHQUIZ_DB", "flashcards.db"),
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		ReminderHour:      9,
		ReminderThreshold: 0,
		LogLevel:          getEnv("FLASHQUIZ_LOG_LEVEL", "error"),
	}

	if v := os.Getenv("FLASHQUIZ_REMINDER_HOUR"); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid FLASHQUIZ_REMINDER_HOUR %q", v)
		}
		cfg.ReminderHour = hour
	}
	if v := os.Getenv("FLASHQUIZ_REMINDER_THRESHOLD"); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FLASHQUIZ_REMINDER_THRESHOLD %q", v)
		}
		cfg.ReminderThreshold = threshold
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
