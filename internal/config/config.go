// Package config reads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Addr         string // HTTP listen address
	DataDir      string // directory for the SQLite file and exports
	DatabaseURL  string // optional postgres:// URL; empty means SQLite
	LogLevel     string // debug / info / warn / error
	Telegram     TelegramConfig
	ReminderHour int // local hour for the daily reminder job
}

// TelegramConfig holds the optional reminder-channel settings
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// Enabled reports whether reminders can actually be sent
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

// Load reads configuration from environment variables
func Load() *Config {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	return &Config{
		Addr:        getEnv("ADDR", ":8080"),
		DataDir:     getEnv("DATA_DIR", "data"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),
		},
		ReminderHour: getEnvInt("REMINDER_HOUR", 9),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
