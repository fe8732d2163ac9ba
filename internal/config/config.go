package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultSQLitePath    = "data/easyenglish.db"
	DefaultRemindAt      = "12:00"
	DefaultYandexDictURL = "https://dictionary.yandex.net/api/v1/dicservice.json/lookup"
)

// Config holds all startup configuration. Values are read-only inputs
// supplied through the environment (optionally via a .env file loaded
// by the binaries).
type Config struct {
	// Telegram
	TelegramToken string

	// Database
	DBDriver    string // "postgres" or "sqlite3"
	DatabaseURL string // postgres connection string
	SQLitePath  string // sqlite file path

	// Yandex Dictionary API (ingestion only)
	YandexToken string
	YandexURL   string

	// Reminders
	RemindAt string // "HH:MM" wall-clock fire time

	Debug bool
}

// Load builds a Config from the environment. Only the values a given
// binary actually needs are validated by it; Load itself reports what
// it found.
func Load() *Config {
	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite3"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", DefaultSQLitePath),
		YandexToken:   os.Getenv("YANDEX_DICT_TOKEN"),
		YandexURL:     getEnv("YANDEX_DICT_URL", DefaultYandexDictURL),
		RemindAt:      getEnv("REMIND_AT", DefaultRemindAt),
		Debug:         getBool("DEBUG", false),
	}
}

// ValidateBot checks the values the bot binary cannot run without.
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	return c.validateDB()
}

// ValidateIngest checks the values the ingestion binary cannot run without.
func (c *Config) ValidateIngest() error {
	if c.YandexToken == "" {
		return fmt.Errorf("YANDEX_DICT_TOKEN environment variable is not set")
	}
	return c.validateDB()
}

func (c *Config) validateDB() error {
	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when DB_DRIVER=postgres")
		}
	case "sqlite3":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite3)", c.DBDriver)
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.SQLitePath
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
