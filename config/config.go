package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	TelegramToken   string
	RunsDBPath      string
	DefaultBrand    string
	HeaderRow       int // 0-based offset; HEADER_ROW holds the 1-based row number
	SelectionMode   string
	StrictSeparator bool
	PreviewRows     int
	MaxUploadMB     int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RunsDBPath:    "data/runs.db",
		DefaultBrand:  "freemir",
		HeaderRow:     3,
		SelectionMode: "pattern",
		PreviewRows:   10,
		MaxUploadMB:   5,
	}

	if dbPath := os.Getenv("RUNS_DB_PATH"); dbPath != "" {
		config.RunsDBPath = dbPath
	}
	if brand := strings.TrimSpace(os.Getenv("DEFAULT_BRAND")); brand != "" {
		config.DefaultBrand = brand
	}
	if mode := strings.TrimSpace(os.Getenv("SELECTION_MODE")); mode != "" {
		config.SelectionMode = mode
	}

	headerRow, err := intFromEnv("HEADER_ROW", config.HeaderRow+1)
	if err != nil {
		return nil, err
	}
	if headerRow < 1 {
		return nil, fmt.Errorf("HEADER_ROW is a 1-based row number, got %d", headerRow)
	}
	config.HeaderRow = headerRow - 1

	if config.PreviewRows, err = intFromEnv("PREVIEW_ROWS", config.PreviewRows); err != nil {
		return nil, err
	}
	if config.MaxUploadMB, err = intFromEnv("MAX_UPLOAD_MB", config.MaxUploadMB); err != nil {
		return nil, err
	}

	if raw := os.Getenv("STRICT_SEPARATOR"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("STRICT_SEPARATOR has invalid format: %v", err)
		}
		config.StrictSeparator = parsed
	}

	if config.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", config.MaxUploadMB)
	}

	return config, nil
}

// RequireTelegram checks the settings needed by the bot
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is empty")
	}
	return nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid format: %v", key, err)
	}
	return parsed, nil
}
