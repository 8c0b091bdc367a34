package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	BotToken      string
	AdminBotToken string // optional, falls back to the main bot
	AdminChatID   int64
	AdminPassword string
	WebAppURL     string
	DBPath        string
	UploadDir     string
	PublicDir     string
	HTTPPort      string
	LogFile       string
	LogConsole    bool
}

// Load reads the configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		AdminBotToken: os.Getenv("ADMIN_BOT_TOKEN"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		WebAppURL:     os.Getenv("WEBAPP_URL"),
		DBPath:        "data/shop.db",
		UploadDir:     "data/uploads",
		PublicDir:     "web",
		HTTPPort:      "10000",
		LogFile:       "data/shop.log",
		LogConsole:    true,
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		config.DBPath = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		config.UploadDir = v
	}
	if v := os.Getenv("PUBLIC_DIR"); v != "" {
		config.PublicDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		config.HTTPPort = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		config.LogFile = v
	}
	if v := os.Getenv("LOG_CONSOLE"); v != "" {
		config.LogConsole = v != "0" && v != "false"
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID is not a number: %v", err)
		}
		config.AdminChatID = parsed
	}

	if config.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is empty")
	}
	if config.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD environment variable is empty")
	}

	return config, nil
}
