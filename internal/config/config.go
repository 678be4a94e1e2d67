package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr  string
	DataPath    string
	AuthFile    string
	AuthUser    string
	AuthPass    string
	RecentLimit int
	LogLevel    string
}

// Load reads configuration from the environment. A .env file in the
// working directory fills in anything the environment does not set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:  envOr("NOTES_LISTEN_ADDR", "127.0.0.1:8080"),
		DataPath:    envOr("NOTES_DATA_PATH", "."),
		AuthFile:    os.Getenv("NOTES_AUTH_FILE"),
		AuthUser:    os.Getenv("NOTES_AUTH_USER"),
		AuthPass:    os.Getenv("NOTES_AUTH_PASS"),
		RecentLimit: parseIntOr("NOTES_RECENT_LIMIT", 20),
		LogLevel:    envOr("NOTES_LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
