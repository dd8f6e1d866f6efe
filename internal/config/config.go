// internal/config/config.go
//
// Environment-driven configuration for the server.
// Values come from the process environment, optionally seeded from a .env
// file in development (godotenv never overrides variables that are already set).

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/robalobadob/pixelart/apps/go-server/internal/canvas"
)

// Config holds all runtime settings.
type Config struct {
	Port         string                // PORT
	LogLevel     string                // LOG_LEVEL
	DBPath       string                // DB_PATH
	AppEnv       string                // APP_ENV ("production" enables Secure cookies)
	ClientOrigin string                // CLIENT_ORIGIN, for CORS
	CookieName   string                // COOKIE_NAME, auth token cookie
	JWTSecret    string                // JWT_SECRET
	JWTDays      int                   // JWT_EXPIRES_DAYS
	CellSize     int                   // CELL_SIZE, pixels per cell
	MaxViewport  canvas.ViewportBounds // MAX_VIEWPORT_WIDTH / MAX_VIEWPORT_HEIGHT
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/app.db"),
		AppEnv:       getEnv("APP_ENV", "development"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		CookieName:   getEnv("COOKIE_NAME", "pixelart_token"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTDays:      getInt("JWT_EXPIRES_DAYS", 14),
		CellSize:     getInt("CELL_SIZE", canvas.DefaultCellSize),
		MaxViewport: canvas.ViewportBounds{
			Width:  getInt("MAX_VIEWPORT_WIDTH", 7680),
			Height: getInt("MAX_VIEWPORT_HEIGHT", 4320),
		},
	}
}

// Production reports whether cookies must be Secure/SameSite=None.
func (c Config) Production() bool { return c.AppEnv == "production" }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getInt parses k as a positive int, falling back to def.
func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
