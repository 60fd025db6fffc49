package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port            string
	GinMode         string
	DBPath          string
	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	StorageDir      string
	AppURL          string
	Debug           bool
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		DBPath:          getEnv("DB_PATH", "ecommerce.db"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "ecommerce_super_secret_2025")),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 60)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_MIN", 60*24*7)) * time.Minute,
		StorageDir:      getEnv("STORAGE_DIR", "storage"),
		AppURL:          getEnv("APP_URL", "http://localhost:8080"),
		Debug:           getEnvBool("APP_DEBUG", true),
	}
}

// SetupLogger configures the global zerolog logger. Debug mode gets a human
// readable console writer, production gets JSON on stderr.
func (c *Config) SetupLogger() {
	if c.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
