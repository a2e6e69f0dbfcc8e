package config

import (
	"os"
	"strconv"
	"time"

	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	JWTSecret      string
	DefaultRuleset string
	SessionTTL     time.Duration

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	PlayRateLimit  int
	PlayRateWindow time.Duration

	// Redis backend for the rate limiter (optional, fail-open)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env supported).
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	defaultRuleset := os.Getenv("DEFAULT_RULESET")
	if defaultRuleset == "" {
		defaultRuleset = game.KeyRPS
	}
	if _, err := game.ByKey(defaultRuleset); err != nil {
		logger.Fatal("DEFAULT_RULESET is not a known ruleset", "value", defaultRuleset)
	}

	sessionTTL := 60 * time.Minute
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sessionTTL = time.Duration(n) * time.Minute
		}
	}

	return &Config{
		AppPort:        port,
		JWTSecret:      jwtSecret,
		DefaultRuleset: defaultRuleset,
		SessionTTL:     sessionTTL,
		APIRateLimit:   envInt("API_RATE_LIMIT", 60),
		APIRateWindow:  envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		PlayRateLimit:  envInt("PLAY_RATE_LIMIT", 120),
		PlayRateWindow: envSeconds("PLAY_RATE_WINDOW_SECONDS", time.Minute),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
