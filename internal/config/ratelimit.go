package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig defines settings for the fixed-window API rate
// limiter.  When Enabled is false or no Redis client is available the
// limiter is a no-op.
type RateLimitConfig struct {
	Enabled bool          // master switch
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Defaults are generous enough for a small floor
// staff sharing one terminal.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: boolEnv("RATE_LIMIT_ENABLED", true),
		Limit:   intEnv("RATE_LIMIT_REQUESTS", 120),
		Window:  durEnv("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  strEnv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

func strEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func durEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
