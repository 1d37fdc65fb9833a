package config

import "time"

// RateLimitConfig defines settings for the Redis token-bucket rate
// limiter. The limiter shields the booking endpoints from bursty retry
// storms; the bucket state lives in Redis so multiple API instances
// share one budget per key.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // bucket size
	RefillTokens   int           // tokens added per interval
	RefillInterval time.Duration // how often tokens are added
	TTL            time.Duration // Redis key expiry for idle buckets
	KeyStrategy    string        // which request parts form the bucket key
	Prefix         string        // Redis key namespace
	Debug          bool          // emit per-request limiter diagnostics
}

// LoadRateLimitConfig builds a RateLimitConfig from environment
// variables and normalizes out-of-range values so the limiter never
// starts in a degenerate state.
func LoadRateLimitConfig() RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	if b := envInt("RATE_LIMIT_BURST", -1); b > 0 {
		def.Capacity = b
	}
	if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		def.RefillTokens = 1
		def.RefillInterval = every
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	// Keep buckets alive across at least a few refill intervals.
	minTTL := 5 * def.RefillInterval
	if def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}
