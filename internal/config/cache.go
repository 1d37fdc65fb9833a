package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the Redis response cache middleware.
// The cache fronts the public browse endpoints (space listings, slot
// listings, occupancy views), which are read-heavy and tolerate a short
// staleness window. When Enabled is false or no Redis client is
// available, caching is a no-op.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // HTTP methods to cache, upper-cased
	TTL          time.Duration   // lifetime of cache entries
	KeyStrategy  string          // which request parts form the cache key
	Prefix       string          // Redis key namespace
	MaxBodyBytes int             // largest response body worth caching
}

// LoadCacheConfig builds a CacheConfig from environment variables,
// falling back to defaults when unset.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
