package config

import (
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds a client from REDIS_URL. Returns nil when the
// variable is unset; callers fall back to the in-memory preference store.
func ConnectRedis() (*redis.Client, error) {
	raw := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if raw == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(raw)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
