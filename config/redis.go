package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis returns a client for REDIS_URL, or nil when it is unset.
// Accepts redis:// URLs and bare host:port addresses.
func ConnectRedis(ctx context.Context, raw string) (*redis.Client, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	opts := &redis.Options{Addr: raw}
	if strings.HasPrefix(raw, "redis://") || strings.HasPrefix(raw, "rediss://") {
		parsed, err := redis.ParseURL(raw)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Println("🔧 Redis initialized with address:", opts.Addr)
	return client, nil
}
