package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config holds the connection settings for the Redis instance backing the
// book read cache. CacheTTL bounds how long a cached book may lag behind
// Mongo; zero falls back to the BookCache default.
type Config struct {
	Addr        string
	Password    string
	DB          int
	CacheTTL    time.Duration
	PingTimeout time.Duration
}

// Connect opens the client shared by the book cache and the readiness probe,
// and verifies the instance is reachable before anything caches through it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
