package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/grading-engine/pkg/config"
)

const clientName = "grading-engine"

// ErrNoClient is returned by readiness checks when Redis was never connected.
var ErrNoClient = errors.New("redis client not configured")

// NewRedis connects to Redis and pings it within the dial timeout. The client
// backs the grading table cache only, so the pool stays small by default.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		ClientName:  clientName,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}

	return client, nil
}

// Ready returns a readiness probe for the client.
func Ready(client *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrNoClient
		}
		return client.Ping(ctx).Err()
	}
}
