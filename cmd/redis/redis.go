package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadheryan/storefront/cmd/config"
	"github.com/redis/go-redis/v9"
)

// client backs sessions and login throttling. It stays nil until New or Set runs.
var client *redis.Client

// New dials Redis and keeps the client only once a ping succeeds.
func New(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config provided")
	}

	dial := cfg.Redis.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}
	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: dial,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dial)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}

	client = c
	return nil
}

// Set installs an already built client, e.g. one pointed at a test server.
func Set(c *redis.Client) {
	client = c
}

func Get() *redis.Client {
	return client
}

func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
