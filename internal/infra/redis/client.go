package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

const pingTimeout = 5 * time.Second

// Client owns the go-redis pool used for rate limiting and readiness probes.
type Client struct {
	client *redis.Client
	logger *zap.Logger
}

// NewClient connects and pings once so a misconfigured address fails at startup.
func NewClient(ctx context.Context, cfg config.RedisSettings, logger *zap.Logger) (*Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	}

	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connection established",
		zap.String("addr", opts.Addr),
		zap.Int("db", cfg.DB),
		zap.Bool("tls_enabled", cfg.TLSEnabled),
	)

	return &Client{client: client, logger: logger}, nil
}

// Client returns the underlying redis.Client for direct access
func (c *Client) Client() *redis.Client {
	return c.client
}

// HealthCheck performs a ping to verify Redis connectivity
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	c.logger.Info("closing redis connection")
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
