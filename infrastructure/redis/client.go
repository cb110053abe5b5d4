package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"uptask-api/pkg/config"
	"uptask-api/pkg/logger"
)

const connectTimeout = 5 * time.Second

// Client connection เดียวที่ใช้ร่วมกันใน process (ตอนนี้มีแค่ token store)
type Client struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewClient parse REDIS_URL แล้ว ping ก่อนคืน client
// password/db ใน config ทับค่าที่อยู่ใน URL
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log := logger.Component("redis")
	log.Info("Redis connected", "addr", opt.Addr, "db", opt.DB)

	return &Client{rdb: rdb, log: log}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
