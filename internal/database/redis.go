package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClientName identifies this service in CLIENT LIST.
const RedisClientName = "pantrychef"

// RedisOptions turns cfg into client options. REDIS_URL wins over the
// host/port fields; a password or DB set separately still applies when the
// URL leaves them out.
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		if parsed.Password == "" {
			parsed.Password = cfg.RedisPassword
		}
		if parsed.DB == 0 {
			parsed.DB = cfg.RedisDB
		}
		opts = parsed
	}

	opts.ClientName = RedisClientName
	opts.DialTimeout = 5 * time.Second
	// suggestion reads and rate limit checks sit on the request path
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	return opts, nil
}

// NewRedisClient connects to the configured Redis and pings it.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis")
	return client, nil
}
