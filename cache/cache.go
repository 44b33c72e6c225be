// Package cache provides a small Redis-backed key/value store used to
// memoize resolved targets between client sessions.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Compile-time interface compliance check.
var _ Store = (*store)(nil)

// ErrMiss is returned by Get when the key is not present.
var ErrMiss = errors.New("cache: miss")

// Store is a minimal key/value store with per-key TTL.
type Store interface {
	Start(ctx context.Context) error
	Stop() error
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type store struct {
	log    logrus.FieldLogger
	cfg    Config
	client *redis.Client
}

// NewStore creates a Redis-backed store.
func NewStore(log logrus.FieldLogger, cfg Config) Store {
	return &store{
		log: log.WithField("component", "cache"),
		cfg: cfg,
	}
}

// Start initializes the Redis connection pool and verifies connectivity.
func (s *store) Start(ctx context.Context) error {
	s.log.WithFields(logrus.Fields{
		"address": s.cfg.Address,
		"db":      s.cfg.DB,
	}).Info("Initializing cache store")

	s.client = redis.NewClient(&redis.Options{
		Addr:         s.cfg.Address,
		Password:     s.cfg.Password,
		DB:           s.cfg.DB,
		DialTimeout:  s.cfg.DialTimeout,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		PoolSize:     s.cfg.PoolSize,
	})

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s.log.Info("Cache store started")

	return nil
}

// Stop closes the Redis connection pool.
func (s *store) Stop() error {
	if s.client != nil {
		return s.client.Close()
	}

	return nil
}

// Get retrieves a value by key. Returns ErrMiss when the key is absent.
func (s *store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.cfg.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}

	return val, err
}

// Set stores a key-value pair with optional TTL (0 = no expiration).
func (s *store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.cfg.Prefix+key, value, ttl).Err()
}

// Del deletes one or more keys.
func (s *store) Del(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.cfg.Prefix + k
	}

	return s.client.Del(ctx, prefixed...).Err()
}
