package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/youssefmohamed45/stridetrack/internal/domain/events"
	"github.com/youssefmohamed45/stridetrack/pkg/config"
)

// Custom error types
var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
)

// Config holds the configuration for Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	DefaultTTL       time.Duration
	KeyPrefix        string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		DefaultTTL:       30 * time.Minute,
		KeyPrefix:        "stridetrack:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	if cfg.Server.Timeout > 0 {
		c.OperationTimeout = cfg.Server.Timeout
	}
	return c
}

// CacheMetrics tracks cache hit/miss statistics with atomic operations
type CacheMetrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// RedisClient wraps the Redis client with additional functionality
type RedisClient struct {
	client    *redis.Client
	metrics   *CacheMetrics
	ttls      sync.Map // map[string]time.Duration
	config    *Config
	closeOnce sync.Once
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r := &RedisClient{
		client:  client,
		config:  cfg,
		metrics: &CacheMetrics{},
	}

	// Per-type TTLs for cached responses
	r.ttls.Store("default", cfg.DefaultTTL)
	r.ttls.Store("window", 5*time.Minute)
	r.ttls.Store("chart", 5*time.Minute)
	r.ttls.Store("profile", time.Hour)
	r.ttls.Store("challenge", 10*time.Minute)

	return r, nil
}

// GetClient exposes the underlying Redis client for helpers such as the
// rate limiter.
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) key(k string) string {
	return r.config.KeyPrefix + k
}

// Get retrieves raw bytes for a key; returns ErrCacheNotFound on miss.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.metrics.misses.Add(1)
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	r.metrics.hits.Add(1)
	return data, nil
}

// Set stores raw bytes with a TTL; a non-positive TTL falls back to the
// configured default.
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.config.DefaultTTL
	}
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

// SetJSON marshals and stores a value under the given cache type's TTL.
func (r *RedisClient) SetJSON(ctx context.Context, cacheType, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return r.Set(ctx, key, data, r.TTLFor(cacheType))
}

// GetJSON loads and unmarshals a cached value.
func (r *RedisClient) GetJSON(ctx context.Context, key string, out interface{}) error {
	data, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// TTLFor returns the TTL configured for a cache type.
func (r *RedisClient) TTLFor(cacheType string) time.Duration {
	if ttl, ok := r.ttls.Load(cacheType); ok {
		return ttl.(time.Duration)
	}
	return r.config.DefaultTTL
}

// DeletePattern removes all keys matching the pattern (prefix applied).
func (r *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, r.key(pattern), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// PublishCelebrationEvent publishes a celebration to the shared channel.
func (r *RedisClient) PublishCelebrationEvent(ctx context.Context, event *events.CelebrationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode celebration event: %w", err)
	}
	return r.client.Publish(ctx, events.CelebrationEventChannel, payload).Err()
}

// PublishActivityEvent publishes an activity change notice.
func (r *RedisClient) PublishActivityEvent(ctx context.Context, event *events.ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode activity event: %w", err)
	}
	return r.client.Publish(ctx, events.ActivityEventChannel, payload).Err()
}

// Subscribe returns a subscription for the given channels.
func (r *RedisClient) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return r.client.Subscribe(ctx, channels...)
}

// HealthCheck pings Redis.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.OperationTimeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// GetMetrics returns hit/miss counters for the health endpoint.
func (r *RedisClient) GetMetrics() map[string]int64 {
	hits := r.metrics.hits.Load()
	misses := r.metrics.misses.Load()
	return map[string]int64{
		"hits":   hits,
		"misses": misses,
		"total":  hits + misses,
	}
}

// Close shuts down the Redis connection once.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.client.Close()
	})
	return err
}
