package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultProductTTL = 5 * time.Minute

// RedisProductCache holds read-side product snapshots in Redis. It backs
// catalog browsing only; the transactional stock path always goes to the
// database so reservations never act on stale quantities.
type RedisProductCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// ProductCacheOption is a functional option for configuring the cache
type ProductCacheOption func(*RedisProductCache)

// WithTTL sets how long product snapshots live before expiring
func WithTTL(ttl time.Duration) ProductCacheOption {
	return func(c *RedisProductCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) ProductCacheOption {
	return func(c *RedisProductCache) {
		c.logger = logger
	}
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisProductCache creates a product cache with its own Redis client
func NewRedisProductCache(cfg RedisConfig, opts ...ProductCacheOption) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisProductCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultProductTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisProductCacheWithClient(client *redis.Client, opts ...ProductCacheOption) *RedisProductCache {
	cache := &RedisProductCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultProductTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisProductCache) key(id uuid.UUID) string {
	return "product:" + id.String()
}

// Get retrieves a product snapshot from cache. A miss returns (nil, nil).
func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Product cache miss", zap.String("product_id", id.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get product from cache",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// Corrupt entry: drop it and report a miss.
		c.client.Del(ctx, c.key(id))
		c.logger.Warn("Evicted corrupt product cache entry",
			zap.String("product_id", id.String()),
			zap.Error(err))
		return nil, nil
	}

	return &product, nil
}

// Set stores a product snapshot with the configured TTL
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	if err := c.client.Set(ctx, c.key(product.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache product: %w", err)
	}

	return nil
}

// Invalidate removes a product snapshot from cache
func (c *RedisProductCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

// Close closes the Redis client if this cache owns it
func (c *RedisProductCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisProductCache implements catalog.ProductCache
var _ catalog.ProductCache = (*RedisProductCache)(nil)
