package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Behyna/storefront-payments/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "payment:tx:"

var ErrCacheMiss = errors.New("CACHE_MISS")

type Config struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// TransactionCache holds short-lived copies of payment transactions for the
// polling read path. Every status transition must call Invalidate.
type TransactionCache interface {
	Get(ctx context.Context, identifier string) (*model.PaymentTransaction, error)
	Set(ctx context.Context, tx *model.PaymentTransaction) error
	Invalidate(ctx context.Context, identifier string) error
}

func NewRedisClient(cfg Config, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Addr))
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Successfully connected to Redis", zap.String("addr", cfg.Addr))

	return client, nil
}

type redisTransactionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTransactionCache(client *redis.Client, cfg Config) TransactionCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &redisTransactionCache{client: client, ttl: ttl}
}

func (c *redisTransactionCache) Get(ctx context.Context, identifier string) (*model.PaymentTransaction, error) {
	data, err := c.client.Get(ctx, keyPrefix+identifier).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var tx model.PaymentTransaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("decoding cached transaction: %w", err)
	}

	return &tx, nil
}

func (c *redisTransactionCache) Set(ctx context.Context, tx *model.PaymentTransaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encoding transaction: %w", err)
	}

	return c.client.Set(ctx, keyPrefix+tx.Identifier, data, c.ttl).Err()
}

func (c *redisTransactionCache) Invalidate(ctx context.Context, identifier string) error {
	return c.client.Del(ctx, keyPrefix+identifier).Err()
}

type noopTransactionCache struct{}

// NewNoopTransactionCache is used when no Redis address is configured.
func NewNoopTransactionCache() TransactionCache {
	return noopTransactionCache{}
}

func (noopTransactionCache) Get(context.Context, string) (*model.PaymentTransaction, error) {
	return nil, ErrCacheMiss
}

func (noopTransactionCache) Set(context.Context, *model.PaymentTransaction) error { return nil }

func (noopTransactionCache) Invalidate(context.Context, string) error { return nil }
