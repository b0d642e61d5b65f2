package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"weblarek/pkg/metrics"
	"weblarek/storefront-service/internal/app/storefront/entity"
)

const catalogCacheKey = "catalog:all"

// RedisClient кеширует последний успешно загруженный каталог
// Витрина поднимается из кеша, когда commerce API временно недоступен
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetCatalog(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := r.client.Set(ctx, catalogCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError("storefront", metrics.RedisOpSet)
		return fmt.Errorf("failed to set catalog in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetCatalog(ctx context.Context) ([]entity.Product, error) {
	data, err := r.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("storefront", "catalog")
			return nil, nil
		}
		metrics.RecordRedisError("storefront", metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get catalog from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	metrics.RecordCacheHit("storefront", "catalog")
	return products, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
