package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetPlace получает нормализованное место из кеша
func (r *cacheRepository) GetPlace(ctx context.Context, key string) (*domain.Place, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var place domain.Place
	if err := json.Unmarshal(data, &place); err != nil {
		r.logger.Error("Failed to unmarshal place from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal place: %w", err)
	}

	return &place, nil
}

// SetPlace сохраняет нормализованное место в кеше
func (r *cacheRepository) SetPlace(ctx context.Context, key string, place domain.Place, ttl time.Duration) error {
	data, err := json.Marshal(place)
	if err != nil {
		r.logger.Error("Failed to marshal place", zap.Error(err))
		return fmt.Errorf("marshal place: %w", err)
	}

	return r.Set(ctx, key, data, ttl)
}
