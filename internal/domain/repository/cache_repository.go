package repository

import (
	"context"
	"time"

	"github.com/odc-estimate/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// GetPlace получает нормализованное место, nil при промахе
	GetPlace(ctx context.Context, key string) (*domain.Place, error)

	// SetPlace сохраняет нормализованное место
	SetPlace(ctx context.Context, key string, place domain.Place, ttl time.Duration) error
}
