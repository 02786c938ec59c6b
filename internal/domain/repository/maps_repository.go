package repository

import (
	"context"

	"github.com/odc-estimate/internal/domain"
)

// Geocoder определяет методы геокодирования
type Geocoder interface {
	// Geocode возвращает лучший результат для текста; nil если ничего не найдено
	Geocode(ctx context.Context, text string) (*domain.GeocodeResult, error)

	// PlaceDetails возвращает детали места по place id; nil если ничего не найдено
	PlaceDetails(ctx context.Context, placeID string) (*domain.GeocodeResult, error)
}

// DistanceProvider возвращает расстояние по дорогам в метрах
type DistanceProvider interface {
	DrivingDistance(ctx context.Context, origin, destination domain.Waypoint) (float64, error)
}
