package usecase

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
)

// DistanceKm rounds meters up to whole kilometers.
func DistanceKm(meters float64) int64 {
	if meters <= 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return 0
	}
	return int64(math.Ceil(meters / 1000))
}

// Fare returns ceil(distanceKm * pricePerKm). ok is false when the price is not finite;
// the fare is then 0.
func Fare(distanceKm, pricePerKm float64) (int64, bool) {
	if math.IsNaN(pricePerKm) || math.IsInf(pricePerKm, 0) {
		return 0, false
	}
	// округляем до 1e-6, чтобы 10.2*15 не превратилось в 153.00000000000003 -> 154
	product := math.Round(distanceKm*pricePerKm*1e6) / 1e6
	return int64(math.Ceil(product)), true
}

// DistanceCalculator - расстояние по дорогам между двумя местами
type DistanceCalculator struct {
	provider repository.DistanceProvider
	logger   *zap.Logger
}

func NewDistanceCalculator(provider repository.DistanceProvider, logger *zap.Logger) *DistanceCalculator {
	return &DistanceCalculator{
		provider: provider,
		logger:   logger,
	}
}

// DistanceKm prefers coordinates when both places have them, otherwise labels
// (falling back to the raw input). Errors are not retried.
func (c *DistanceCalculator) DistanceKm(ctx context.Context, start, end MatchSide) (int64, error) {
	origin, destination := waypoint(start), waypoint(end)
	if !start.Place.HasCoordinates() || !end.Place.HasCoordinates() {
		origin.Lat, origin.Lng = nil, nil
		destination.Lat, destination.Lng = nil, nil
	}

	meters, err := c.provider.DrivingDistance(ctx, origin, destination)
	if err != nil {
		c.logger.Error("Distance lookup failed",
			zap.String("origin", origin.Label),
			zap.String("destination", destination.Label),
			zap.Error(err))
		return 0, fmt.Errorf("driving distance: %w", err)
	}
	return DistanceKm(meters), nil
}

func waypoint(s MatchSide) domain.Waypoint {
	label := s.Place.Label
	if label == "" {
		label = s.Input
	}
	return domain.Waypoint{Label: label, Lat: s.Place.Lat, Lng: s.Place.Lng}
}
