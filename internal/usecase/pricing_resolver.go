package usecase

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/errors"
)

// PricingMatch - найденный тариф
type PricingMatch struct {
	Row   domain.PricingRow
	Exact bool
	// Distance is the summed band distance of a nearest match; zero for exact matches.
	Distance float64
}

// PricingResolver - подбор тарифа маршрута по диапазонам груза
type PricingResolver struct {
	routeRepo repository.RouteRepository
	logger    *zap.Logger
}

func NewPricingResolver(routeRepo repository.RouteRepository, logger *zap.Logger) *PricingResolver {
	return &PricingResolver{
		routeRepo: routeRepo,
		logger:    logger,
	}
}

// Resolve tries an exact four-band match first, then the nearest row by parsed band numbers.
func (r *PricingResolver) Resolve(ctx context.Context, routeID int64, bands domain.BandSet) (*PricingMatch, error) {
	if complete(bands) {
		row, err := r.routeRepo.FindExactPricing(ctx, routeID, bands)
		if err != nil {
			return nil, fmt.Errorf("find exact pricing: %w", err)
		}
		if row != nil {
			return &PricingMatch{Row: *row, Exact: true}, nil
		}
	}

	requested, ok := bandVector(bands)
	if !ok {
		return nil, errors.ErrPricingNotFound
	}

	rows, err := r.routeRepo.ListPricing(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("list pricing: %w", err)
	}

	best, dist := NearestPricing(rows, requested)
	if best == nil {
		return nil, errors.ErrPricingNotFound
	}

	r.logger.Debug("Nearest pricing selected",
		zap.Int64("route_id", routeID),
		zap.Int64("pricing_id", best.ID),
		zap.Float64("distance", dist))

	return &PricingMatch{Row: *best, Distance: dist}, nil
}

// NearestPricing returns the row with the smallest summed absolute band distance.
// The first row wins a tie, so callers get a stable answer for a stable row order.
func NearestPricing(rows []domain.PricingRow, requested [4]float64) (*domain.PricingRow, float64) {
	var best *domain.PricingRow
	bestDist := math.Inf(1)
	for i := range rows {
		stored, _ := bandVector(rows[i].BandSet)
		d := 0.0
		for k := range stored {
			d += math.Abs(stored[k] - requested[k])
		}
		if d < bestDist {
			best = &rows[i]
			bestDist = d
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestDist
}

// bandVector parses the four bands; unparseable bands count as 0. ok reports whether any parsed.
func bandVector(b domain.BandSet) ([4]float64, bool) {
	var v [4]float64
	parsed := false
	for i, d := range domain.Dimensions {
		if n, ok := domain.BandNumber(b.Get(d)); ok {
			v[i] = n
			parsed = true
		}
	}
	return v, parsed
}

func complete(b domain.BandSet) bool {
	return b.Height != "" && b.Length != "" && b.Width != "" && b.Weight != ""
}
