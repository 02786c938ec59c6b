package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/keyword"
	"github.com/odc-estimate/internal/usecase/dto"
)

// EstimateUseCase - оценка стоимости перевозки негабаритного груза
type EstimateUseCase struct {
	normalizer *PlaceNormalizer
	keywords   *keyword.Builder
	matcher    *RouteMatcher
	pricing    *PricingResolver
	distance   *DistanceCalculator
	routeRepo  repository.RouteRepository
	logger     *zap.Logger
	printer    *message.Printer
}

// NewEstimateUseCase - создание нового EstimateUseCase
func NewEstimateUseCase(
	normalizer *PlaceNormalizer,
	keywords *keyword.Builder,
	matcher *RouteMatcher,
	pricing *PricingResolver,
	distance *DistanceCalculator,
	routeRepo repository.RouteRepository,
	logger *zap.Logger,
) *EstimateUseCase {
	return &EstimateUseCase{
		normalizer: normalizer,
		keywords:   keywords,
		matcher:    matcher,
		pricing:    pricing,
		distance:   distance,
		routeRepo:  routeRepo,
		logger:     logger,
		printer:    message.NewPrinter(language.English),
	}
}

// Estimate normalizes both places, matches a route, resolves pricing and computes the fare.
// Lookup misses are returned as AppErrors (404); everything else is wrapped.
func (uc *EstimateUseCase) Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error) {
	startPlace, endPlace, err := uc.normalizer.NormalizePair(ctx,
		PlaceInput{Text: req.Start, PlaceID: req.StartPlaceID},
		PlaceInput{Text: req.End, PlaceID: req.EndPlaceID},
	)
	if err != nil {
		return nil, fmt.Errorf("normalize places: %w", err)
	}

	start := uc.side(req.Start, startPlace)
	end := uc.side(req.End, endPlace)

	match, err := uc.matcher.Match(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// точное совпадение тарифа сравнивает строки, поэтому приводим к написанию каталога
	bands := domain.BandSet{Height: req.Height, Length: req.Length, Width: req.Width, Weight: req.Weight}.Canonical()
	price, err := uc.pricing.Resolve(ctx, match.Route.ID, bands)
	if err != nil {
		return nil, err
	}

	distanceKm, err := uc.distance.DistanceKm(ctx, start, end)
	if err != nil {
		return nil, err
	}

	cost, ok := Fare(float64(distanceKm), price.Row.PricePerKm)
	if !ok {
		uc.logger.Warn("Non-finite price per km, fare set to 0",
			zap.Int64("route_id", match.Route.ID),
			zap.Int64("pricing_id", price.Row.ID))
	}

	constraints, err := uc.routeRepo.ListConstraints(ctx, match.Route.ID)
	if err != nil {
		return nil, fmt.Errorf("list constraints: %w", err)
	}

	uc.logger.Info("Estimate computed",
		zap.Int64("route_id", match.Route.ID),
		zap.Int("tier", match.Tier),
		zap.Bool("reversed", match.Reversed),
		zap.Bool("exact_pricing", price.Exact),
		zap.Int64("distance_km", distanceKm),
		zap.Int64("estimated_cost", cost))

	return &dto.EstimateResponse{
		Start:             locationResult(start),
		End:               locationResult(end),
		ReversedRouteUsed: match.Reversed,
		MatchTier:         match.Tier,
		DistanceKm:        distanceKm,
		EstimatedCost:     cost,
		ExactPricing:      price.Exact,
		Pricing:           price.Row,
		Route: domain.RouteDetails{
			Route:       match.Route,
			Constraints: constraints,
		},
		Summary: uc.summary(start, end, cost),
	}, nil
}

func (uc *EstimateUseCase) side(input string, place domain.Place) MatchSide {
	return MatchSide{
		Input: input,
		Place: place,
		Keywords: KeywordSets{
			Rich: uc.keywords.Rich(place),
			Core: uc.keywords.Core(place),
		},
	}
}

// summary reads "<start> to <end> estimated cost is ₹26,800".
func (uc *EstimateUseCase) summary(start, end MatchSide, cost int64) string {
	return uc.printer.Sprintf("%s to %s estimated cost is ₹%d", displayLabel(start), displayLabel(end), cost)
}

func displayLabel(s MatchSide) string {
	if s.Place.Label != "" {
		return s.Place.Label
	}
	return s.Input
}

func locationResult(s MatchSide) dto.LocationResult {
	return dto.LocationResult{
		Input:      s.Input,
		Normalized: s.Place,
		Keywords:   s.Keywords.Rich,
		Core:       s.Keywords.Core,
	}
}
