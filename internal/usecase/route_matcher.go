package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/errors"
)

// CandidateLimit - максимум маршрутов, читаемых на одной ступени
const CandidateLimit = 10

// titleBonus - надбавка, если название маршрута "<город начала> to <город конца>"
const titleBonus = 2

// KeywordSets - rich и core ключевые слова одного места
type KeywordSets struct {
	Rich []string
	Core []string
}

// MatchSide - один конец запрошенного маршрута
type MatchSide struct {
	Input    string
	Place    domain.Place
	Keywords KeywordSets
}

// MatchResult - выбранный маршрут
type MatchResult struct {
	Route      domain.Route
	Reversed   bool
	Tier       int
	Candidates int
}

type ladderStep struct {
	core     bool
	mode     domain.MatchMode
	reversed bool
}

// ladder - ступени поиска по порядку; побеждает первая с кандидатами
var ladder = []ladderStep{
	{core: false, mode: domain.MatchColumns, reversed: false},
	{core: false, mode: domain.MatchCombined, reversed: false},
	{core: false, mode: domain.MatchColumns, reversed: true},
	{core: false, mode: domain.MatchCombined, reversed: true},
	{core: true, mode: domain.MatchColumns, reversed: false},
	{core: true, mode: domain.MatchCombined, reversed: false},
	{core: true, mode: domain.MatchColumns, reversed: true},
	{core: true, mode: domain.MatchCombined, reversed: true},
}

// RouteMatcher - поиск маршрута в каталоге по лестнице запросов
type RouteMatcher struct {
	routeRepo repository.RouteRepository
	logger    *zap.Logger
}

func NewRouteMatcher(routeRepo repository.RouteRepository, logger *zap.Logger) *RouteMatcher {
	return &RouteMatcher{
		routeRepo: routeRepo,
		logger:    logger,
	}
}

// Match - лучший по рангу маршрут первой непустой ступени
func (m *RouteMatcher) Match(ctx context.Context, start, end MatchSide) (*MatchResult, error) {
	for i, step := range ladder {
		startKw, endKw := start.Keywords.Rich, end.Keywords.Rich
		if step.core {
			startKw, endKw = start.Keywords.Core, end.Keywords.Core
		}
		if step.reversed {
			startKw, endKw = endKw, startKw
		}
		if len(startKw) == 0 || len(endKw) == 0 {
			continue
		}

		candidates, err := m.routeRepo.FindCandidates(ctx, domain.RouteQuery{
			StartKeywords: startKw,
			EndKeywords:   endKw,
			Mode:          step.mode,
			Limit:         CandidateLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("find route candidates (tier %d): %w", i+1, err)
		}
		if len(candidates) == 0 {
			continue
		}

		ranked := RankRoutes(candidates, start, end)
		m.logger.Debug("Route matched",
			zap.Int("tier", i+1),
			zap.String("mode", step.mode.String()),
			zap.Bool("reversed", step.reversed),
			zap.Int("candidates", len(candidates)),
			zap.Int64("route_id", ranked[0].ID))

		return &MatchResult{
			Route:      ranked[0],
			Reversed:   step.reversed,
			Tier:       i + 1,
			Candidates: len(candidates),
		}, nil
	}

	m.logger.Info("No route matched",
		zap.String("start", start.Input),
		zap.String("end", end.Input))
	return nil, errors.ErrRouteNotFound
}

// RankRoutes - сортировка по очкам по убыванию, при равенстве выше больший id.
// Очки всегда считаются по rich словам в направлении запроса, даже на обратных ступенях.
func RankRoutes(candidates []domain.Route, start, end MatchSide) []domain.Route {
	phrase := cityName(start) + " to " + cityName(end)

	type scored struct {
		route domain.Route
		score int
	}
	items := make([]scored, len(candidates))
	for i, r := range candidates {
		score := hitCount(r.StartKeyword, start.Keywords.Rich) + hitCount(r.EndKeyword, end.Keywords.Rich)
		if strings.Contains(strings.ToLower(r.Title), phrase) {
			score += titleBonus
		}
		items[i] = scored{route: r, score: score}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].route.ID > items[j].route.ID
	})

	out := make([]domain.Route, len(items))
	for i := range items {
		out[i] = items[i].route
	}
	return out
}

func cityName(s MatchSide) string {
	switch {
	case s.Place.Admin.City != "":
		return strings.ToLower(s.Place.Admin.City)
	case s.Place.Label != "":
		return strings.ToLower(s.Place.Label)
	default:
		return strings.ToLower(s.Input)
	}
}

// hitCount - сколько needles входит в haystack без учёта регистра
func hitCount(haystack string, needles []string) int {
	h := strings.ToLower(haystack)
	n := 0
	for _, k := range needles {
		if k != "" && strings.Contains(h, strings.ToLower(k)) {
			n++
		}
	}
	return n
}
