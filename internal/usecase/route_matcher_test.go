package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	apperrors "github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/keyword"
	"github.com/odc-estimate/internal/usecase"
)

func side(input, city, state string) usecase.MatchSide {
	place := domain.Place{
		Label: input,
		Admin: domain.Admin{Sublocalities: []string{}, City: city, State: state},
	}
	b := keyword.NewBuilder(nil)
	return usecase.MatchSide{
		Input:    input,
		Place:    place,
		Keywords: usecase.KeywordSets{Rich: b.Rich(place), Core: b.Core(place)},
	}
}

func TestRouteMatcher_FirstTierStopsLadder(t *testing.T) {
	catalog := &memoryCatalog{routes: []domain.Route{
		{ID: 1, Title: "Chennai to Mumbai", StartKeyword: "chennai, madras", EndKeyword: "mumbai, bombay", RouteKeywords: "chennai, madras, mumbai, bombay"},
	}}
	m := usecase.NewRouteMatcher(catalog, zap.NewNop())

	res, err := m.Match(context.Background(), side("Chennai", "Chennai", "Tamil Nadu"), side("Mumbai", "Mumbai", "Maharashtra"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Route.ID)
	assert.Equal(t, 1, res.Tier)
	assert.False(t, res.Reversed)
	assert.Equal(t, 1, catalog.calls())
	assert.Equal(t, domain.MatchColumns, catalog.queries[0].Mode)
	assert.Equal(t, usecase.CandidateLimit, catalog.queries[0].Limit)
}

func TestRouteMatcher_CombinedColumn(t *testing.T) {
	catalog := &memoryCatalog{routes: []domain.Route{
		{ID: 4, Title: "Coastal run", StartKeyword: "port", EndKeyword: "yard", RouteKeywords: "chennai, ennore, mumbai, jnpt"},
	}}
	m := usecase.NewRouteMatcher(catalog, zap.NewNop())

	res, err := m.Match(context.Background(), side("Chennai", "Chennai", ""), side("Mumbai", "Mumbai", ""))

	require.NoError(t, err)
	assert.Equal(t, 2, res.Tier)
	assert.False(t, res.Reversed)
	assert.Equal(t, 2, catalog.calls())
	assert.Equal(t, domain.MatchCombined, catalog.queries[1].Mode)
}

func TestRouteMatcher_ReversedDirection(t *testing.T) {
	catalog := &memoryCatalog{routes: []domain.Route{
		{ID: 9, Title: "Mumbai to Chennai", StartKeyword: "mumbai", EndKeyword: "chennai"},
	}}
	m := usecase.NewRouteMatcher(catalog, zap.NewNop())

	res, err := m.Match(context.Background(), side("chennai", "Chennai", ""), side("mumbai", "Mumbai", ""))

	require.NoError(t, err)
	assert.Equal(t, int64(9), res.Route.ID)
	assert.True(t, res.Reversed)
	assert.Equal(t, 3, res.Tier)
	assert.Equal(t, 3, catalog.calls())

	reversed := catalog.queries[2]
	assert.Contains(t, reversed.StartKeywords, "mumbai")
	assert.Contains(t, reversed.EndKeywords, "chennai")
}

func TestRouteMatcher_CoreKeywordsAfterRich(t *testing.T) {
	// rich start keywords miss every column, the alias-expanded core set does not
	catalog := &memoryCatalog{routes: []domain.Route{
		{ID: 2, Title: "Blr to Pune", StartKeyword: "bangalore", EndKeyword: "pune"},
	}}
	m := usecase.NewRouteMatcher(catalog, zap.NewNop())

	start := side("Bengaluru", "Bengaluru", "")
	start.Keywords.Rich = []string{"whitefield"}
	end := side("Pune", "Pune", "")

	res, err := m.Match(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, 5, res.Tier)
	assert.False(t, res.Reversed)
	assert.Equal(t, 5, catalog.calls())
}

func TestRouteMatcher_NoMatch(t *testing.T) {
	catalog := &memoryCatalog{routes: []domain.Route{
		{ID: 1, Title: "Chennai to Mumbai", StartKeyword: "chennai", EndKeyword: "mumbai", RouteKeywords: "chennai, mumbai"},
	}}
	m := usecase.NewRouteMatcher(catalog, zap.NewNop())

	_, err := m.Match(context.Background(), side("Jaipur", "Jaipur", ""), side("Kota", "Kota", ""))

	assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)
	assert.Equal(t, 8, catalog.calls())
}

func TestRouteMatcher_SkipsTiersWithEmptyKeywords(t *testing.T) {
	catalog := &memoryCatalog{}
	m := usecase.NewRouteMatcher(catalog, zap.NewNop())

	start := side("Jaipur", "Jaipur", "")
	end := usecase.MatchSide{Input: "x", Place: domain.EmptyPlace("x")}

	_, err := m.Match(context.Background(), start, end)

	assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)
	assert.Equal(t, 0, catalog.calls())
}

func TestRouteMatcher_RepositoryError(t *testing.T) {
	repo := &MockRouteRepository{}
	repo.On("FindCandidates", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()
	m := usecase.NewRouteMatcher(repo, zap.NewNop())

	_, err := m.Match(context.Background(), side("Chennai", "Chennai", ""), side("Mumbai", "Mumbai", ""))

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrRouteNotFound)
	repo.AssertNumberOfCalls(t, "FindCandidates", 1)
}

func TestRankRoutes(t *testing.T) {
	start := side("Chennai", "Chennai", "")
	end := side("Mumbai", "Mumbai", "")

	t.Run("tie goes to higher id", func(t *testing.T) {
		ranked := usecase.RankRoutes([]domain.Route{
			{ID: 3, StartKeyword: "chennai", EndKeyword: "mumbai"},
			{ID: 7, StartKeyword: "chennai", EndKeyword: "mumbai"},
			{ID: 5, StartKeyword: "chennai", EndKeyword: "mumbai"},
		}, start, end)

		assert.Equal(t, []int64{7, 5, 3}, ids(ranked))
	})

	t.Run("keyword hits", func(t *testing.T) {
		ranked := usecase.RankRoutes([]domain.Route{
			{ID: 10, StartKeyword: "chennai", EndKeyword: "mumbai"},
			{ID: 2, StartKeyword: "chennai, madras", EndKeyword: "mumbai, bombay"},
		}, start, end)

		assert.Equal(t, int64(2), ranked[0].ID)
	})

	t.Run("title bonus", func(t *testing.T) {
		ranked := usecase.RankRoutes([]domain.Route{
			{ID: 10, Title: "Bombay run", StartKeyword: "chennai, madras", EndKeyword: "mumbai"},
			{ID: 2, Title: "CHENNAI TO MUMBAI route", StartKeyword: "chennai", EndKeyword: "mumbai"},
		}, start, end)

		assert.Equal(t, int64(2), ranked[0].ID)
	})
}

func ids(routes []domain.Route) []int64 {
	out := make([]int64, len(routes))
	for i, r := range routes {
		out[i] = r.ID
	}
	return out
}
