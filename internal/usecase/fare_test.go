package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/usecase"
)

func TestFare(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		price    float64
		want     int64
		wantOK   bool
	}{
		{"rounds up", 10.2, 15, 153, true},
		{"whole product", 1340, 20, 26800, true},
		{"fractional price", 3, 0.35, 2, true},
		{"zero price", 100, 0, 0, true},
		{"NaN price", 100, math.NaN(), 0, false},
		{"infinite price", 100, math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := usecase.Fare(tt.distance, tt.price)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDistanceKm(t *testing.T) {
	assert.Equal(t, int64(1340), usecase.DistanceKm(1340000))
	assert.Equal(t, int64(11), usecase.DistanceKm(10001))
	assert.Equal(t, int64(1), usecase.DistanceKm(1))
	assert.Equal(t, int64(0), usecase.DistanceKm(0))
}

func TestDistanceCalculator(t *testing.T) {
	withCoords := func(label string, lat, lng float64) usecase.MatchSide {
		return usecase.MatchSide{Input: label, Place: domain.Place{Label: label, Lat: &lat, Lng: &lng}}
	}

	t.Run("uses coordinates when both known", func(t *testing.T) {
		provider := &MockDistanceProvider{}
		provider.On("DrivingDistance", mock.Anything,
			mock.MatchedBy(func(w domain.Waypoint) bool { return w.Lat != nil && *w.Lat == 13.08 }),
			mock.MatchedBy(func(w domain.Waypoint) bool { return w.Lng != nil && *w.Lng == 72.87 }),
		).Return(1339500.0, nil).Once()

		c := usecase.NewDistanceCalculator(provider, zap.NewNop())
		km, err := c.DistanceKm(context.Background(), withCoords("Chennai", 13.08, 80.27), withCoords("Mumbai", 19.07, 72.87))

		require.NoError(t, err)
		assert.Equal(t, int64(1340), km)
	})

	t.Run("falls back to labels", func(t *testing.T) {
		provider := &MockDistanceProvider{}
		provider.On("DrivingDistance", mock.Anything,
			domain.Waypoint{Label: "Chennai"},
			domain.Waypoint{Label: "somewhere"},
		).Return(5000.0, nil).Once()

		c := usecase.NewDistanceCalculator(provider, zap.NewNop())
		end := usecase.MatchSide{Input: "somewhere", Place: domain.Place{}}
		km, err := c.DistanceKm(context.Background(), withCoords("Chennai", 13.08, 80.27), end)

		require.NoError(t, err)
		assert.Equal(t, int64(5), km)
	})

	t.Run("propagates errors", func(t *testing.T) {
		provider := &MockDistanceProvider{}
		provider.On("DrivingDistance", mock.Anything, mock.Anything, mock.Anything).Return(0.0, errors.New("OVER_QUERY_LIMIT")).Once()

		c := usecase.NewDistanceCalculator(provider, zap.NewNop())
		_, err := c.DistanceKm(context.Background(), withCoords("a", 1, 1), withCoords("b", 2, 2))

		assert.Error(t, err)
		provider.AssertNumberOfCalls(t, "DrivingDistance", 1)
	})
}
