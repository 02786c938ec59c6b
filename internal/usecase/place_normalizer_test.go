package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/usecase"
)

func chennaiResult() *domain.GeocodeResult {
	return &domain.GeocodeResult{
		FormattedAddress: "Chennai, Tamil Nadu, India",
		Name:             "Chennai",
		Components: []domain.AddressComponent{
			{LongName: "Chennai", ShortName: "Chennai", Types: []string{"locality", "political"}},
			{LongName: "Chennai", ShortName: "Chennai", Types: []string{"administrative_area_level_2", "political"}},
			{LongName: "Tamil Nadu", ShortName: "TN", Types: []string{"administrative_area_level_1", "political"}},
			{LongName: "India", ShortName: "IN", Types: []string{"country", "political"}},
		},
		Lat: ptrFloat64(13.0827),
		Lng: ptrFloat64(80.2707),
	}
}

func mumbaiResult() *domain.GeocodeResult {
	return &domain.GeocodeResult{
		FormattedAddress: "Mumbai, Maharashtra, India",
		Components: []domain.AddressComponent{
			{LongName: "Mumbai", Types: []string{"locality", "political"}},
			{LongName: "Mumbai Suburban", Types: []string{"administrative_area_level_2", "political"}},
			{LongName: "Maharashtra", Types: []string{"administrative_area_level_1", "political"}},
			{LongName: "India", ShortName: "IN", Types: []string{"country", "political"}},
		},
		Lat: ptrFloat64(19.076),
		Lng: ptrFloat64(72.8777),
	}
}

func TestPlaceNormalizer_Normalize(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("geocodes free text", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("Geocode", mock.Anything, "madras").Return(chennaiResult(), nil).Once()

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: "madras"})

		require.NoError(t, err)
		assert.Equal(t, "Chennai, Tamil Nadu, India", place.Label)
		assert.Equal(t, "Chennai", place.Admin.City)
		assert.Equal(t, "Tamil Nadu", place.Admin.State)
		assert.Equal(t, "IN", place.Admin.CountryCode)
		assert.True(t, place.HasCoordinates())
		geo.AssertExpectations(t)
	})

	t.Run("prefers place details", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("PlaceDetails", mock.Anything, "pid-1").Return(chennaiResult(), nil).Once()

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: "madras", PlaceID: "pid-1"})

		require.NoError(t, err)
		assert.Equal(t, "Chennai", place.Admin.City)
		geo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("falls back to text when details are empty", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("PlaceDetails", mock.Anything, "pid-2").Return(nil, nil).Once()
		geo.On("Geocode", mock.Anything, "bombay").Return(mumbaiResult(), nil).Once()

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: "bombay", PlaceID: "pid-2"})

		require.NoError(t, err)
		assert.Equal(t, "Mumbai", place.Admin.City)
		geo.AssertExpectations(t)
	})

	t.Run("degrades on lookup failure", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("Geocode", mock.Anything, "Hosur").Return(nil, errors.New("REQUEST_DENIED")).Once()

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: "Hosur"})

		require.NoError(t, err)
		assert.Equal(t, domain.EmptyPlace("Hosur"), place)
		assert.NotNil(t, place.Admin.Sublocalities)
	})

	t.Run("degrades on zero results", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("Geocode", mock.Anything, "nowhere").Return(nil, nil).Once()

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: "nowhere"})

		require.NoError(t, err)
		assert.Equal(t, "nowhere", place.Label)
		assert.Empty(t, place.Admin.City)
	})

	t.Run("empty input", func(t *testing.T) {
		n := usecase.NewPlaceNormalizer(&MockGeocoder{}, nil, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{})

		require.NoError(t, err)
		assert.Equal(t, domain.EmptyPlace(""), place)
	})

	t.Run("timeout fails fast", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("Geocode", mock.Anything, "slow").Return(nil, context.DeadlineExceeded).Once()

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		_, err := n.Normalize(ctx, usecase.PlaceInput{Text: "slow"})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cache hit skips geocoder", func(t *testing.T) {
		geo := &MockGeocoder{}
		cache := &MockCacheRepository{}
		cached := domain.Place{Label: "Chennai, Tamil Nadu, India", Admin: domain.Admin{City: "Chennai"}}
		cache.On("GetPlace", mock.Anything, "place:text:madras").Return(&cached, nil).Once()

		n := usecase.NewPlaceNormalizer(geo, cache, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: " Madras "})

		require.NoError(t, err)
		assert.Equal(t, cached, place)
		geo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})

	t.Run("cache miss stores result and ignores cache errors", func(t *testing.T) {
		geo := &MockGeocoder{}
		cache := &MockCacheRepository{}
		cache.On("GetPlace", mock.Anything, "place:text:madras").Return(nil, errors.New("redis down")).Once()
		geo.On("Geocode", mock.Anything, "madras").Return(chennaiResult(), nil).Once()
		cache.On("SetPlace", mock.Anything, "place:text:madras", mock.AnythingOfType("domain.Place"), time.Hour).
			Return(errors.New("redis down")).Once()

		n := usecase.NewPlaceNormalizer(geo, cache, logger, time.Second, time.Hour)
		place, err := n.Normalize(ctx, usecase.PlaceInput{Text: "madras"})

		require.NoError(t, err)
		assert.Equal(t, "Chennai", place.Admin.City)
		cache.AssertExpectations(t)
	})
}

func TestPlaceNormalizer_NormalizePair(t *testing.T) {
	logger := zap.NewNop()

	t.Run("both resolved", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("Geocode", mock.Anything, "madras").Return(chennaiResult(), nil)
		geo.On("Geocode", mock.Anything, "bombay").Return(mumbaiResult(), nil)

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		start, end, err := n.NormalizePair(context.Background(),
			usecase.PlaceInput{Text: "madras"}, usecase.PlaceInput{Text: "bombay"})

		require.NoError(t, err)
		assert.Equal(t, "Chennai", start.Admin.City)
		assert.Equal(t, "Mumbai", end.Admin.City)
	})

	t.Run("one timeout fails the pair", func(t *testing.T) {
		geo := &MockGeocoder{}
		geo.On("Geocode", mock.Anything, "madras").Return(chennaiResult(), nil).Maybe()
		geo.On("Geocode", mock.Anything, "slow").Return(nil, context.DeadlineExceeded)

		n := usecase.NewPlaceNormalizer(geo, nil, logger, time.Second, time.Hour)
		_, _, err := n.NormalizePair(context.Background(),
			usecase.PlaceInput{Text: "madras"}, usecase.PlaceInput{Text: "slow"})

		assert.Error(t, err)
	})
}

func TestExtractAdmin(t *testing.T) {
	components := []domain.AddressComponent{
		{LongName: "T. Nagar", Types: []string{"sublocality_level_1", "sublocality", "political"}},
		{LongName: "Pondy Bazaar", Types: []string{"neighborhood", "political"}},
		{LongName: "Kodambakkam", Types: []string{"sublocality_level_2", "sublocality"}},
		{LongName: "Mambalam", Types: []string{"administrative_area_level_3", "political"}},
		{LongName: "Chennai District", Types: []string{"administrative_area_level_2", "political"}},
		{LongName: "Tamil Nadu", Types: []string{"administrative_area_level_1", "political"}},
		{LongName: "India", ShortName: "IN", Types: []string{"country", "political"}},
	}

	admin := usecase.ExtractAdmin(components)

	assert.Equal(t, []string{"T. Nagar", "Kodambakkam", "Pondy Bazaar"}, admin.Sublocalities)
	assert.Equal(t, "Mambalam", admin.City)
	assert.Equal(t, "Chennai District", admin.District)
	assert.Equal(t, "Tamil Nadu", admin.State)
	assert.Equal(t, "India", admin.Country)
	assert.Equal(t, "IN", admin.CountryCode)
}

func TestExtractAdmin_CityPriority(t *testing.T) {
	admin := usecase.ExtractAdmin([]domain.AddressComponent{
		{LongName: "Thane", Types: []string{"administrative_area_level_2"}},
		{LongName: "London", Types: []string{"postal_town"}},
	})
	assert.Equal(t, "London", admin.City)
	assert.Equal(t, "Thane", admin.District)

	admin = usecase.ExtractAdmin([]domain.AddressComponent{
		{LongName: "Thane", Types: []string{"administrative_area_level_2"}},
	})
	assert.Equal(t, "Thane", admin.City)

	empty := usecase.ExtractAdmin(nil)
	assert.Equal(t, []string{}, empty.Sublocalities)
	assert.Empty(t, empty.City)
}
