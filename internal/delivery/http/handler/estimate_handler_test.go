package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/usecase/dto"
)

func newEstimateApp(uc Estimator) *fiber.App {
	h := NewEstimateHandler(uc, zap.NewNop())
	app := fiber.New()
	app.Get("/estimate", h.Estimate)
	app.Get("/bands", h.Bands)
	return app
}

func TestEstimateHandler_Estimate(t *testing.T) {
	t.Run("passes trimmed query to the use case", func(t *testing.T) {
		uc := new(mockEstimator)
		uc.On("Estimate", mock.Anything, dto.EstimateRequest{
			Start:  "Chennai",
			End:    "Mumbai",
			Height: "4 - 4.5m",
			Weight: "50 - 100 tons",
		}).Return(&dto.EstimateResponse{
			DistanceKm:    1340,
			EstimatedCost: 26800,
			Summary:       "Chennai to Mumbai estimated cost is ₹26,800",
		}, nil)

		req := httptest.NewRequest("GET", "/estimate?start=%20Chennai%20&end=Mumbai&height=4%20-%204.5m&weight=50%20-%20100%20tons", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		var data dto.EstimateResponse
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, int64(26800), data.EstimatedCost)
		assert.Equal(t, int64(1340), data.DistanceKm)
		uc.AssertExpectations(t)
	})

	t.Run("place id is enough for a side", func(t *testing.T) {
		uc := new(mockEstimator)
		uc.On("Estimate", mock.Anything, dto.EstimateRequest{
			StartPlaceID: "ChIJ-chennai",
			End:          "Mumbai",
		}).Return(&dto.EstimateResponse{}, nil)

		req := httptest.NewRequest("GET", "/estimate?start_place_id=ChIJ-chennai&end=Mumbai", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		uc.AssertExpectations(t)
	})

	t.Run("missing start", func(t *testing.T) {
		uc := new(mockEstimator)

		req := httptest.NewRequest("GET", "/estimate?end=Mumbai", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
		assert.Equal(t, []interface{}{"start"}, env.Error.Details["fields"])
		uc.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything)
	})

	t.Run("unknown band", func(t *testing.T) {
		uc := new(mockEstimator)

		req := httptest.NewRequest("GET", "/estimate?start=Chennai&end=Mumbai&width=9m", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, []interface{}{"width"}, env.Error.Details["fields"])
	})

	t.Run("band must use the catalog spelling", func(t *testing.T) {
		uc := new(mockEstimator)

		req := httptest.NewRequest("GET", "/estimate?start=Chennai&end=Mumbai&length=12%20-%2015m&weight=100-200%20Tons", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, []interface{}{"length", "weight"}, env.Error.Details["fields"])
		uc.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything)
	})

	t.Run("route not found", func(t *testing.T) {
		uc := new(mockEstimator)
		uc.On("Estimate", mock.Anything, mock.Anything).Return(nil, errors.ErrRouteNotFound)

		req := httptest.NewRequest("GET", "/estimate?start=Chennai&end=Nowhere", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)
		assert.Equal(t, "No matching route found.", env.Error.Message)
	})

	t.Run("internal error is generic", func(t *testing.T) {
		uc := new(mockEstimator)
		uc.On("Estimate", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		req := httptest.NewRequest("GET", "/estimate?start=Chennai&end=Mumbai", nil)
		resp, err := newEstimateApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
	})
}

func TestEstimateHandler_Bands(t *testing.T) {
	resp, err := newEstimateApp(new(mockEstimator)).Test(httptest.NewRequest("GET", "/bands", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var bands dto.BandsResponse
	require.NoError(t, json.Unmarshal(env.Data, &bands))
	assert.Contains(t, bands.Height, "4 - 4.5m")
	assert.Contains(t, bands.Length, "12m")
	assert.Contains(t, bands.Width, ">8m")
	assert.Contains(t, bands.Weight, "<50 tons")
}
