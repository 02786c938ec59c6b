package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/domain"
	"go.uber.org/zap"
)

// ErrCoordinatesRequired - Mapbox Matrix API работает только с координатами
var ErrCoordinatesRequired = fmt.Errorf("mapbox: both waypoints need coordinates")

type matrixResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message,omitempty"`
	Distances [][]*float64 `json:"distances"`
}

// Client - клиент Mapbox Directions Matrix API, реализует repository.DistanceProvider
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		profile:     cfg.DrivingProfile,
		logger:      logger,
	}
}

// DrivingDistance возвращает расстояние по дорогам между двумя точками в метрах
func (c *Client) DrivingDistance(ctx context.Context, origin, destination domain.Waypoint) (float64, error) {
	if origin.Lat == nil || origin.Lng == nil || destination.Lat == nil || destination.Lng == nil {
		return 0, ErrCoordinatesRequired
	}

	// Mapbox ожидает lon,lat
	coordinates := fmt.Sprintf("%f,%f;%f,%f", *origin.Lng, *origin.Lat, *destination.Lng, *destination.Lat)

	url := fmt.Sprintf("%s/directions-matrix/v1/%s/%s?sources=0&destinations=1&annotations=distance&access_token=%s",
		c.baseURL,
		c.profile,
		coordinates,
		c.accessToken,
	)

	c.logger.Debug("Calling Mapbox Matrix API",
		zap.String("profile", c.profile),
		zap.String("coordinates", coordinates))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return 0, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var matrixResp matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrixResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if matrixResp.Code != "Ok" {
		c.logger.Error("Mapbox API returned non-OK code",
			zap.String("code", matrixResp.Code))
		return 0, fmt.Errorf("mapbox API returned code: %s", matrixResp.Code)
	}

	// null в матрице означает, что маршрут не найден
	if len(matrixResp.Distances) == 0 || len(matrixResp.Distances[0]) == 0 || matrixResp.Distances[0][0] == nil {
		return 0, fmt.Errorf("mapbox: no driving route between waypoints")
	}

	return *matrixResp.Distances[0][0], nil
}
