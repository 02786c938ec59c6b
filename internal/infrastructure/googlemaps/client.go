package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/domain"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"

	detailsFields = "formatted_address,name,address_component,geometry"
)

// Client - клиент Google Maps Platform: Geocoding, Place Details и Distance Matrix.
// Реализует repository.Geocoder и repository.DistanceProvider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	region     string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient создает новый клиент Google Maps
func NewClient(cfg *config.GoogleConfig, logger *zap.Logger) *Client {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		region:     cfg.Region,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type placeResult struct {
	FormattedAddress  string                    `json:"formatted_address"`
	Name              string                    `json:"name"`
	PlaceID           string                    `json:"place_id"`
	AddressComponents []domain.AddressComponent `json:"address_components"`
	Geometry          struct {
		Location *location `json:"location"`
	} `json:"geometry"`
}

type geocodeResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type detailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       *placeResult `json:"result"`
}

type distanceMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
				Text  string  `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// Geocode возвращает первый результат геокодирования; nil если ничего не найдено
func (c *Client) Geocode(ctx context.Context, text string) (*domain.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", text)
	if c.region != "" {
		params.Set("region", c.region)
	}

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &resp); err != nil {
		return nil, eris.Wrapf(err, "googlemaps: geocode %q", text)
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, apiError("geocode", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	return toGeocodeResult(resp.Results[0]), nil
}

// PlaceDetails возвращает детали места по place id; nil если место не найдено
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*domain.GeocodeResult, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)

	var resp detailsResponse
	if err := c.get(ctx, "/place/details/json", params, &resp); err != nil {
		return nil, eris.Wrapf(err, "googlemaps: place details %s", placeID)
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults, statusNotFound:
		return nil, nil
	default:
		return nil, apiError("place details", resp.Status, resp.ErrorMessage)
	}
	if resp.Result == nil {
		return nil, nil
	}

	return toGeocodeResult(*resp.Result), nil
}

// DrivingDistance возвращает расстояние по дорогам в метрах (Distance Matrix, mode=driving)
func (c *Client) DrivingDistance(ctx context.Context, origin, destination domain.Waypoint) (float64, error) {
	params := url.Values{}
	params.Set("origins", waypointParam(origin))
	params.Set("destinations", waypointParam(destination))
	params.Set("mode", "driving")
	params.Set("units", "metric")
	if c.region != "" {
		params.Set("region", c.region)
	}

	var resp distanceMatrixResponse
	if err := c.get(ctx, "/distancematrix/json", params, &resp); err != nil {
		return 0, eris.Wrap(err, "googlemaps: distance matrix")
	}
	if resp.Status != statusOK {
		return 0, apiError("distance matrix", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, eris.New("googlemaps: distance matrix returned no elements")
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != statusOK {
		return 0, eris.Errorf("googlemaps: no driving route (element status %s)", element.Status)
	}

	c.logger.Debug("Distance matrix resolved",
		zap.String("origin", params.Get("origins")),
		zap.String("destination", params.Get("destinations")),
		zap.Float64("meters", element.Distance.Value))

	return element.Distance.Value, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "rate limiter")
	}

	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return eris.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Google Maps request failed", zap.String("path", path), zap.Error(err))
		return eris.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Google Maps API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return eris.Errorf("google maps API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrap(err, "failed to decode response")
	}
	return nil
}

func apiError(op, status, message string) error {
	if message != "" {
		return eris.Errorf("googlemaps: %s returned %s: %s", op, status, message)
	}
	return eris.Errorf("googlemaps: %s returned %s", op, status)
}

func waypointParam(w domain.Waypoint) string {
	if w.Lat != nil && w.Lng != nil {
		return fmt.Sprintf("%f,%f", *w.Lat, *w.Lng)
	}
	return w.Label
}

func toGeocodeResult(r placeResult) *domain.GeocodeResult {
	result := &domain.GeocodeResult{
		FormattedAddress: r.FormattedAddress,
		Name:             r.Name,
		Components:       r.AddressComponents,
	}
	if loc := r.Geometry.Location; loc != nil {
		lat, lng := loc.Lat, loc.Lng
		result.Lat = &lat
		result.Lng = &lng
	}
	return result
}
