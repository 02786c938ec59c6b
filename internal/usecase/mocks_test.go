package usecase_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/odc-estimate/internal/domain"
)

// MockRouteRepository is a mock of RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) FindCandidates(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) ListPricing(ctx context.Context, routeID int64) ([]domain.PricingRow, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingRow), args.Error(1)
}

func (m *MockRouteRepository) FindExactPricing(ctx context.Context, routeID int64, bands domain.BandSet) (*domain.PricingRow, error) {
	args := m.Called(ctx, routeID, bands)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRow), args.Error(1)
}

func (m *MockRouteRepository) ListConstraints(ctx context.Context, routeID int64) ([]domain.Constraint, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Constraint), args.Error(1)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.RouteDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteDetails), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.RouteDetails) (int64, error) {
	args := m.Called(ctx, route)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRouteRepository) Update(ctx context.Context, route *domain.RouteDetails) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGeocoder is a mock of Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, text string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockGeocoder) PlaceDetails(ctx context.Context, placeID string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPlace(ctx context.Context, key string) (*domain.Place, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockCacheRepository) SetPlace(ctx context.Context, key string, place domain.Place, ttl time.Duration) error {
	args := m.Called(ctx, key, place, ttl)
	return args.Error(0)
}

// MockDistanceProvider is a mock of DistanceProvider
type MockDistanceProvider struct {
	mock.Mock
}

func (m *MockDistanceProvider) DrivingDistance(ctx context.Context, origin, destination domain.Waypoint) (float64, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(float64), args.Error(1)
}

// MockEnquiryRepository is a mock of EnquiryRepository
type MockEnquiryRepository struct {
	mock.Mock
}

func (m *MockEnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) (int64, error) {
	args := m.Called(ctx, enquiry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnquiryRepository) List(ctx context.Context, filter domain.EnquiryFilter) ([]domain.Enquiry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enquiry), args.Error(1)
}

// MockEventPublisher is a mock of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEnquiryCreated(ctx context.Context, event domain.EnquiryCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockDocumentStore is a mock of DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// memoryCatalog evaluates catalog queries the way the SQL repository does and counts calls.
type memoryCatalog struct {
	MockRouteRepository
	mu      sync.Mutex
	routes  []domain.Route
	pricing []domain.PricingRow
	queries []domain.RouteQuery
}

func (c *memoryCatalog) FindCandidates(_ context.Context, q domain.RouteQuery) ([]domain.Route, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, q)

	var out []domain.Route
	for _, r := range c.routes {
		startCol, endCol := r.StartKeyword, r.EndKeyword
		if q.Mode == domain.MatchCombined {
			startCol, endCol = r.RouteKeywords, r.RouteKeywords
		}
		if likeAny(startCol, q.StartKeywords) && likeAny(endCol, q.EndKeywords) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (c *memoryCatalog) FindExactPricing(_ context.Context, routeID int64, bands domain.BandSet) (*domain.PricingRow, error) {
	for _, p := range c.pricing {
		if p.RouteID == routeID && p.BandSet == bands {
			row := p
			return &row, nil
		}
	}
	return nil, nil
}

func (c *memoryCatalog) ListPricing(_ context.Context, routeID int64) ([]domain.PricingRow, error) {
	var out []domain.PricingRow
	for _, p := range c.pricing {
		if p.RouteID == routeID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *memoryCatalog) ListConstraints(_ context.Context, _ int64) ([]domain.Constraint, error) {
	return []domain.Constraint{}, nil
}

func (c *memoryCatalog) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queries)
}

func likeAny(column string, keywords []string) bool {
	col := strings.ToLower(column)
	for _, k := range keywords {
		if strings.Contains(col, k) {
			return true
		}
	}
	return false
}

func ptrFloat64(v float64) *float64 {
	return &v
}
