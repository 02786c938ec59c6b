package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/delivery/http/handler"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/usecase"
)

type staticTokens struct{}

func (staticTokens) ParseToken(raw string) (*usecase.AdminClaims, error) {
	if raw == "valid" {
		return &usecase.AdminClaims{Role: "admin"}, nil
	}
	return nil, errors.ErrUnauthorized
}

func newTestServer(checks map[string]HealthCheck) *Server {
	cfg := &config.Config{Server: config.ServerConfig{CORSOrigins: "http://localhost:3000"}}
	logger := zap.NewNop()
	return NewServer(cfg, logger,
		handler.NewEstimateHandler(nil, logger),
		handler.NewEnquiryHandler(nil, logger),
		handler.NewRouteHandler(nil, logger),
		handler.NewAuthHandler(nil, logger),
		staticTokens{},
		checks,
	)
}

func TestServer_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})
		resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("degraded", func(t *testing.T) {
		s := newTestServer(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return assert.AnError },
		})
		resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)

		var body struct {
			Status       string            `json:"status"`
			Dependencies map[string]string `json:"dependencies"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "ok", body.Dependencies["postgres"])
		assert.NotEqual(t, "ok", body.Dependencies["redis"])
	})
}

func TestServer_AdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(nil)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/admin/routes", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	// токен принят, дальше срабатывает валидация фильтров
	req := httptest.NewRequest("GET", "/api/v1/admin/enquiries?date=yesterday", nil)
	req.Header.Set("Authorization", "Bearer valid")
	resp, err = s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestServer_PublicRoutes(t *testing.T) {
	s := newTestServer(nil)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/bands", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// логин не закрыт токеном
	resp, err = s.App().Test(httptest.NewRequest("POST", "/api/v1/admin/login", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
