package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/usecase"
)

type stubParser map[string]*usecase.AdminClaims

func (p stubParser) ParseToken(raw string) (*usecase.AdminClaims, error) {
	if claims, ok := p[raw]; ok {
		return claims, nil
	}
	return nil, errors.ErrUnauthorized
}

func TestAdminAuth(t *testing.T) {
	app := fiber.New()
	app.Use(AdminAuth(stubParser{"good": {Role: "admin"}}))
	app.Get("/", func(c *fiber.Ctx) error {
		claims := AdminFromContext(c)
		require.NotNil(t, claims)
		return c.SendString(claims.Role)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer", "Bearer good", fiber.StatusOK},
		{"scheme is case insensitive", "bearer good", fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic good", fiber.StatusUnauthorized},
		{"empty token", "Bearer ", fiber.StatusUnauthorized},
		{"unknown token", "Bearer bad", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
