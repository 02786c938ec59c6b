package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/utils"
	"github.com/odc-estimate/internal/usecase"
)

// ClaimsKey - ключ c.Locals с claims администратора
const ClaimsKey = "admin_claims"

// TokenParser проверяет bearer токен администратора
type TokenParser interface {
	ParseToken(raw string) (*usecase.AdminClaims, error)
}

// AdminAuth - middleware, пропускающий только запросы с валидным токеном
func AdminAuth(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// AdminFromContext returns the claims stored by AdminAuth, or nil.
func AdminFromContext(c *fiber.Ctx) *usecase.AdminClaims {
	claims, _ := c.Locals(ClaimsKey).(*usecase.AdminClaims)
	return claims
}
