package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/utils"
	"github.com/odc-estimate/internal/pkg/validator"
	"github.com/odc-estimate/internal/usecase/dto"
	"go.uber.org/zap"
)

// AuthHandler - вход в админ-панель
type AuthHandler struct {
	authUC Authenticator
	logger *zap.Logger
}

func NewAuthHandler(authUC Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Login godoc
// @Summary Вход администратора
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} utils.SuccessResponse{data=dto.LoginResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	token, err := h.authUC.Login(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, token, nil)
}
