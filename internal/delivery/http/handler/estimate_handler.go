package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/utils"
	"github.com/odc-estimate/internal/pkg/validator"
	"github.com/odc-estimate/internal/usecase/dto"
	"go.uber.org/zap"
)

// EstimateHandler - обработчик оценки стоимости перевозки
type EstimateHandler struct {
	estimateUC Estimator
	logger     *zap.Logger
}

// NewEstimateHandler - создание нового EstimateHandler
func NewEstimateHandler(estimateUC Estimator, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateUC: estimateUC,
		logger:     logger,
	}
}

// Estimate godoc
// @Summary Оценка стоимости перевозки негабаритного груза
// @Description Нормализует точки маршрута, ищет обследованный маршрут в каталоге (8 ступеней), подбирает тариф по диапазонам груза и считает стоимость по расстоянию.
// @Tags Estimate
// @Produce json
// @Param start query string false "Начальная точка (текст); обязательна без start_place_id"
// @Param end query string false "Конечная точка (текст); обязательна без end_place_id"
// @Param start_place_id query string false "Google place id начальной точки"
// @Param end_place_id query string false "Google place id конечной точки"
// @Param height query string false "Диапазон высоты, например \"4 - 4.5m\""
// @Param length query string false "Диапазон длины, например \"12m\""
// @Param width query string false "Диапазон ширины, например \"3m\""
// @Param weight query string false "Диапазон веса, например \"50 - 100 tons\""
// @Success 200 {object} utils.SuccessResponse{data=dto.EstimateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/estimate [get]
func (h *EstimateHandler) Estimate(c *fiber.Ctx) error {
	var req dto.EstimateRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	req.Start = strings.TrimSpace(req.Start)
	req.End = strings.TrimSpace(req.End)
	req.StartPlaceID = strings.TrimSpace(req.StartPlaceID)
	req.EndPlaceID = strings.TrimSpace(req.EndPlaceID)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	result, err := h.estimateUC.Estimate(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Bands godoc
// @Summary Справочник диапазонов груза
// @Description Возвращает допустимые значения высоты, длины, ширины и веса для формы оценки
// @Tags Estimate
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.BandsResponse}
// @Router /api/v1/bands [get]
func (h *EstimateHandler) Bands(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.NewBandsResponse(), nil)
}
