package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/utils"
	"github.com/odc-estimate/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteHandler - администрирование обследованных маршрутов
type RouteHandler struct {
	routeUC RouteService
	logger  *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC RouteService, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// List godoc
// @Summary Список маршрутов
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Route}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/routes [get]
func (h *RouteHandler) List(c *fiber.Ctx) error {
	routes, err := h.routeUC.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

// Get godoc
// @Summary Маршрут с ограничениями и тарифами
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=domain.RouteDetails}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/routes/{id} [get]
func (h *RouteHandler) Get(c *fiber.Ctx) error {
	id, err := routeID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	route, err := h.routeUC.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// Create godoc
// @Summary Создание маршрута
// @Description multipart форма: title, startKeyword, endKeyword, routePath (JSON массив), routeKeywordsPreview, points (JSON), pricingRows (JSON), файлы summaryReport и detailedReport (.doc/.docx)
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Название"
// @Param startKeyword formData string true "Ключевые слова начала через запятую"
// @Param endKeyword formData string true "Ключевые слова конца через запятую"
// @Param routePath formData string false "JSON массив промежуточных пунктов"
// @Param routeKeywordsPreview formData string false "Готовая строка route_keywords"
// @Param points formData string false "JSON [{text,category}]"
// @Param pricingRows formData string false "JSON [{height,length,width,weight,pricePerKm}]"
// @Param summaryReport formData file false "Краткий отчёт"
// @Param detailedReport formData file false "Подробный отчёт"
// @Success 201 {object} utils.SuccessResponse{data=dto.RouteSavedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/routes [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	in, err := parseRouteForm(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.routeUC.Create(c.UserContext(), in)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, dto.RouteSavedResponse{
		ID:      id,
		Message: "Survey route created",
	}, nil)
}

// Update godoc
// @Summary Обновление маршрута
// @Description Та же форма, что и при создании. Ограничения и тарифы заменяются целиком, отчёты сохраняются, если не загружены новые.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteSavedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/routes/{id} [put]
func (h *RouteHandler) Update(c *fiber.Ctx) error {
	id, err := routeID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	in, err := parseRouteForm(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.routeUC.Update(c.UserContext(), id, in); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.RouteSavedResponse{
		ID:      id,
		Message: "Survey route updated",
	}, nil)
}

// Delete godoc
// @Summary Удаление маршрута
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.MessageResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/admin/routes/{id} [delete]
func (h *RouteHandler) Delete(c *fiber.Ctx) error {
	id, err := routeID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.routeUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.MessageResponse{Message: "Survey route deleted"}, nil)
}

func routeID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidRequest.WithMessage("Invalid route id")
	}
	return int64(id), nil
}

// parseRouteForm читает multipart форму маршрута
func parseRouteForm(c *fiber.Ctx) (dto.RouteInput, error) {
	in := dto.RouteInput{
		Title:                strings.TrimSpace(c.FormValue("title")),
		StartKeyword:         strings.TrimSpace(c.FormValue("startKeyword")),
		EndKeyword:           strings.TrimSpace(c.FormValue("endKeyword")),
		RouteKeywordsPreview: c.FormValue("routeKeywordsPreview"),
	}

	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.StartKeyword == "" {
		missing = append(missing, "startKeyword")
	}
	if in.EndKeyword == "" {
		missing = append(missing, "endKeyword")
	}
	if len(missing) > 0 {
		return in, errors.ErrValidationFailed.
			WithMessage("Missing/invalid: " + strings.Join(missing, ", ")).
			WithDetails(map[string]interface{}{"fields": missing})
	}

	if err := decodeFormJSON(c, "routePath", &in.RoutePath); err != nil {
		return in, err
	}
	if err := decodeFormJSON(c, "points", &in.Points); err != nil {
		return in, err
	}
	if err := decodeFormJSON(c, "pricingRows", &in.PricingRows); err != nil {
		return in, err
	}

	in.SummaryReport = formFile(c, "summaryReport")
	in.DetailedReport = formFile(c, "detailedReport")

	return in, nil
}

func decodeFormJSON(c *fiber.Ctx, field string, dst interface{}) error {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return errors.ErrInvalidRequest.
			WithMessage(fmt.Sprintf("%s must be valid JSON", field)).
			WithDetails(map[string]interface{}{"fields": []string{field}})
	}
	return nil
}

func formFile(c *fiber.Ctx, field string) *dto.FileInput {
	fh, err := c.FormFile(field)
	if err != nil {
		// поле отсутствует или форма не multipart
		return nil
	}
	return fileInput(fh)
}

func fileInput(fh *multipart.FileHeader) *dto.FileInput {
	return &dto.FileInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
