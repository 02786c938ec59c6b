package handler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/utils"
	"github.com/odc-estimate/internal/pkg/validator"
	"github.com/odc-estimate/internal/usecase/dto"
	"go.uber.org/zap"
)

// EnquiryHandler - обработчик заявок на перевозку
type EnquiryHandler struct {
	enquiryUC EnquiryService
	logger    *zap.Logger
}

// NewEnquiryHandler - создание нового EnquiryHandler
func NewEnquiryHandler(enquiryUC EnquiryService, logger *zap.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryUC: enquiryUC,
		logger:    logger,
	}
}

// Submit godoc
// @Summary Отправка заявки на перевозку
// @Description Принимает структурированную форму (route/truck/contact) или плоские поля. Пустые и невалидные поля возвращаются списком.
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param request body dto.EnquiryRequest true "Заявка"
// @Success 201 {object} utils.SuccessResponse{data=dto.RouteSavedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/enquiries [post]
func (h *EnquiryHandler) Submit(c *fiber.Ctx) error {
	var req dto.EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	id, err := h.enquiryUC.Submit(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, dto.RouteSavedResponse{
		ID:      id,
		Message: "Enquiry submitted",
	}, nil)
}

// List godoc
// @Summary Список заявок
// @Description Фильтры по подстроке email/начала/конца и по дате создания (YYYY-MM-DD), новые первыми
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param email query string false "Подстрока email"
// @Param start query string false "Подстрока начальной точки"
// @Param end query string false "Подстрока конечной точки"
// @Param date query string false "Дата создания, YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Enquiry}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/admin/enquiries [get]
func (h *EnquiryHandler) List(c *fiber.Ctx) error {
	req, err := parseEnquiryFilters(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	rows, err := h.enquiryUC.List(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, rows, &utils.Meta{Total: len(rows)})
}

// Export godoc
// @Summary Выгрузка заявок
// @Description Те же фильтры, что и у списка; файл CSV или XLSX
// @Tags Admin
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "csv или xlsx" default(csv)
// @Param email query string false "Подстрока email"
// @Param start query string false "Подстрока начальной точки"
// @Param end query string false "Подстрока конечной точки"
// @Param date query string false "Дата создания, YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/admin/enquiries/export [get]
func (h *EnquiryHandler) Export(c *fiber.Ctx) error {
	req, err := parseEnquiryFilters(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var buf bytes.Buffer
	format, filename, err := h.enquiryUC.Export(c.UserContext(), req, &buf)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Enquiries exported",
		zap.String("format", string(format)),
		zap.Int("bytes", buf.Len()))

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

func parseEnquiryFilters(c *fiber.Ctx) (dto.EnquiryListRequest, error) {
	var req dto.EnquiryListRequest
	if err := c.QueryParser(&req); err != nil {
		return req, errors.ErrInvalidRequest
	}
	req.Date = strings.TrimSpace(req.Date)
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))

	if err := validator.Validate(&req); err != nil {
		return req, validationError(err)
	}
	return req, nil
}
