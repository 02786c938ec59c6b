package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/usecase/dto"
)

func newRouteApp(uc RouteService) *fiber.App {
	h := NewRouteHandler(uc, zap.NewNop())
	app := fiber.New()
	app.Get("/routes", h.List)
	app.Post("/routes", h.Create)
	app.Get("/routes/:id", h.Get)
	app.Put("/routes/:id", h.Update)
	app.Delete("/routes/:id", h.Delete)
	return app
}

type formFileField struct {
	field, name, contentType, body string
}

func routeForm(t *testing.T, method, target string, fields map[string]string, files ...formFileField) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func validRouteFields() map[string]string {
	return map[string]string{
		"title":        "Chennai Port to Mumbai",
		"startKeyword": "Chennai, Ennore",
		"endKeyword":   "Mumbai",
		"routePath":    `["Bengaluru","Pune"]`,
		"points":       `[{"text":"Low bridge at km 212","category":"b"}]`,
		"pricingRows":  `[{"height":"4 - 4.5m","length":"12m","width":"3m","weight":"<50 tons","pricePerKm":"20"}]`,
	}
}

func TestRouteHandler_Create(t *testing.T) {
	t.Run("multipart form", func(t *testing.T) {
		uc := new(mockRouteService)
		var got dto.RouteInput
		uc.On("Create", mock.Anything, mock.AnythingOfType("dto.RouteInput")).
			Run(func(args mock.Arguments) { got = args.Get(1).(dto.RouteInput) }).
			Return(int64(7), nil)

		req := routeForm(t, "POST", "/routes", validRouteFields(), formFileField{
			field:       "summaryReport",
			name:        "Survey.docx",
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			body:        "PK fake docx",
		})
		resp, err := newRouteApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		assert.Equal(t, "Chennai Port to Mumbai", got.Title)
		assert.Equal(t, []string{"Bengaluru", "Pune"}, got.RoutePath)
		require.Len(t, got.Points, 1)
		assert.Equal(t, "b", got.Points[0].Category)
		require.Len(t, got.PricingRows, 1)
		price, ok := got.PricingRows[0].Price()
		assert.True(t, ok)
		assert.Equal(t, 20.0, price)

		require.NotNil(t, got.SummaryReport)
		assert.Nil(t, got.DetailedReport)
		assert.Equal(t, "Survey.docx", got.SummaryReport.Name)
		assert.Equal(t, int64(len("PK fake docx")), got.SummaryReport.Size)

		rc, err := got.SummaryReport.Open()
		require.NoError(t, err)
		content, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, "PK fake docx", string(content))
	})

	t.Run("missing title", func(t *testing.T) {
		uc := new(mockRouteService)
		fields := validRouteFields()
		fields["title"] = "  "

		resp, err := newRouteApp(uc).Test(routeForm(t, "POST", "/routes", fields))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Equal(t, "Missing/invalid: title", env.Error.Message)
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("bad pricing json", func(t *testing.T) {
		uc := new(mockRouteService)
		fields := validRouteFields()
		fields["pricingRows"] = `[{"height":`

		resp, err := newRouteApp(uc).Test(routeForm(t, "POST", "/routes", fields))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, []interface{}{"pricingRows"}, env.Error.Details["fields"])
	})

	t.Run("rejected document", func(t *testing.T) {
		uc := new(mockRouteService)
		uc.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.ErrInvalidDocument)

		req := routeForm(t, "POST", "/routes", validRouteFields(), formFileField{
			field: "detailedReport", name: "report.pdf", contentType: "application/pdf", body: "%PDF",
		})
		resp, err := newRouteApp(uc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouteHandler_Update(t *testing.T) {
	uc := new(mockRouteService)
	uc.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(in dto.RouteInput) bool {
		return in.SummaryReport == nil && in.EndKeyword == "Mumbai"
	})).Return(nil)

	resp, err := newRouteApp(uc).Test(routeForm(t, "PUT", "/routes/5", validRouteFields()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestRouteHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		uc := new(mockRouteService)
		uc.On("Get", mock.Anything, int64(3)).Return(&domain.RouteDetails{
			Route:       domain.Route{ID: 3, Title: "Chennai to Mumbai"},
			Constraints: []domain.Constraint{{Point: "Toll plaza", Category: domain.CategoryA}},
		}, nil)

		resp, err := newRouteApp(uc).Test(httptest.NewRequest("GET", "/routes/3", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		uc := new(mockRouteService)
		uc.On("Get", mock.Anything, int64(404)).Return(nil, errors.ErrSurveyNotFound)

		resp, err := newRouteApp(uc).Test(httptest.NewRequest("GET", "/routes/404", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := new(mockRouteService)

		resp, err := newRouteApp(uc).Test(httptest.NewRequest("GET", "/routes/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestRouteHandler_ListAndDelete(t *testing.T) {
	uc := new(mockRouteService)
	uc.On("List", mock.Anything).Return([]domain.Route{{ID: 2}, {ID: 1}}, nil)
	uc.On("Delete", mock.Anything, int64(2)).Return(nil)
	app := newRouteApp(uc)

	resp, err := app.Test(httptest.NewRequest("GET", "/routes", nil))
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, 2, env.Meta.Total)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/routes/2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
}
