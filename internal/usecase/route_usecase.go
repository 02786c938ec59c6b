package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/usecase/dto"
)

const documentKeyPrefix = "uploads/lbi/survey-reports"

var wordMIMETypes = map[string]bool{
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// RouteUseCase - администрирование каталога маршрутов
type RouteUseCase struct {
	routeRepo    repository.RouteRepository
	docs         repository.DocumentStore
	logger       *zap.Logger
	maxFileBytes int64
}

// NewRouteUseCase - создание нового RouteUseCase. docs может быть nil, тогда загрузка отчётов запрещена.
func NewRouteUseCase(
	routeRepo repository.RouteRepository,
	docs repository.DocumentStore,
	logger *zap.Logger,
	maxFileBytes int64,
) *RouteUseCase {
	return &RouteUseCase{
		routeRepo:    routeRepo,
		docs:         docs,
		logger:       logger,
		maxFileBytes: maxFileBytes,
	}
}

func (uc *RouteUseCase) List(ctx context.Context) ([]domain.Route, error) {
	routes, err := uc.routeRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list routes", zap.Error(err))
		return nil, err
	}
	return routes, nil
}

// Get returns the route with constraints and pricing rows.
func (uc *RouteUseCase) Get(ctx context.Context, id int64) (*domain.RouteDetails, error) {
	route, err := uc.routeRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get route", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if route == nil {
		return nil, errors.ErrSurveyNotFound
	}
	return route, nil
}

// Create stores a new route with its children and uploaded reports.
func (uc *RouteUseCase) Create(ctx context.Context, in dto.RouteInput) (int64, error) {
	if err := uc.checkDocuments(in); err != nil {
		return 0, err
	}

	details := BuildRouteDetails(in)

	uploaded, err := uc.uploadDocuments(ctx, in, &details.Route)
	if err != nil {
		return 0, err
	}

	id, err := uc.routeRepo.Create(ctx, details)
	if err != nil {
		uc.logger.Error("Failed to create route", zap.String("title", details.Title), zap.Error(err))
		uc.removeDocuments(ctx, uploaded...)
		return 0, err
	}

	uc.logger.Info("Route created",
		zap.Int64("id", id),
		zap.Int("constraints", len(details.Constraints)),
		zap.Int("pricing_rows", len(details.Pricing)))
	return id, nil
}

// Update replaces the route and all of its children. Reports are kept unless replaced.
func (uc *RouteUseCase) Update(ctx context.Context, id int64, in dto.RouteInput) error {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.checkDocuments(in); err != nil {
		return err
	}

	details := BuildRouteDetails(in)
	details.ID = id
	details.CreatedAt = existing.CreatedAt
	details.SummaryFilePath = existing.SummaryFilePath
	details.DetailedFilePath = existing.DetailedFilePath

	uploaded, err := uc.uploadDocuments(ctx, in, &details.Route)
	if err != nil {
		return err
	}

	if err := uc.routeRepo.Update(ctx, details); err != nil {
		uc.logger.Error("Failed to update route", zap.Int64("id", id), zap.Error(err))
		uc.removeDocuments(ctx, uploaded...)
		return err
	}

	// старые отчёты удаляем только после успешного обновления
	if in.SummaryReport != nil {
		uc.removeDocuments(ctx, deref(existing.SummaryFilePath))
	}
	if in.DetailedReport != nil {
		uc.removeDocuments(ctx, deref(existing.DetailedFilePath))
	}

	uc.logger.Info("Route updated", zap.Int64("id", id))
	return nil
}

// Delete removes the route, its children and (best effort) its reports.
func (uc *RouteUseCase) Delete(ctx context.Context, id int64) error {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.routeRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete route", zap.Int64("id", id), zap.Error(err))
		return err
	}

	uc.removeDocuments(ctx, deref(existing.SummaryFilePath), deref(existing.DetailedFilePath))
	uc.logger.Info("Route deleted", zap.Int64("id", id))
	return nil
}

// BuildRouteDetails applies the form rules: combined keywords, trimmed constraints with
// categories defaulting to A, pricing rows with a finite price and canonical bands.
func BuildRouteDetails(in dto.RouteInput) *domain.RouteDetails {
	details := &domain.RouteDetails{
		Route: domain.Route{
			Title:         strings.TrimSpace(in.Title),
			StartKeyword:  in.StartKeyword,
			EndKeyword:    in.EndKeyword,
			RouteKeywords: strings.TrimSpace(in.RouteKeywordsPreview),
		},
		Constraints: []domain.Constraint{},
		Pricing:     []domain.PricingRow{},
	}
	if details.RouteKeywords == "" {
		details.RouteKeywords = BuildRouteKeywords(in.StartKeyword, in.EndKeyword, in.RoutePath)
	}

	for _, p := range in.Points {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		details.Constraints = append(details.Constraints, domain.Constraint{
			Point:    text,
			Category: normalizeCategory(p.Category),
		})
	}

	for _, row := range in.PricingRows {
		price, ok := row.Price()
		if !ok {
			continue
		}
		bands := domain.BandSet{Height: row.Height, Length: row.Length, Width: row.Width, Weight: row.Weight}
		details.Pricing = append(details.Pricing, domain.PricingRow{
			BandSet:    bands.Canonical(),
			PricePerKm: price,
		})
	}

	return details
}

// BuildRouteKeywords joins the deduplicated lowercase tokens of both keyword lists and the route path.
func BuildRouteKeywords(startKeyword, endKeyword string, routePath []string) string {
	tokens := append(strings.Split(startKeyword, ","), strings.Split(endKeyword, ",")...)
	tokens = append(tokens, routePath...)

	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return strings.Join(out, ", ")
}

func normalizeCategory(c string) domain.ConstraintCategory {
	switch cat := domain.ConstraintCategory(strings.ToUpper(strings.TrimSpace(c))); cat {
	case domain.CategoryA, domain.CategoryB, domain.CategoryC:
		return cat
	default:
		return domain.CategoryA
	}
}

func (uc *RouteUseCase) checkDocuments(in dto.RouteInput) error {
	for _, f := range []struct {
		file  *dto.FileInput
		label string
	}{
		{in.SummaryReport, "Summary report"},
		{in.DetailedReport, "Detailed report"},
	} {
		if f.file == nil {
			continue
		}
		if !isWordFile(f.file) {
			return errors.ErrInvalidDocument.WithMessage(f.label + " must be .doc/.docx")
		}
		if f.file.Size > uc.maxFileBytes {
			return errors.ErrDocumentTooLarge.WithMessage(
				fmt.Sprintf("%s exceeds %dMB", f.label, uc.maxFileBytes/(1024*1024)))
		}
		if uc.docs == nil {
			return fmt.Errorf("document storage is not configured")
		}
	}
	return nil
}

func isWordFile(f *dto.FileInput) bool {
	ext := strings.ToLower(filepath.Ext(f.Name))
	return ext == ".doc" || ext == ".docx" || wordMIMETypes[f.ContentType]
}

// uploadDocuments stores new reports and points the route at them; returns the new keys.
func (uc *RouteUseCase) uploadDocuments(ctx context.Context, in dto.RouteInput, route *domain.Route) ([]string, error) {
	var keys []string
	if in.SummaryReport != nil {
		key, err := uc.upload(ctx, in.SummaryReport, "summary")
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		route.SummaryFilePath = &key
	}
	if in.DetailedReport != nil {
		key, err := uc.upload(ctx, in.DetailedReport, "detailed")
		if err != nil {
			uc.removeDocuments(ctx, keys...)
			return nil, err
		}
		keys = append(keys, key)
		route.DetailedFilePath = &key
	}
	return keys, nil
}

func (uc *RouteUseCase) upload(ctx context.Context, f *dto.FileInput, folder string) (string, error) {
	ext := filepath.Ext(f.Name)
	if ext == "" {
		ext = ".docx"
	}
	key := fmt.Sprintf("%s/%s/%s%s", documentKeyPrefix, folder, uuid.NewString(), ext)

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s report: %w", folder, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, uc.maxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s report: %w", folder, err)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stored, err := uc.docs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		uc.logger.Error("Failed to upload report", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("upload %s report: %w", folder, err)
	}
	return stored, nil
}

// removeDocuments deletes objects best effort; failures are only logged.
func (uc *RouteUseCase) removeDocuments(ctx context.Context, keys ...string) {
	if uc.docs == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := uc.docs.Remove(ctx, key); err != nil {
			uc.logger.Warn("Failed to delete report", zap.String("key", key), zap.Error(err))
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
