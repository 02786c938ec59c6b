package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/validator"
	"github.com/odc-estimate/internal/usecase/dto"
)

// EnquiryUseCase - приём и выгрузка заявок
type EnquiryUseCase struct {
	enquiryRepo repository.EnquiryRepository
	publisher   repository.EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnquiryUseCase - создание нового EnquiryUseCase. publisher может быть nil.
func NewEnquiryUseCase(
	enquiryRepo repository.EnquiryRepository,
	publisher repository.EventPublisher,
	logger *zap.Logger,
) *EnquiryUseCase {
	return &EnquiryUseCase{
		enquiryRepo: enquiryRepo,
		publisher:   publisher,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores an enquiry, then publishes EnquiryCreated.
// A publish failure is logged and does not fail the submission.
func (uc *EnquiryUseCase) Submit(ctx context.Context, req dto.EnquiryRequest) (int64, error) {
	event := BuildEnquiryEvent(req)
	enquiry := &event.Enquiry

	if missing := MissingEnquiryFields(*enquiry); len(missing) > 0 {
		return 0, errors.ErrValidationFailed.
			WithMessage("Missing/invalid: " + strings.Join(missing, ", ")).
			WithDetails(map[string]interface{}{"fields": missing})
	}

	enquiry.CreatedAt = uc.now()
	id, err := uc.enquiryRepo.Create(ctx, enquiry)
	if err != nil {
		uc.logger.Error("Failed to store enquiry", zap.Error(err))
		return 0, err
	}
	enquiry.ID = id

	if uc.publisher != nil {
		if err := uc.publisher.PublishEnquiryCreated(ctx, event); err != nil {
			uc.logger.Error("Failed to publish enquiry event", zap.Int64("enquiry_id", id), zap.Error(err))
		}
	}

	uc.logger.Info("Enquiry submitted",
		zap.Int64("id", id),
		zap.String("start", enquiry.StartLocation),
		zap.String("end", enquiry.EndLocation))
	return id, nil
}

// List returns enquiries matching the filters, newest first.
func (uc *EnquiryUseCase) List(ctx context.Context, req dto.EnquiryListRequest) ([]domain.Enquiry, error) {
	filter, err := enquiryFilter(req)
	if err != nil {
		return nil, err
	}
	rows, err := uc.enquiryRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list enquiries", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func enquiryFilter(req dto.EnquiryListRequest) (domain.EnquiryFilter, error) {
	filter := domain.EnquiryFilter{
		Email: strings.TrimSpace(req.Email),
		Start: strings.TrimSpace(req.Start),
		End:   strings.TrimSpace(req.End),
	}
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return filter, errors.ErrInvalidRequest.WithMessage(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
		}
		filter.Date = &day
	}
	return filter, nil
}

// BuildEnquiryEvent coalesces the structured payload with the legacy flat fields.
func BuildEnquiryEvent(req dto.EnquiryRequest) domain.EnquiryCreatedEvent {
	var from, to *domain.PlaceSummary
	if req.Route != nil {
		from = summarizePlace(req.Route.From)
		to = summarizePlace(req.Route.To)
	}
	truck := req.Truck
	if truck == nil {
		truck = &dto.EnquiryTruck{}
	}
	contact := req.Contact
	if contact == nil {
		contact = &dto.EnquiryContact{}
	}

	event := domain.EnquiryCreatedEvent{
		Enquiry: domain.Enquiry{
			StartLocation: coalesce(summaryLabel(from), summaryCity(from), req.StartLocation),
			EndLocation:   coalesce(summaryLabel(to), summaryCity(to), req.EndLocation),
			Email:         coalesce(contact.Email, req.Email),
			Phone:         coalesce(contact.Phone, req.Phone),
			Length:        coalesce(truck.LengthLabel, req.Length),
			Width:         coalesce(truck.WidthLabel, req.Width),
			Height:        coalesce(truck.HeightLabel, req.Height),
			Weight:        coalesce(truck.WeightLabel, req.Weight),
		},
		From:       from,
		To:         to,
		VolumeM3:   truck.VolumeM3,
		TruckClass: truck.Class,
	}
	return event
}

// MissingEnquiryFields lists required fields that are empty, then "valid email" when the
// address does not parse.
func MissingEnquiryFields(e domain.Enquiry) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"startLocation", e.StartLocation},
		{"endLocation", e.EndLocation},
		{"email", e.Email},
		{"phone", e.Phone},
		{"length", e.Length},
		{"width", e.Width},
		{"height", e.Height},
		{"weight", e.Weight},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if validator.Var(e.Email, "required,email") != nil {
		missing = append(missing, "valid email")
	}
	return missing
}

func summarizePlace(p *dto.EnquiryPlace) *domain.PlaceSummary {
	if p == nil {
		return nil
	}
	label := p.FormattedAddress
	if label == "" {
		var parts []string
		for _, s := range []string{p.Admin.City, p.Admin.State, p.Admin.Country} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		label = strings.Join(parts, ", ")
	}
	s := &domain.PlaceSummary{
		Label:   label,
		City:    p.Admin.City,
		State:   p.Admin.State,
		Country: p.Admin.Country,
		PlaceID: p.PlaceID,
	}
	if p.Location != nil {
		s.Lat, s.Lng = p.Location.Lat, p.Location.Lng
	}
	return s
}

func summaryLabel(s *domain.PlaceSummary) string {
	if s == nil {
		return ""
	}
	return s.Label
}

func summaryCity(s *domain.PlaceSummary) string {
	if s == nil {
		return ""
	}
	return s.City
}

// coalesce returns the first value that is not blank, trimmed.
func coalesce(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
