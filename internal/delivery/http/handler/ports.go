package handler

import (
	"context"
	"io"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/usecase"
	"github.com/odc-estimate/internal/usecase/dto"
)

// Estimator - оценка стоимости перевозки
type Estimator interface {
	Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error)
}

// RouteService - администрирование каталога маршрутов
type RouteService interface {
	List(ctx context.Context) ([]domain.Route, error)
	Get(ctx context.Context, id int64) (*domain.RouteDetails, error)
	Create(ctx context.Context, in dto.RouteInput) (int64, error)
	Update(ctx context.Context, id int64, in dto.RouteInput) error
	Delete(ctx context.Context, id int64) error
}

// EnquiryService - приём и выгрузка заявок
type EnquiryService interface {
	Submit(ctx context.Context, req dto.EnquiryRequest) (int64, error)
	List(ctx context.Context, req dto.EnquiryListRequest) ([]domain.Enquiry, error)
	Export(ctx context.Context, req dto.EnquiryListRequest, w io.Writer) (usecase.ExportFormat, string, error)
}

// Authenticator - вход администратора
type Authenticator interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
