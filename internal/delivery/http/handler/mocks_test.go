package handler

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/usecase"
	"github.com/odc-estimate/internal/usecase/dto"
)

type mockEstimator struct {
	mock.Mock
}

func (m *mockEstimator) Estimate(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EstimateResponse), args.Error(1)
}

type mockRouteService struct {
	mock.Mock
}

func (m *mockRouteService) List(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *mockRouteService) Get(ctx context.Context, id int64) (*domain.RouteDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteDetails), args.Error(1)
}

func (m *mockRouteService) Create(ctx context.Context, in dto.RouteInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRouteService) Update(ctx context.Context, id int64, in dto.RouteInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *mockRouteService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockEnquiryService struct {
	mock.Mock
}

func (m *mockEnquiryService) Submit(ctx context.Context, req dto.EnquiryRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEnquiryService) List(ctx context.Context, req dto.EnquiryListRequest) ([]domain.Enquiry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enquiry), args.Error(1)
}

func (m *mockEnquiryService) Export(ctx context.Context, req dto.EnquiryListRequest, w io.Writer) (usecase.ExportFormat, string, error) {
	args := m.Called(ctx, req, w)
	if body, ok := args.Get(2).(string); ok && body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Get(0).(usecase.ExportFormat), args.String(1), args.Error(3)
}

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
