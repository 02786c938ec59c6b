package repository

import (
	"context"

	"github.com/odc-estimate/internal/domain"
)

// EnquiryRepository - хранилище заявок
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) (int64, error)

	// List возвращает заявки по фильтру, новые первыми
	List(ctx context.Context, filter domain.EnquiryFilter) ([]domain.Enquiry, error)
}
