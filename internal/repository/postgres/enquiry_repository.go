package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
)

type enquiryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewEnquiryRepository создает новый экземпляр EnquiryRepository
func NewEnquiryRepository(db *DB) repository.EnquiryRepository {
	return &enquiryRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Create добавляет заявку; заявки никогда не изменяются
func (r *enquiryRepository) Create(ctx context.Context, e *domain.Enquiry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO transport_enquiries
			(start_location, end_location, email, phone, length, width, height, weight, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		e.StartLocation, e.EndLocation, e.Email, e.Phone,
		e.Length, e.Width, e.Height, e.Weight, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert enquiry", zap.String("email", e.Email), zap.Error(err))
		return 0, fmt.Errorf("insert enquiry: %w", err)
	}

	e.ID = id
	return id, nil
}

// List возвращает заявки по фильтру (подстрока без учёта регистра, день создания)
func (r *enquiryRepository) List(ctx context.Context, f domain.EnquiryFilter) ([]domain.Enquiry, error) {
	var (
		conds []string
		args  []interface{}
	)

	addLike := func(column, value string) {
		if value = strings.TrimSpace(value); value == "" {
			return
		}
		conds = append(conds, "LOWER("+column+") LIKE ?")
		args = append(args, "%"+strings.ToLower(value)+"%")
	}
	addLike("email", f.Email)
	addLike("start_location", f.Start)
	addLike("end_location", f.End)

	if f.Date != nil {
		day := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, time.UTC)
		conds = append(conds, "created_at >= ? AND created_at < ?")
		args = append(args, day, day.AddDate(0, 0, 1))
	}

	query := `SELECT id, start_location, end_location, email, phone, height, length, width, weight, created_at
		FROM transport_enquiries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	enquiries := []domain.Enquiry{}
	if err := r.db.SelectContext(ctx, &enquiries, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to list enquiries", zap.Error(err))
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	return enquiries, nil
}
