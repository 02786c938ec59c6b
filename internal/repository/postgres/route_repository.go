package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/pkg/errors"
)

const routeColumns = `id, title, start_keyword, end_keyword, route_keywords,
	summary_file_path, detailed_file_path, created_at, updated_at`

type routeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewRouteRepository создает новый экземпляр RouteRepository
func NewRouteRepository(db *DB) repository.RouteRepository {
	return &routeRepository{
		db:     db.DB,
		logger: db.logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// likeGroup строит "(LOWER(col) LIKE ? OR ...)"; пустой набор не совпадает ни с чем
func likeGroup(column string, keywords []string) (string, []interface{}) {
	if len(keywords) == 0 {
		return "1=0", nil
	}
	conds := make([]string, len(keywords))
	args := make([]interface{}, len(keywords))
	for i, k := range keywords {
		conds[i] = "LOWER(" + column + ") LIKE ?"
		args[i] = "%" + strings.ToLower(k) + "%"
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

// FindCandidates выполняет одну ступень поиска маршрута
func (r *routeRepository) FindCandidates(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
	startCol, endCol := "start_keyword", "end_keyword"
	if q.Mode == domain.MatchCombined {
		startCol, endCol = "route_keywords", "route_keywords"
	}

	startClause, startArgs := likeGroup(startCol, q.StartKeywords)
	endClause, endArgs := likeGroup(endCol, q.EndKeywords)

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	query := r.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM survey_reports WHERE %s AND %s ORDER BY id DESC LIMIT %d`,
		routeColumns, startClause, endClause, limit,
	))
	args := append(startArgs, endArgs...)

	var routes []domain.Route
	if err := r.db.SelectContext(ctx, &routes, query, args...); err != nil {
		r.logger.Error("Failed to find route candidates",
			zap.String("mode", q.Mode.String()),
			zap.Strings("start", q.StartKeywords),
			zap.Strings("end", q.EndKeywords),
			zap.Error(err))
		return nil, fmt.Errorf("find route candidates: %w", err)
	}

	return routes, nil
}

// ListPricing возвращает тарифы маршрута по возрастанию id
func (r *routeRepository) ListPricing(ctx context.Context, routeID int64) ([]domain.PricingRow, error) {
	query := r.db.Rebind(`
		SELECT id, survey_id AS route_id, height, length, width, weight, price_per_km
		FROM survey_pricing
		WHERE survey_id = ?
		ORDER BY id ASC
	`)

	rows := []domain.PricingRow{}
	if err := r.db.SelectContext(ctx, &rows, query, routeID); err != nil {
		r.logger.Error("Failed to list pricing", zap.Int64("route_id", routeID), zap.Error(err))
		return nil, fmt.Errorf("list pricing: %w", err)
	}
	return rows, nil
}

// FindExactPricing ищет строку с точным совпадением всех четырёх диапазонов
func (r *routeRepository) FindExactPricing(ctx context.Context, routeID int64, bands domain.BandSet) (*domain.PricingRow, error) {
	query := r.db.Rebind(`
		SELECT id, survey_id AS route_id, height, length, width, weight, price_per_km
		FROM survey_pricing
		WHERE survey_id = ? AND height = ? AND length = ? AND width = ? AND weight = ?
		ORDER BY id ASC
		LIMIT 1
	`)

	var row domain.PricingRow
	err := r.db.GetContext(ctx, &row, query, routeID, bands.Height, bands.Length, bands.Width, bands.Weight)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find exact pricing", zap.Int64("route_id", routeID), zap.Error(err))
		return nil, fmt.Errorf("find exact pricing: %w", err)
	}
	return &row, nil
}

// ListConstraints возвращает замечания маршрута в порядке добавления
func (r *routeRepository) ListConstraints(ctx context.Context, routeID int64) ([]domain.Constraint, error) {
	return r.listConstraints(ctx, r.db, routeID)
}

func (r *routeRepository) listConstraints(ctx context.Context, q sqlx.QueryerContext, routeID int64) ([]domain.Constraint, error) {
	query := r.db.Rebind(`
		SELECT id, survey_id AS route_id, point, category
		FROM survey_constraints
		WHERE survey_id = ?
		ORDER BY id ASC
	`)

	constraints := []domain.Constraint{}
	if err := sqlx.SelectContext(ctx, q, &constraints, query, routeID); err != nil {
		r.logger.Error("Failed to list constraints", zap.Int64("route_id", routeID), zap.Error(err))
		return nil, fmt.Errorf("list constraints: %w", err)
	}
	return constraints, nil
}

// GetByID возвращает маршрут с замечаниями и тарифами; nil если не найден
func (r *routeRepository) GetByID(ctx context.Context, id int64) (*domain.RouteDetails, error) {
	query := r.db.Rebind(`SELECT ` + routeColumns + ` FROM survey_reports WHERE id = ?`)

	var route domain.Route
	err := r.db.GetContext(ctx, &route, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get route by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	constraints, err := r.ListConstraints(ctx, id)
	if err != nil {
		return nil, err
	}
	pricing, err := r.ListPricing(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.RouteDetails{Route: route, Constraints: constraints, Pricing: pricing}, nil
}

// List возвращает все маршруты, новые первыми
func (r *routeRepository) List(ctx context.Context) ([]domain.Route, error) {
	routes := []domain.Route{}
	err := r.db.SelectContext(ctx, &routes, `SELECT `+routeColumns+` FROM survey_reports ORDER BY id DESC`)
	if err != nil {
		r.logger.Error("Failed to list routes", zap.Error(err))
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

// Create сохраняет маршрут с замечаниями и тарифами в одной транзакции
func (r *routeRepository) Create(ctx context.Context, route *domain.RouteDetails) (int64, error) {
	now := r.now()
	if route.CreatedAt.IsZero() {
		route.CreatedAt = now
	}
	route.UpdatedAt = now

	var id int64
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			INSERT INTO survey_reports
				(title, start_keyword, end_keyword, route_keywords, summary_file_path, detailed_file_path, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`)
		if err := tx.QueryRowxContext(ctx, query,
			route.Title, route.StartKeyword, route.EndKeyword, route.RouteKeywords,
			route.SummaryFilePath, route.DetailedFilePath, route.CreatedAt, route.UpdatedAt,
		).Scan(&id); err != nil {
			return fmt.Errorf("insert route: %w", err)
		}
		return r.insertChildren(ctx, tx, id, route)
	})
	if err != nil {
		r.logger.Error("Failed to create route", zap.String("title", route.Title), zap.Error(err))
		return 0, err
	}

	route.ID = id
	return id, nil
}

// Update заменяет маршрут и все его дочерние записи в одной транзакции
func (r *routeRepository) Update(ctx context.Context, route *domain.RouteDetails) error {
	route.UpdatedAt = r.now()

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			UPDATE survey_reports
			SET title = ?, start_keyword = ?, end_keyword = ?, route_keywords = ?,
				summary_file_path = ?, detailed_file_path = ?, updated_at = ?
			WHERE id = ?
		`)
		res, err := tx.ExecContext(ctx, query,
			route.Title, route.StartKeyword, route.EndKeyword, route.RouteKeywords,
			route.SummaryFilePath, route.DetailedFilePath, route.UpdatedAt, route.ID,
		)
		if err != nil {
			return fmt.Errorf("update route: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errors.ErrSurveyNotFound
		}

		if err := r.deleteChildren(ctx, tx, route.ID); err != nil {
			return err
		}
		return r.insertChildren(ctx, tx, route.ID, route)
	})
	if err != nil {
		r.logger.Error("Failed to update route", zap.Int64("id", route.ID), zap.Error(err))
		return err
	}
	return nil
}

// Delete удаляет маршрут и дочерние записи
func (r *routeRepository) Delete(ctx context.Context, id int64) error {
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.deleteChildren(ctx, tx, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM survey_reports WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete route: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errors.ErrSurveyNotFound
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete route", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *routeRepository) insertChildren(ctx context.Context, tx *sqlx.Tx, routeID int64, route *domain.RouteDetails) error {
	constraintQuery := tx.Rebind(`INSERT INTO survey_constraints (survey_id, point, category) VALUES (?, ?, ?)`)
	for i := range route.Constraints {
		c := &route.Constraints[i]
		if _, err := tx.ExecContext(ctx, constraintQuery, routeID, c.Point, string(c.Category)); err != nil {
			return fmt.Errorf("insert constraint: %w", err)
		}
		c.RouteID = routeID
	}

	pricingQuery := tx.Rebind(`
		INSERT INTO survey_pricing (survey_id, height, length, width, weight, price_per_km)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	for i := range route.Pricing {
		p := &route.Pricing[i]
		if _, err := tx.ExecContext(ctx, pricingQuery, routeID, p.Height, p.Length, p.Width, p.Weight, p.PricePerKm); err != nil {
			return fmt.Errorf("insert pricing: %w", err)
		}
		p.RouteID = routeID
	}
	return nil
}

func (r *routeRepository) deleteChildren(ctx context.Context, tx *sqlx.Tx, routeID int64) error {
	for _, table := range []string{"survey_constraints", "survey_pricing"} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM `+table+` WHERE survey_id = ?`), routeID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

func (r *routeRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
