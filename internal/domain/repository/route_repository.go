package repository

import (
	"context"

	"github.com/odc-estimate/internal/domain"
)

// RouteRepository определяет методы для работы с каталогом маршрутов
type RouteRepository interface {
	// FindCandidates возвращает до q.Limit маршрутов, подходящих под ключевые слова, по убыванию id
	FindCandidates(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error)

	// ListPricing возвращает тарифы маршрута по возрастанию id
	ListPricing(ctx context.Context, routeID int64) ([]domain.PricingRow, error)

	// FindExactPricing возвращает первую строку с точным совпадением всех четырёх диапазонов
	FindExactPricing(ctx context.Context, routeID int64, bands domain.BandSet) (*domain.PricingRow, error)

	// ListConstraints возвращает замечания маршрута
	ListConstraints(ctx context.Context, routeID int64) ([]domain.Constraint, error)

	// GetByID возвращает маршрут с дочерними записями
	GetByID(ctx context.Context, id int64) (*domain.RouteDetails, error)

	// List возвращает все маршруты, новые первыми
	List(ctx context.Context) ([]domain.Route, error)

	// Create сохраняет маршрут вместе с замечаниями и тарифами в одной транзакции
	Create(ctx context.Context, route *domain.RouteDetails) (int64, error)

	// Update заменяет маршрут и все дочерние записи в одной транзакции
	Update(ctx context.Context, route *domain.RouteDetails) error

	// Delete удаляет маршрут и дочерние записи
	Delete(ctx context.Context, id int64) error
}
