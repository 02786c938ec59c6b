package dto

import "github.com/odc-estimate/internal/domain"

// LocationResult - нормализованное место и его ключевые слова
type LocationResult struct {
	Input      string       `json:"input"`
	Normalized domain.Place `json:"normalized"`
	Keywords   []string     `json:"keywords"`
	Core       []string     `json:"core"`
}

// EstimateResponse - результат оценки стоимости перевозки
type EstimateResponse struct {
	Start             LocationResult      `json:"start"`
	End               LocationResult      `json:"end"`
	ReversedRouteUsed bool                `json:"reversed_route_used"`
	MatchTier         int                 `json:"match_tier"`
	DistanceKm        int64               `json:"distance_km"`
	EstimatedCost     int64               `json:"estimated_cost"`
	ExactPricing      bool                `json:"exact_pricing"`
	Pricing           domain.PricingRow   `json:"pricing"`
	Route             domain.RouteDetails `json:"route"`
	Summary           string              `json:"summary"`
}

// RouteSavedResponse - ответ на создание маршрута
type RouteSavedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// MessageResponse - простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse - выданный токен администратора
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// BandsResponse - справочник диапазонов для публичной формы
type BandsResponse struct {
	Height []string `json:"height"`
	Length []string `json:"length"`
	Width  []string `json:"width"`
	Weight []string `json:"weight"`
}

// NewBandsResponse собирает справочник из доменных перечислений
func NewBandsResponse() BandsResponse {
	return BandsResponse{
		Height: domain.Bands(domain.DimensionHeight),
		Length: domain.Bands(domain.DimensionLength),
		Width:  domain.Bands(domain.DimensionWidth),
		Weight: domain.Bands(domain.DimensionWeight),
	}
}
