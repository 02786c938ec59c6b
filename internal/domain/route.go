package domain

import "time"

// ConstraintCategory - степень серьёзности ограничения на маршруте
type ConstraintCategory string

const (
	CategoryA ConstraintCategory = "A"
	CategoryB ConstraintCategory = "B"
	CategoryC ConstraintCategory = "C"
)

// Route is a surveyed catalog entry.
type Route struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	StartKeyword     string    `json:"start_keyword" db:"start_keyword"`
	EndKeyword       string    `json:"end_keyword" db:"end_keyword"`
	RouteKeywords    string    `json:"route_keywords" db:"route_keywords"`
	SummaryFilePath  *string   `json:"summary_file_path,omitempty" db:"summary_file_path"`
	DetailedFilePath *string   `json:"detailed_file_path,omitempty" db:"detailed_file_path"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Constraint - замечание из отчёта обследования маршрута
type Constraint struct {
	ID       int64              `json:"-" db:"id"`
	RouteID  int64              `json:"-" db:"route_id"`
	Point    string             `json:"point" db:"point"`
	Category ConstraintCategory `json:"category" db:"category"`
}

// PricingRow - тариф за километр для комбинации диапазонов
type PricingRow struct {
	ID      int64 `json:"id" db:"id"`
	RouteID int64 `json:"route_id" db:"route_id"`
	BandSet
	PricePerKm float64 `json:"price_per_km" db:"price_per_km"`
}

// RouteDetails is a route with its children.
type RouteDetails struct {
	Route
	Constraints []Constraint `json:"constraints"`
	Pricing     []PricingRow `json:"pricing,omitempty"`
}

// MatchMode selects the catalog column(s) a tier is matched against.
type MatchMode int

const (
	// MatchColumns - start keywords vs start_keyword, end keywords vs end_keyword
	MatchColumns MatchMode = iota
	// MatchCombined - both keyword sets vs route_keywords
	MatchCombined
)

func (m MatchMode) String() string {
	if m == MatchCombined {
		return "combined"
	}
	return "columns"
}

// RouteQuery is one catalog lookup of the matcher ladder. A route matches when any
// start keyword is a substring of the start side and any end keyword of the end side.
type RouteQuery struct {
	StartKeywords []string
	EndKeywords   []string
	Mode          MatchMode
	Limit         int
}
