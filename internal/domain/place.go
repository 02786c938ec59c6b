package domain

// Admin - административная иерархия места
type Admin struct {
	Sublocalities []string `json:"sublocalities"`
	City          string   `json:"city"`
	District      string   `json:"district"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	CountryCode   string   `json:"country_code"`
}

// Place is a normalized location derived per request. When geocoding yields nothing the
// admin fields are empty and Label holds the raw input.
type Place struct {
	Label string   `json:"label"`
	Name  string   `json:"name"`
	Admin Admin    `json:"admin"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
}

// HasCoordinates reports whether both coordinates are known.
func (p Place) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// EmptyPlace is the degraded result for a failed lookup.
func EmptyPlace(text string) Place {
	return Place{
		Label: text,
		Admin: Admin{Sublocalities: []string{}},
	}
}

// AddressComponent - компонент адреса в ответе геокодера
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// GeocodeResult is the provider-neutral result of a geocode or place-details lookup.
type GeocodeResult struct {
	FormattedAddress string
	Name             string
	Components       []AddressComponent
	Lat              *float64
	Lng              *float64
}

// Waypoint - точка для расчёта расстояния: координаты или текстовый адрес
type Waypoint struct {
	Label string
	Lat   *float64
	Lng   *float64
}
