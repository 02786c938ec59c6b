package keyword

// cityAliases - группы прежних и альтернативных названий одного города.
// Каноническое название в группе идёт первым.
var cityAliases = [][]string{
	{"mumbai", "bombay"},
	{"chennai", "madras"},
	{"bengaluru", "bangalore"},
	{"kolkata", "calcutta"},
	{"delhi", "new delhi", "ncr"},
	{"puducherry", "pondicherry"},
	{"coimbatore", "kovai"},
	{"tiruchirappalli", "trichy"},
	{"thiruvananthapuram", "trivandrum"},

	// Karnataka
	{"mysuru", "mysore"},
	{"mangaluru", "mangalore"},
	{"belagavi", "belgaum"},
	{"shivamogga", "shimoga"},
	{"ballari", "bellary"},
	{"tumakuru", "tumkur"},

	// Goa
	{"panaji", "panjim", "ponje"},
	{"madgaon", "margao"},
	{"vasco da gama", "vasco"},
	{"mapusa", "mapuca"},
	{"canacona", "cancona"},
}

var districtAliases = [][]string{
	{"tiruchirappalli", "trichy"},
	{"kanyakumari", "kanniyakumari", "cape comorin"},
	{"thane"},
}

// stateCities - опорные города штата для запросов, где известен только штат
var stateCities = map[string][]string{
	"goa": {"panaji", "madgaon", "margao", "vasco da gama", "mapusa", "ponda", "canacona"},
	"karnataka": {
		"bengaluru", "bangalore",
		"mysuru", "mysore",
		"mangaluru", "mangalore",
		"hubballi", "hubli", "dharwad",
		"belagavi", "belgaum",
		"shivamogga", "shimoga",
		"ballari", "bellary",
		"tumakuru", "tumkur",
	},
	"tamil nadu":     {"chennai", "madras", "coimbatore", "kovai", "tiruchirappalli", "trichy", "madurai", "salem"},
	"maharashtra":    {"mumbai", "bombay", "thane", "pune", "nagpur", "nashik"},
	"kerala":         {"thiruvananthapuram", "trivandrum", "kochi", "ernakulam", "kozhikode", "calicut"},
	"telangana":      {"hyderabad", "warangal", "karimnagar"},
	"andhra pradesh": {"visakhapatnam", "vishakhapatnam", "vijayawada", "tirupati", "guntur"},
	"west bengal":    {"kolkata", "calcutta", "siliguri", "durgapur"},
	"delhi":          {"delhi", "new delhi", "ncr", "gurugram", "gurgaon", "noida", "ghaziabad", "faridabad"},
}

// Catalog - индекс таблиц синонимов только для чтения
type Catalog struct {
	cities    map[string][]string
	districts map[string][]string
	states    map[string][]string
}

// DefaultCatalog - строится один раз при старте и не меняется
var DefaultCatalog = NewCatalog(cityAliases, districtAliases, stateCities)

// NewCatalog - индексирует каждого члена группы, любой синоним даёт всю группу
func NewCatalog(cities, districts [][]string, states map[string][]string) *Catalog {
	return &Catalog{
		cities:    indexGroups(cities),
		districts: indexGroups(districts),
		states:    states,
	}
}

func indexGroups(groups [][]string) map[string][]string {
	idx := make(map[string][]string)
	for _, g := range groups {
		for _, name := range g {
			if _, ok := idx[name]; !ok {
				idx[name] = g
			}
		}
	}
	return idx
}

// CityWithAliases - группа синонимов города или сам нормализованный город, если он
// неизвестен. Пустой ввод даёт пустой набор.
func (c *Catalog) CityWithAliases(city string) []string {
	return lookupGroup(c.cities, city)
}

// DistrictWithAliases - CityWithAliases по таблице округов
func (c *Catalog) DistrictWithAliases(district string) []string {
	return lookupGroup(c.districts, district)
}

// StateCanonicalCities - опорные города штата вместе с их синонимами
func (c *Catalog) StateCanonicalCities(state string) []string {
	s := NormalizeToken(state)
	if s == "" {
		return []string{}
	}
	base := c.states[s]
	out := newSet()
	out.add(base...)
	for _, city := range base {
		out.add(c.CityWithAliases(city)...)
	}
	return out.list()
}

func lookupGroup(idx map[string][]string, name string) []string {
	n := NormalizeToken(name)
	if n == "" {
		return []string{}
	}
	if g, ok := idx[n]; ok {
		out := make([]string, len(g))
		copy(out, g)
		return out
	}
	return []string{n}
}
