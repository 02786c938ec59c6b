// Package keyword - наборы ключевых слов места для поиска маршрутов в каталоге
package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/odc-estimate/internal/domain"
)

// MinTokenLength - короче этого токены совпадают с чем угодно как подстроки
const MinTokenLength = 3

var (
	punct      = regexp.MustCompile(`[()&.]`)
	whitespace = regexp.MustCompile(`\s+`)
	separators = regexp.MustCompile(`[,\-]`)
)

// NormalizeToken - нижний регистр без ()&. и лишних пробелов
func NormalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = punct.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Builder - построение наборов ключевых слов по каталогу синонимов
type Builder struct {
	catalog *Catalog
}

func NewBuilder(catalog *Catalog) *Builder {
	if catalog == nil {
		catalog = DefaultCatalog
	}
	return &Builder{catalog: catalog}
}

// Rich - широкий набор: подпись и её части, районы, город и округ с синонимами,
// штат, опорные города штата и страна
func (b *Builder) Rich(p domain.Place) []string {
	label := p.Label
	if label == "" {
		label = p.Name
	}
	label = NormalizeToken(label)

	s := newSet()
	s.add(label)
	for _, seg := range separators.Split(label, -1) {
		s.add(NormalizeToken(seg))
	}
	for _, sub := range p.Admin.Sublocalities {
		s.add(NormalizeToken(sub))
	}
	s.add(b.catalog.CityWithAliases(p.Admin.City)...)
	s.add(b.catalog.DistrictWithAliases(p.Admin.District)...)
	s.add(NormalizeToken(p.Admin.State))
	s.add(b.catalog.StateCanonicalCities(p.Admin.State)...)
	s.add(NormalizeToken(p.Admin.Country))
	return s.list()
}

// Core - узкий набор: город и округ с синонимами, а если их нет - опорные города штата
func (b *Builder) Core(p domain.Place) []string {
	s := newSet()
	s.add(b.catalog.CityWithAliases(p.Admin.City)...)
	s.add(b.catalog.DistrictWithAliases(p.Admin.District)...)
	if s.empty() {
		s.add(b.catalog.StateCanonicalCities(p.Admin.State)...)
	}
	return s.list()
}

// BuildRichKeywords - Rich по каталогу по умолчанию
func BuildRichKeywords(p domain.Place) []string {
	return NewBuilder(nil).Rich(p)
}

// BuildCoreKeywords - Core по каталогу по умолчанию
func BuildCoreKeywords(p domain.Place) []string {
	return NewBuilder(nil).Core(p)
}

// set - порядок первого появления, токены короче MinTokenLength отбрасываются
type set struct {
	seen  map[string]struct{}
	items []string
}

func newSet() *set {
	return &set{seen: make(map[string]struct{})}
}

func (s *set) add(tokens ...string) {
	for _, t := range tokens {
		if utf8.RuneCountInString(t) < MinTokenLength {
			continue
		}
		if _, ok := s.seen[t]; ok {
			continue
		}
		s.seen[t] = struct{}{}
		s.items = append(s.items, t)
	}
}

func (s *set) empty() bool {
	return len(s.items) == 0
}

func (s *set) list() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}
