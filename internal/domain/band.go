package domain

import (
	"strconv"
	"strings"
)

// Dimension - одно из четырёх измерений груза
type Dimension string

const (
	DimensionHeight Dimension = "height"
	DimensionLength Dimension = "length"
	DimensionWidth  Dimension = "width"
	DimensionWeight Dimension = "weight"
)

// Dimensions - порядок измерений при сравнении и выводе
var Dimensions = []Dimension{DimensionHeight, DimensionLength, DimensionWidth, DimensionWeight}

var bandEnumerations = map[Dimension][]string{
	DimensionHeight: {"less than 4m", "4 - 4.5m", "4.5 - 5m", "5.5 - 6m", "6 - 6.5m", "6.5 - 7.5m", ">7.5m"},
	DimensionLength: {"12m", "12-15m", "15-18m", "18-25m", "25-30m", "30-40m", "40-60m", "60-80m", ">80m"},
	DimensionWidth:  {"3m", "3-4m", "4-5m", "5-6m", "6-7m", "7-8m", ">8m"},
	DimensionWeight: {"<50 tons", "50 - 100 tons", "100 - 200 tons", "200 - 300 tons", "300 - 400 tons", "400 - 500 tons", ">500 tons"},
}

// Bands - копия допустимых меток диапазонов измерения
func Bands(d Dimension) []string {
	src := bandEnumerations[d]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsBand - s буква в букву совпадает с одной из меток измерения d
func IsBand(d Dimension, s string) bool {
	for _, b := range bandEnumerations[d] {
		if b == s {
			return true
		}
	}
	return false
}

// CanonicalBand - приводит вольное написание ("100-200 Tons") к метке перечисления
// ("100 - 200 tons"). Неизвестная метка возвращается обрезанной, без изменений.
func CanonicalBand(d Dimension, s string) string {
	trimmed := strings.TrimSpace(s)
	key := bandKey(trimmed)
	for _, b := range bandEnumerations[d] {
		if bandKey(b) == key {
			return b
		}
	}
	return trimmed
}

func bandKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// BandNumber - первое число метки (цифры и точки): "200 - 300 tons" -> 200,
// ">7.5m" -> 7.5, "less than 4m" -> 4. ok = false, если числа нет.
func BandNumber(s string) (float64, bool) {
	start := -1
	end := len(s)
	for i, r := range s {
		isNum := (r >= '0' && r <= '9') || r == '.'
		if start < 0 {
			if isNum {
				start = i
			}
			continue
		}
		if !isNum {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.Trim(s[start:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BandSet - запрошенные или сохранённые значения четырёх измерений
type BandSet struct {
	Height string `json:"height" db:"height"`
	Length string `json:"length" db:"length"`
	Width  string `json:"width" db:"width"`
	Weight string `json:"weight" db:"weight"`
}

// Get - метка одного измерения
func (b BandSet) Get(d Dimension) string {
	switch d {
	case DimensionHeight:
		return b.Height
	case DimensionLength:
		return b.Length
	case DimensionWidth:
		return b.Width
	case DimensionWeight:
		return b.Weight
	}
	return ""
}

// Canonical - все метки набора через CanonicalBand
func (b BandSet) Canonical() BandSet {
	return BandSet{
		Height: CanonicalBand(DimensionHeight, b.Height),
		Length: CanonicalBand(DimensionLength, b.Length),
		Width:  CanonicalBand(DimensionWidth, b.Width),
		Weight: CanonicalBand(DimensionWeight, b.Weight),
	}
}
