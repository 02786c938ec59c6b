package dto

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
)

// EstimateRequest - параметры запроса оценки стоимости
type EstimateRequest struct {
	Start        string `query:"start" json:"start" validate:"required_without=StartPlaceID"`
	End          string `query:"end" json:"end" validate:"required_without=EndPlaceID"`
	StartPlaceID string `query:"start_place_id" json:"start_place_id"`
	EndPlaceID   string `query:"end_place_id" json:"end_place_id"`
	Height       string `query:"height" json:"height" validate:"omitempty,band_height"`
	Length       string `query:"length" json:"length" validate:"omitempty,band_length"`
	Width        string `query:"width" json:"width" validate:"omitempty,band_width"`
	Weight       string `query:"weight" json:"weight" validate:"omitempty,band_weight"`
}

// LoginRequest - вход администратора
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RouteInput is the admin route form after the multipart fields have been read.
type RouteInput struct {
	Title                string
	StartKeyword         string
	EndKeyword           string
	RoutePath            []string
	RouteKeywordsPreview string
	Points               []PointInput
	PricingRows          []PriceInput
	SummaryReport        *FileInput
	DetailedReport       *FileInput
}

// PointInput - замечание в форме маршрута
type PointInput struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// PriceInput - строка тарифа в форме маршрута. Цена приходит числом или строкой,
// в camelCase или snake_case.
type PriceInput struct {
	Height          string          `json:"height"`
	Length          string          `json:"length"`
	Width           string          `json:"width"`
	Weight          string          `json:"weight"`
	PricePerKm      json.RawMessage `json:"pricePerKm,omitempty"`
	PricePerKmSnake json.RawMessage `json:"price_per_km,omitempty"`
}

// Price returns the per-km price; ok is false when it is missing or not a finite number.
func (p PriceInput) Price() (float64, bool) {
	raw := p.PricePerKmSnake
	if len(raw) == 0 || string(raw) == "null" {
		raw = p.PricePerKm
	}
	if len(raw) == 0 {
		return 0, false
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FileInput - загруженный файл отчёта
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// EnquiryRequest accepts both the structured form payload and the legacy flat fields.
type EnquiryRequest struct {
	Route   *EnquiryRoute   `json:"route,omitempty"`
	Truck   *EnquiryTruck   `json:"truck,omitempty"`
	Contact *EnquiryContact `json:"contact,omitempty"`

	StartLocation string `json:"startLocation,omitempty"`
	EndLocation   string `json:"endLocation,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Length        string `json:"length,omitempty"`
	Width         string `json:"width,omitempty"`
	Height        string `json:"height,omitempty"`
	Weight        string `json:"weight,omitempty"`
}

type EnquiryRoute struct {
	From *EnquiryPlace `json:"from,omitempty"`
	To   *EnquiryPlace `json:"to,omitempty"`
}

// EnquiryPlace - место, выбранное в автокомплите формы
type EnquiryPlace struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
	Admin            struct {
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"admin"`
	Location *struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"location,omitempty"`
}

type EnquiryTruck struct {
	LengthLabel string   `json:"length_label"`
	WidthLabel  string   `json:"width_label"`
	HeightLabel string   `json:"height_label"`
	WeightLabel string   `json:"weight_label"`
	VolumeM3    *float64 `json:"volume_m3,omitempty"`
	Class       string   `json:"class,omitempty"`
}

type EnquiryContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EnquiryListRequest - фильтры списка заявок
type EnquiryListRequest struct {
	Email  string `query:"email" json:"email"`
	Start  string `query:"start" json:"start"`
	End    string `query:"end" json:"end"`
	Date   string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Format string `query:"format" json:"format" validate:"omitempty,oneof=csv xlsx"`
}
