package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceInput_Price(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   float64
		wantOK bool
	}{
		{"camel number", `{"pricePerKm": 20}`, 20, true},
		{"camel string", `{"pricePerKm": " 12.5 "}`, 12.5, true},
		{"snake wins", `{"pricePerKm": 1, "price_per_km": 2}`, 2, true},
		{"snake null falls back", `{"pricePerKm": 3, "price_per_km": null}`, 3, true},
		{"missing", `{"height": "12m"}`, 0, false},
		{"garbage", `{"pricePerKm": "abc"}`, 0, false},
		{"empty string", `{"pricePerKm": ""}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PriceInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			got, ok := p.Price()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
