package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bandRequest struct {
	Height string `json:"height" validate:"required,band_height"`
	Weight string `json:"weight" validate:"omitempty,band_weight"`
}

func TestValidate_BandTags(t *testing.T) {
	assert.NoError(t, Validate(bandRequest{Height: "4 - 4.5m", Weight: "<50 tons"}))
	assert.Error(t, Validate(bandRequest{Height: "4-4.5M"}))

	err := Validate(bandRequest{Height: "9m", Weight: "lots"})
	assert.Error(t, err)
	assert.Equal(t, []string{"height", "weight"}, FieldNames(err))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("ops@example.com", "email"))
	assert.Error(t, Var("not-an-email", "email"))
}

func TestFieldNames_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldNames(assert.AnError))
}
