package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odc-estimate/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// имена полей в ошибках берём из json-тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerBand("band_height", domain.DimensionHeight)
	registerBand("band_length", domain.DimensionLength)
	registerBand("band_width", domain.DimensionWidth)
	registerBand("band_weight", domain.DimensionWeight)
}

// registerBand - значение должно совпадать с одной из меток диапазона буква в букву
func registerBand(tag string, d domain.Dimension) {
	_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return domain.IsBand(d, fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// Var - валидация одного значения
func Var(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

// FieldNames returns the names of the fields that failed validation, in
// declaration order. Nil when err is not a validation error.
func FieldNames(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		if !seen[fe.Field()] {
			seen[fe.Field()] = true
			names = append(names, fe.Field())
		}
	}
	return names
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
