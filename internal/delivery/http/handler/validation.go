package handler

import (
	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/pkg/validator"
)

// validationError превращает ошибку валидатора в 400 со списком полей
func validationError(err error) error {
	fields := validator.FieldNames(err)
	if len(fields) == 0 {
		return errors.ErrInvalidRequest
	}
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"fields": fields})
}
