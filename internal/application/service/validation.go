package service

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/sangkips/clockshop-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimals validate as numbers so gt=0 / gte=0 work on money fields
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validateInput runs struct tag validation and returns a 422 AppError listing the bad fields
func validateInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		return apperror.FromValidation(err)
	}
	return nil
}
