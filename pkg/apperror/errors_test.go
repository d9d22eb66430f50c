package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineInput struct {
	UnitPrice int `validate:"gte=0"`
	Quantity  int `validate:"gt=0"`
}

type orderInput struct {
	CustomerName string      `validate:"required"`
	ContactEmail string      `validate:"omitempty,email"`
	Items        []lineInput `validate:"required,min=1,dive"`
}

func TestFromValidation_FieldPaths(t *testing.T) {
	v := validator.New()
	err := v.Struct(&orderInput{
		ContactEmail: "nope",
		Items:        []lineInput{{UnitPrice: -1, Quantity: 1}, {UnitPrice: 5}},
	})
	require.Error(t, err)

	appErr := FromValidation(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)

	got := make(map[string]string, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"customer_name":       "is required",
		"contact_email":       "must be a valid email",
		"items[0].unit_price": "must be at least 0",
		"items[1].quantity":   "must be greater than 0",
	}, got)
}

func TestFromValidation_NonValidatorError(t *testing.T) {
	appErr := FromValidation(errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "unexpected EOF", appErr.Message)
}

func TestGetAppError(t *testing.T) {
	assert.Equal(t, ErrNotFound, GetAppError(ErrNotFound))
	assert.True(t, IsAppError(NewConflictError("dup")))
	assert.False(t, IsAppError(errors.New("plain")))
}
