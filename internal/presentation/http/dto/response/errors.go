package response

import (
	"errors"
	"net/http"

	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/pkg/apperror"
)

// MapError converts service errors into an AppError carrying the HTTP status.
// Stock, state, money and contention errors are conflicts with the current
// state of the ledger (409); malformed input is 422.
func MapError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validation *ledger.ValidationError
	if errors.As(err, &validation) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: validation.Field, Message: validation.Reason},
		})
	}

	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return apperror.NewAppError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientStock),
		errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, ledger.ErrOverpayment):
		return apperror.NewAppError(http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		return apperror.NewConflictError("Resource already exists")
	case errors.Is(err, ledger.ErrBusy):
		return apperror.NewConflictError(ledger.ErrBusy.Error())
	}
	return apperror.ErrInternalServer
}
