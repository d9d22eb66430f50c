package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error passes through", apperror.ErrForbidden, http.StatusForbidden},
		{"validation", ledger.Invalid("items[0].quantity", "must be greater than zero"), http.StatusUnprocessableEntity},
		{"not found", ledger.NotFound("sale", id), http.StatusNotFound},
		{"insufficient stock", &ledger.InsufficientStockError{BatchID: id, Requested: 2, Available: 1}, http.StatusConflict},
		{"invalid state", ledger.InvalidState("transfer", id, "completed", "cancel"), http.StatusConflict},
		{"already cancelled", ledger.AlreadyCancelled("sale", id), http.StatusConflict},
		{"overpayment", &ledger.OverpaymentError{SaleID: id}, http.StatusConflict},
		{"unique violation", fmt.Errorf("%w: duplicate", ledger.ErrConflict), http.StatusConflict},
		{"lock timeout", fmt.Errorf("%w: 55P03", ledger.ErrBusy), http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapError(tt.err).Code)
		})
	}
}

func TestMapError_ValidationCarriesField(t *testing.T) {
	appErr := MapError(ledger.Invalid("discount_amount", "must not exceed the subtotal plus tax"))
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "discount_amount", appErr.Errors[0].Field)
	assert.Equal(t, "must not exceed the subtotal plus tax", appErr.Errors[0].Message)
}

func TestMapError_InternalDetailsHidden(t *testing.T) {
	appErr := MapError(errors.New("pq: password authentication failed"))
	assert.Equal(t, apperror.ErrInternalServer.Message, appErr.Message)
}
