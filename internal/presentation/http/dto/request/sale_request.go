package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one checkout line. Lines without a batch are custom
// lines and need a description.
type SaleItemRequest struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	BatchID     *uuid.UUID      `json:"batch_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	CustomerID     *uuid.UUID        `json:"customer_id"`
	SaleDate       *time.Time        `json:"sale_date"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	TaxAmount      decimal.Decimal   `json:"tax_amount"`
	Notes          string            `json:"notes"`
	Items          []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	CustomerID    string `form:"customer_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// PaymentRequest represents money received
type PaymentRequest struct {
	Amount    decimal.Decimal    `json:"amount"`
	Method    enum.PaymentMethod `json:"method" binding:"required"`
	Reference string             `json:"reference" binding:"omitempty,max=100"`
	Notes     string             `json:"notes"`
	PaidAt    *time.Time         `json:"paid_at"`
}

// CustomerPaymentRequest is a payment from a customer, optionally for one sale
type CustomerPaymentRequest struct {
	PaymentRequest
	SaleID *uuid.UUID `json:"sale_id"`
}

// ReturnItemRequest returns part of one sale item
type ReturnItemRequest struct {
	SaleItemID uuid.UUID `json:"sale_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,gt=0"`
}

// CreateReturnRequest represents a sale return request
type CreateReturnRequest struct {
	Reason     string              `json:"reason"`
	ReturnDate *time.Time          `json:"return_date"`
	Items      []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}
