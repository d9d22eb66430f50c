package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiveBatchRequest represents stock received into a warehouse
type ReceiveBatchRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID  uuid.UUID       `json:"warehouse_id" binding:"required"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	PurchaseDate *time.Time      `json:"purchase_date"`
	Supplier     string          `json:"supplier" binding:"omitempty,max=255"`
	Notes        string          `json:"notes"`
}

// PurchaseItemRequest is one line of a purchase
type PurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest represents a purchase creation request
type CreatePurchaseRequest struct {
	WarehouseID  uuid.UUID             `json:"warehouse_id" binding:"required"`
	Supplier     string                `json:"supplier" binding:"omitempty,max=255"`
	PurchaseDate *time.Time            `json:"purchase_date"`
	Notes        string                `json:"notes"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}
