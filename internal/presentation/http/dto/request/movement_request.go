package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
)

// BatchQuantityRequest names a quantity of one batch
type BatchQuantityRequest struct {
	BatchID  uuid.UUID `json:"batch_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

// CreateTransferRequest represents a stock transfer request
type CreateTransferRequest struct {
	FromWarehouseID uuid.UUID              `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID              `json:"to_warehouse_id" binding:"required"`
	TransferDate    *time.Time             `json:"transfer_date"`
	Notes           string                 `json:"notes"`
	Items           []BatchQuantityRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateStockOutRequest represents a stock-out request
type CreateStockOutRequest struct {
	WarehouseID  uuid.UUID              `json:"warehouse_id" binding:"required"`
	Reason       enum.StockOutReason    `json:"reason" binding:"required"`
	StockOutDate *time.Time             `json:"stock_out_date"`
	Notes        string                 `json:"notes"`
	Items        []BatchQuantityRequest `json:"items" binding:"required,min=1,dive"`
}

// StatusFilterRequest filters documents by status
type StatusFilterRequest struct {
	Status  string `form:"status"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
