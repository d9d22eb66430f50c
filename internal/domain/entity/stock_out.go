package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockOut removes stock for reasons other than a sale (damage, loss, samples...).
// TotalValue and CompletedDate stay on the record after a completed stock-out is cancelled.
type StockOut struct {
	ID             uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	StockOutNumber string              `gorm:"size:50;uniqueIndex;not null" json:"stock_out_number"`
	WarehouseID    uuid.UUID           `gorm:"type:char(36);not null;index" json:"warehouse_id"`
	Reason         enum.StockOutReason `gorm:"size:30;not null" json:"reason"`
	Status         enum.DocumentStatus `gorm:"size:20;not null;index" json:"status"`
	TotalValue     decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"total_value"`
	StockOutDate   time.Time           `gorm:"not null" json:"stock_out_date"`
	CompletedDate  *time.Time          `json:"completed_date,omitempty"`
	Notes          string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy      *uuid.UUID          `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`

	// Relationships
	Warehouse *Warehouse     `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Items     []StockOutItem `gorm:"foreignKey:StockOutID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new stock-out
func (s *StockOut) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockOut model
func (StockOut) TableName() string {
	return "stock_outs"
}

// StockOutItem removes Quantity from one batch. CostPrice is unset until completion.
type StockOutItem struct {
	ID         uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	StockOutID uuid.UUID           `gorm:"type:char(36);not null;index" json:"stock_out_id"`
	BatchID    uuid.UUID           `gorm:"type:char(36);not null;index" json:"batch_id"`
	Quantity   int                 `gorm:"not null" json:"quantity"`
	CostPrice  decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"cost_price"`
	CreatedAt  time.Time           `json:"created_at"`

	Batch *Batch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

func (si *StockOutItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

func (StockOutItem) TableName() string {
	return "stock_out_items"
}

// TotalCost is quantity × snapshotted cost, zero before completion
func (si *StockOutItem) TotalCost() decimal.Decimal {
	if !si.CostPrice.Valid {
		return decimal.Zero
	}
	return si.CostPrice.Decimal.Mul(decimal.NewFromInt(int64(si.Quantity)))
}
