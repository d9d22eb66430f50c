package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Batch is a received lot of one product in one warehouse at a fixed cost.
// BuyPrice and InitialQuantity never change after creation except when a
// transfer merges another lot of the same cost into it.
type Batch struct {
	ID              uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	BatchNumber     string          `gorm:"size:50;uniqueIndex;not null" json:"batch_number"`
	ProductID       uuid.UUID       `gorm:"type:char(36);not null;index:idx_batches_lookup,priority:1" json:"product_id"`
	WarehouseID     uuid.UUID       `gorm:"type:char(36);not null;index:idx_batches_lookup,priority:2" json:"warehouse_id"`
	BuyPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null;index:idx_batches_lookup,priority:3" json:"buy_price"`
	InitialQuantity int             `gorm:"not null" json:"initial_quantity"`
	Quantity        int             `gorm:"not null;check:quantity >= 0" json:"quantity"`
	PurchaseDate    time.Time       `gorm:"not null" json:"purchase_date"`
	Supplier        string          `gorm:"size:255" json:"supplier,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

// BeforeCreate generates a UUID before creating a new batch
func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}

// StockValue is the remaining quantity at cost
func (b *Batch) StockValue() decimal.Decimal {
	return b.BuyPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
}
