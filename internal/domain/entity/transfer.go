package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockTransfer moves batch quantities from one warehouse to another.
// Nothing moves until the transfer is completed.
type StockTransfer struct {
	ID              uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	TransferNumber  string              `gorm:"size:50;uniqueIndex;not null" json:"transfer_number"`
	FromWarehouseID uuid.UUID           `gorm:"type:char(36);not null;index" json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID           `gorm:"type:char(36);not null;index" json:"to_warehouse_id"`
	Status          enum.DocumentStatus `gorm:"size:20;not null;index" json:"status"`
	TransferDate    time.Time           `gorm:"not null" json:"transfer_date"`
	CompletedDate   *time.Time          `json:"completed_date,omitempty"`
	Notes           string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       *uuid.UUID          `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	// Relationships
	FromWarehouse *Warehouse          `gorm:"foreignKey:FromWarehouseID" json:"from_warehouse,omitempty"`
	ToWarehouse   *Warehouse          `gorm:"foreignKey:ToWarehouseID" json:"to_warehouse,omitempty"`
	Items         []StockTransferItem `gorm:"foreignKey:TransferID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transfer
func (t *StockTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransfer model
func (StockTransfer) TableName() string {
	return "stock_transfers"
}

// StockTransferItem moves Quantity out of SourceBatch. DestinationBatchID is
// set on completion to the batch that received the stock.
type StockTransferItem struct {
	ID                 uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	TransferID         uuid.UUID  `gorm:"type:char(36);not null;index" json:"transfer_id"`
	SourceBatchID      uuid.UUID  `gorm:"type:char(36);not null;index" json:"source_batch_id"`
	DestinationBatchID *uuid.UUID `gorm:"type:char(36);index" json:"destination_batch_id,omitempty"`
	Quantity           int        `gorm:"not null" json:"quantity"`
	CreatedAt          time.Time  `json:"created_at"`

	SourceBatch      *Batch `gorm:"foreignKey:SourceBatchID" json:"source_batch,omitempty"`
	DestinationBatch *Batch `gorm:"foreignKey:DestinationBatchID" json:"destination_batch,omitempty"`
}

func (ti *StockTransferItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

func (StockTransferItem) TableName() string {
	return "stock_transfer_items"
}
