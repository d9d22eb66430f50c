package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase represents goods received from a supplier. Each line creates one batch.
type Purchase struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	PurchaseNumber string          `gorm:"size:50;uniqueIndex;not null" json:"purchase_number"`
	Supplier       string          `gorm:"size:255" json:"supplier,omitempty"`
	PurchaseDate   time.Time       `gorm:"not null" json:"purchase_date"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy      *uuid.UUID      `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relationships
	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem ties one purchase line to the batch it created
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:char(36);not null;index" json:"purchase_id"`
	BatchID    uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex" json:"batch_id"`
	ProductID  uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`

	// Relationships
	Batch   *Batch   `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}
