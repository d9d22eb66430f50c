package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a clock or watch model in the catalog.
// TotalStock is a cache of the product's batch quantities, maintained by the ledger.
type Product struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	CategoryID   *uuid.UUID      `gorm:"type:char(36);index" json:"category_id,omitempty"`
	BrandID      *uuid.UUID      `gorm:"type:char(36);index" json:"brand_id,omitempty"`
	SKU          string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	ModelNumber  string          `gorm:"size:100" json:"model_number,omitempty"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"default_price"`
	TotalStock   int             `gorm:"not null;default:0" json:"total_stock"`
	IsActive     bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// DisplayName is the name shown on invoices
func (p *Product) DisplayName() string {
	if p.Brand != nil && p.Brand.Name != "" {
		return p.Brand.Name + " " + p.Name
	}
	return p.Name
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Brand represents a watch or clock manufacturer
type Brand struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string         `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Country   string         `gorm:"size:100" json:"country,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Brand) TableName() string {
	return "brands"
}
