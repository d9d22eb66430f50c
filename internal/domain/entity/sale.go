package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents a point-of-sale invoice. CustomerID is nil for walk-in sales.
type Sale struct {
	ID             uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	InvoiceNumber  string              `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID     *uuid.UUID          `gorm:"type:char(36);index" json:"customer_id,omitempty"`
	SaleDate       time.Time           `gorm:"not null;index" json:"sale_date"`
	Status         enum.DocumentStatus `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus  enum.PaymentStatus  `gorm:"size:20;not null;index" json:"payment_status"`
	Subtotal       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	PaidAmount     decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	ReturnedAmount decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"returned_amount"`
	TotalCost      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0" json:"total_cost"`
	Notes          string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy      *uuid.UUID          `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON adds the derived net, due and profit amounts
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		NetAmount decimal.Decimal `json:"net_amount"`
		DueAmount decimal.Decimal `json:"due_amount"`
		Profit    decimal.Decimal `json:"profit"`
	}{
		Alias:     Alias(s),
		NetAmount: s.NetAmount(),
		DueAmount: s.DueAmount(),
		Profit:    s.Profit(),
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// NetAmount is what the customer owes for the goods they kept
func (s *Sale) NetAmount() decimal.Decimal {
	return s.TotalAmount.Sub(s.ReturnedAmount)
}

// DueAmount is net_amount − paid_amount
func (s *Sale) DueAmount() decimal.Decimal {
	return ledger.DueAmount(s.NetAmount(), s.PaidAmount)
}

// Profit is total_amount − total_cost at the time of sale; invoice discount is
// already inside total_amount and returns are not netted out
func (s *Sale) Profit() decimal.Decimal {
	return s.TotalAmount.Sub(s.TotalCost)
}

// RefreshPaymentStatus recomputes PaymentStatus from the current amounts
func (s *Sale) RefreshPaymentStatus() {
	s.PaymentStatus = ledger.PaymentStatusFor(s.PaidAmount, s.NetAmount())
}

// ApplyReturn books refund against the sale. The part that covers what is
// still due is credited; the rest is cash paid back and lowers PaidAmount.
func (s *Sale) ApplyReturn(refund decimal.Decimal) (credited, cashBack decimal.Decimal) {
	credited = decimal.Min(refund, decimal.Max(s.DueAmount(), decimal.Zero))
	cashBack = refund.Sub(credited)
	s.ReturnedAmount = s.ReturnedAmount.Add(refund)
	s.PaidAmount = s.PaidAmount.Sub(cashBack)
	s.RefreshPaymentStatus()
	return credited, cashBack
}

// SaleItem is one invoice line. Regular lines carry ProductID and BatchID;
// custom lines carry only CustomDescription and have zero cost.
type SaleItem struct {
	ID                uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	SaleID            uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_id"`
	ProductID         *uuid.UUID      `gorm:"type:char(36);index" json:"product_id,omitempty"`
	BatchID           *uuid.UUID      `gorm:"type:char(36);index" json:"batch_id,omitempty"`
	IsCustom          bool            `gorm:"not null" json:"is_custom"`
	CustomDescription string          `gorm:"size:255" json:"custom_description,omitempty"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	ReturnedQuantity  int             `gorm:"not null;default:0" json:"returned_quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost_price"`
	Discount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	TotalCost         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_cost"`
	CreatedAt         time.Time       `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Batch   *Batch   `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}

func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

func (SaleItem) TableName() string {
	return "sale_items"
}

// Line converts the stored item back into its line variant
func (si *SaleItem) Line() ledger.SaleLine {
	amounts := ledger.LineAmounts{
		Quantity:  si.Quantity,
		UnitPrice: si.UnitPrice,
		Discount:  si.Discount,
	}
	if si.IsCustom || si.ProductID == nil || si.BatchID == nil {
		return ledger.CustomLine{Description: si.CustomDescription, LineAmounts: amounts}
	}
	return ledger.RegularLine{ProductID: *si.ProductID, BatchID: *si.BatchID, LineAmounts: amounts}
}

// ReturnableQuantity is how many units can still be brought back
func (si *SaleItem) ReturnableQuantity() int {
	return si.Quantity - si.ReturnedQuantity
}

// SaleReturn records items a customer brought back
type SaleReturn struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	ReturnNumber string          `gorm:"size:50;uniqueIndex;not null" json:"return_number"`
	SaleID       uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_id"`
	ReturnDate   time.Time       `gorm:"not null" json:"return_date"`
	Reason       string          `gorm:"type:text" json:"reason,omitempty"`
	RefundAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"refund_amount"`
	// CashRefund is the part of RefundAmount handed back because the sale was
	// already paid beyond its new net amount
	CashRefund decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cash_refund"`
	CreatedBy  *uuid.UUID      `gorm:"type:char(36)" json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`

	Items []SaleReturnItem `gorm:"foreignKey:SaleReturnID" json:"items,omitempty"`
}

func (r *SaleReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (SaleReturn) TableName() string {
	return "sale_returns"
}

// SaleReturnItem is one returned sale line
type SaleReturnItem struct {
	ID           uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	SaleReturnID uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_return_id"`
	SaleItemID   uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_item_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	RefundAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"refund_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (ri *SaleReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

func (SaleReturnItem) TableName() string {
	return "sale_return_items"
}
