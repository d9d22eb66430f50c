package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a shop customer with an accounts-receivable balance.
// TotalDue is kept equal to TotalPurchases − TotalPaid by every ledger operation.
type Customer struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Phone          string          `gorm:"size:50;index" json:"phone,omitempty"`
	Email          string          `gorm:"size:255" json:"email,omitempty"`
	Address        string          `gorm:"type:text" json:"address,omitempty"`
	TotalPurchases decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_purchases"`
	TotalPaid      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_paid"`
	TotalDue       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_due"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit_limit"`
	IsActive       bool            `gorm:"not null" json:"is_active"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// ApplySale books a new sale against the customer
func (c *Customer) ApplySale(total decimal.Decimal) {
	c.TotalPurchases = c.TotalPurchases.Add(total)
	c.TotalDue = c.TotalDue.Add(total)
}

// ReverseSale undoes ApplySale for a cancelled sale that still owed due
func (c *Customer) ReverseSale(total, due decimal.Decimal) {
	c.TotalPurchases = c.TotalPurchases.Sub(total)
	c.TotalDue = c.TotalDue.Sub(due)
}

// ApplyPayment books money received
func (c *Customer) ApplyPayment(amount decimal.Decimal) {
	c.TotalPaid = c.TotalPaid.Add(amount)
	c.TotalDue = c.TotalDue.Sub(amount)
}

// ApplyRefund books returned goods worth refund, of which cashBack was paid
// back in cash. Only the credited part comes off TotalDue.
func (c *Customer) ApplyRefund(refund, cashBack decimal.Decimal) {
	c.TotalPurchases = c.TotalPurchases.Sub(refund)
	c.TotalPaid = c.TotalPaid.Sub(cashBack)
	c.TotalDue = c.TotalDue.Sub(refund.Sub(cashBack))
}

// OverCreditLimit is advisory; sales are never refused because of it
func (c *Customer) OverCreditLimit() bool {
	return c.CreditLimit.IsPositive() && c.TotalDue.GreaterThan(c.CreditLimit)
}

// Payment is money received from a customer, optionally against one sale.
// CustomerID is nil only for payments on walk-in sales.
type Payment struct {
	ID         uuid.UUID          `gorm:"type:char(36);primaryKey" json:"id"`
	CustomerID *uuid.UUID         `gorm:"type:char(36);index" json:"customer_id,omitempty"`
	SaleID     *uuid.UUID         `gorm:"type:char(36);index" json:"sale_id,omitempty"`
	Amount     decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method     enum.PaymentMethod `gorm:"size:30;not null" json:"method"`
	Reference  string             `gorm:"size:100" json:"reference,omitempty"`
	Notes      string             `gorm:"type:text" json:"notes,omitempty"`
	ReceivedBy *uuid.UUID         `gorm:"type:char(36)" json:"received_by,omitempty"`
	PaidAt     time.Time          `gorm:"not null;index" json:"paid_at"`
	CreatedAt  time.Time          `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}
