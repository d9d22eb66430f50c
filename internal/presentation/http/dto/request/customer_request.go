package request

import "github.com/shopspring/decimal"

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Phone       string          `json:"phone" binding:"omitempty,max=50"`
	Email       string          `json:"email" binding:"omitempty,email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Notes       string          `json:"notes"`
}

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	HasDue  *bool  `form:"has_due"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
