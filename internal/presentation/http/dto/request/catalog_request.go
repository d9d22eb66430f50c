package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest represents a product create or update request
type ProductRequest struct {
	CategoryID   *uuid.UUID      `json:"category_id"`
	BrandID      *uuid.UUID      `json:"brand_id"`
	SKU          string          `json:"sku" binding:"omitempty,max=100"`
	Name         string          `json:"name" binding:"required,max=255"`
	ModelNumber  string          `json:"model_number" binding:"omitempty,max=100"`
	Description  string          `json:"description"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	IsActive     *bool           `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	BrandID    string `form:"brand_id"`
	InStock    bool   `form:"in_stock"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CategoryRequest represents a category creation request
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// BrandRequest represents a brand creation request
type BrandRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Country string `json:"country" binding:"omitempty,max=100"`
}

// WarehouseRequest represents a warehouse creation request
type WarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Code    string `json:"code" binding:"required,max=50"`
	Address string `json:"address"`
	IsShop  bool   `json:"is_shop"`
}

// WarehouseStatusRequest activates or deactivates a warehouse
type WarehouseStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
