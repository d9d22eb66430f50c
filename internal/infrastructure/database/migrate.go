package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Catalog
		&entity.Category{},
		&entity.Brand{},
		&entity.Product{},
		&entity.Warehouse{},

		// Stock
		&entity.Batch{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.StockTransfer{},
		&entity.StockTransferItem{},
		&entity.StockOut{},
		&entity.StockOutItem{},

		// Sales
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SaleReturn{},
		&entity.SaleReturnItem{},
		&entity.Payment{},

		// System
		&entity.DocumentSequence{},
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultData makes sure the shop floor warehouse exists
func SeedDefaultData(db *gorm.DB, logg *logrus.Logger) error {
	var shop entity.Warehouse
	err := db.Where("is_shop = ?", true).First(&shop).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	shop = entity.Warehouse{Name: "Shop", Code: "SHOP", IsShop: true, IsActive: true}
	if err := db.Create(&shop).Error; err != nil {
		return fmt.Errorf("failed to seed shop warehouse: %w", err)
	}
	logg.WithField("warehouse_id", shop.ID).Info("Seeded default shop warehouse")
	return nil
}
