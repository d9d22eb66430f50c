package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(purchase).Error
}

func (r *purchaseRepository) CreateItems(ctx context.Context, items []entity.PurchaseItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *purchaseRepository) UpdateTotal(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).
		Model(&entity.Purchase{}).
		Where("id = ?", purchase.ID).
		Update("total_amount", purchase.TotalAmount).Error
}

func (r *purchaseRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Batch").
		Preload("Items.Product").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Purchase{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Scope()).
		Order("purchase_date DESC, purchase_number DESC").
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) LastNumber(ctx context.Context, prefix string) (string, error) {
	return lastNumber(r.db.WithContext(ctx), &entity.Purchase{}, "purchase_number", prefix)
}
