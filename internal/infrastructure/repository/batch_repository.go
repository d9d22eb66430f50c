package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *gorm.DB) domainRepo.BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *entity.Batch) error {
	return r.db.WithContext(ctx).Omit("Product", "Warehouse").Create(batch).Error
}

func (r *batchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Warehouse").
		First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &batch, err
}

func (r *batchRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Batch, error) {
	var batches []entity.Batch
	if len(ids) == 0 {
		return batches, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&batches).Error
	return batches, err
}

func (r *batchRepository) ListByProduct(ctx context.Context, productID uuid.UUID, inStockOnly bool) ([]entity.Batch, error) {
	var batches []entity.Batch
	query := r.db.WithContext(ctx).
		Preload("Warehouse").
		Where("product_id = ?", productID)
	if inStockOnly {
		query = query.Where("quantity > 0")
	}
	err := query.Order("purchase_date ASC, batch_number ASC").Find(&batches).Error
	return batches, err
}

// LockByIDs issues one SELECT ... FOR UPDATE per batch in ascending id order.
// A single IN query does not guarantee the order rows are locked in.
func (r *batchRepository) LockByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Batch, error) {
	locked := make(map[uuid.UUID]*entity.Batch, len(ids))
	for _, id := range ledger.SortedIDs(ids) {
		var batch entity.Batch
		err := r.db.WithContext(ctx).Scopes(ForUpdate).First(&batch, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[id] = &batch
	}
	return locked, nil
}

func (r *batchRepository) Decrement(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *batchRepository) Increment(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *batchRepository) Grow(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":         gorm.Expr("quantity + ?", qty),
			"initial_quantity": gorm.Expr("initial_quantity + ?", qty),
		}).Error
}

func (r *batchRepository) FindMergeTarget(ctx context.Context, productID, warehouseID uuid.UUID, buyPrice decimal.Decimal) (*entity.Batch, error) {
	var batch entity.Batch
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ? AND buy_price = ?", productID, warehouseID, buyPrice).
		Order("purchase_date ASC, batch_number ASC").
		First(&batch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &batch, err
}

func (r *batchRepository) LastNumber(ctx context.Context, prefix string) (string, error) {
	return lastNumber(r.db.WithContext(ctx), &entity.Batch{}, "batch_number", prefix)
}
