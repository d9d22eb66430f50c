package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new stock transfer repository
func NewTransferRepository(db *gorm.DB) domainRepo.TransferRepository {
	return &transferRepository{db: db}
}

// Create inserts the transfer and then its items. Callers run it inside a transaction.
func (r *transferRepository) Create(ctx context.Context, transfer *entity.StockTransfer) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(transfer).Error; err != nil {
		return err
	}
	if len(transfer.Items) == 0 {
		return nil
	}
	for i := range transfer.Items {
		transfer.Items[i].TransferID = transfer.ID
	}
	return db.Omit(clause.Associations).Create(&transfer.Items).Error
}

func (r *transferRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer entity.StockTransfer
	err := r.db.WithContext(ctx).
		Preload("FromWarehouse").
		Preload("ToWarehouse").
		Preload("Items").
		Preload("Items.SourceBatch").
		Preload("Items.DestinationBatch").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *transferRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer entity.StockTransfer
	err := r.db.WithContext(ctx).Scopes(ForUpdate).First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("transfer_id = ?", id).
		Order("created_at ASC").
		Find(&transfer.Items).Error
	return &transfer, err
}

func (r *transferRepository) UpdateStatus(ctx context.Context, transfer *entity.StockTransfer) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockTransfer{}).
		Where("id = ?", transfer.ID).
		Updates(map[string]interface{}{
			"status":         transfer.Status,
			"completed_date": transfer.CompletedDate,
		}).Error
}

func (r *transferRepository) SetDestination(ctx context.Context, itemID, batchID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockTransferItem{}).
		Where("id = ?", itemID).
		Update("destination_batch_id", batchID).Error
}

func (r *transferRepository) List(ctx context.Context, status *enum.DocumentStatus, params *pagination.PaginationParams) ([]entity.StockTransfer, int64, error) {
	var transfers []entity.StockTransfer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockTransfer{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Scope()).
		Preload("FromWarehouse").
		Preload("ToWarehouse").
		Order("transfer_date DESC, transfer_number DESC").
		Find(&transfers).Error

	return transfers, total, err
}

func (r *transferRepository) LastNumber(ctx context.Context, prefix string) (string, error) {
	return lastNumber(r.db.WithContext(ctx), &entity.StockTransfer{}, "transfer_number", prefix)
}

type stockOutRepository struct {
	db *gorm.DB
}

// NewStockOutRepository creates a new stock-out repository
func NewStockOutRepository(db *gorm.DB) domainRepo.StockOutRepository {
	return &stockOutRepository{db: db}
}

func (r *stockOutRepository) Create(ctx context.Context, stockOut *entity.StockOut) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(stockOut).Error; err != nil {
		return err
	}
	if len(stockOut.Items) == 0 {
		return nil
	}
	for i := range stockOut.Items {
		stockOut.Items[i].StockOutID = stockOut.ID
	}
	return db.Omit(clause.Associations).Create(&stockOut.Items).Error
}

func (r *stockOutRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.StockOut, error) {
	var stockOut entity.StockOut
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Preload("Items").
		Preload("Items.Batch").
		First(&stockOut, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stockOut, err
}

func (r *stockOutRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.StockOut, error) {
	var stockOut entity.StockOut
	err := r.db.WithContext(ctx).Scopes(ForUpdate).First(&stockOut, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("stock_out_id = ?", id).
		Order("created_at ASC").
		Find(&stockOut.Items).Error
	return &stockOut, err
}

func (r *stockOutRepository) UpdateStatus(ctx context.Context, stockOut *entity.StockOut) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockOut{}).
		Where("id = ?", stockOut.ID).
		Updates(map[string]interface{}{
			"status":         stockOut.Status,
			"total_value":    stockOut.TotalValue,
			"completed_date": stockOut.CompletedDate,
		}).Error
}

func (r *stockOutRepository) SetItemCost(ctx context.Context, item *entity.StockOutItem) error {
	return r.db.WithContext(ctx).
		Model(&entity.StockOutItem{}).
		Where("id = ?", item.ID).
		Update("cost_price", item.CostPrice).Error
}

func (r *stockOutRepository) List(ctx context.Context, status *enum.DocumentStatus, params *pagination.PaginationParams) ([]entity.StockOut, int64, error) {
	var stockOuts []entity.StockOut
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockOut{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Scope()).
		Preload("Warehouse").
		Order("stock_out_date DESC, stock_out_number DESC").
		Find(&stockOuts).Error

	return stockOuts, total, err
}

func (r *stockOutRepository) LastNumber(ctx context.Context, prefix string) (string, error) {
	return lastNumber(r.db.WithContext(ctx), &entity.StockOut{}, "stock_out_number", prefix)
}
