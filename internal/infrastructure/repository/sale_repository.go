package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(sale).Error
}

func (r *saleRepository) CreateItems(ctx context.Context, items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Batch").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).Scopes(ForUpdate).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("sale_id = ?", id).
		Order("created_at ASC").
		Find(&sale.Items).Error
	return &sale, err
}

func (r *saleRepository) UpdateTotals(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]interface{}{
			"subtotal":        sale.Subtotal,
			"discount_amount": sale.DiscountAmount,
			"tax_amount":      sale.TaxAmount,
			"total_amount":    sale.TotalAmount,
			"paid_amount":     sale.PaidAmount,
			"returned_amount": sale.ReturnedAmount,
			"total_cost":      sale.TotalCost,
			"status":          sale.Status,
			"payment_status":  sale.PaymentStatus,
		}).Error
}

func (r *saleRepository) UpdateItemReturned(ctx context.Context, itemID uuid.UUID, returned int) error {
	return r.db.WithContext(ctx).
		Model(&entity.SaleItem{}).
		Where("id = ?", itemID).
		Update("returned_quantity", returned).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(Search(params.Search, "invoice_number", "notes"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Pagination.Scope()).
		Preload("Customer").
		Order("sale_date DESC, invoice_number DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) LastNumber(ctx context.Context, prefix string) (string, error) {
	return lastNumber(r.db.WithContext(ctx), &entity.Sale{}, "invoice_number", prefix)
}

func (r *saleRepository) CreateReturn(ctx context.Context, ret *entity.SaleReturn) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

func (r *saleRepository) ListReturns(ctx context.Context, saleID uuid.UUID) ([]entity.SaleReturn, error) {
	var returns []entity.SaleReturn
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("return_date ASC, return_number ASC").
		Find(&returns).Error
	return returns, err
}

func (r *saleRepository) LastReturnNumber(ctx context.Context, prefix string) (string, error) {
	return lastNumber(r.db.WithContext(ctx), &entity.SaleReturn{}, "return_number", prefix)
}

func (r *saleRepository) SumCompletedTotals(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Where("customer_id = ? AND status = ?", customerID, enum.StatusCompleted)
	return sumDecimal(query, "SUM(total_amount)")
}

func (r *saleRepository) SumRefunds(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.SaleReturn{}).
		Joins("JOIN sales ON sales.id = sale_returns.sale_id").
		Where("sales.customer_id = ? AND sales.status = ?", customerID, enum.StatusCompleted)
	return sumDecimal(query, "SUM(sale_returns.refund_amount)")
}

func (r *saleRepository) SumCashRefunds(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.SaleReturn{}).
		Joins("JOIN sales ON sales.id = sale_returns.sale_id").
		Where("sales.customer_id = ? AND sales.status = ?", customerID, enum.StatusCompleted)
	return sumDecimal(query, "SUM(sale_returns.cash_refund)")
}

func (r *saleRepository) SumSaleCashRefunds(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&entity.SaleReturn{}).Where("sale_id = ?", saleID)
	return sumDecimal(query, "SUM(cash_refund)")
}
