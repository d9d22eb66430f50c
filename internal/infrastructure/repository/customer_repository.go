package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Scopes(ForUpdate).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

// Update saves contact details. Balances only move through UpdateBalances.
func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).
		Omit("TotalPurchases", "TotalPaid", "TotalDue").
		Save(customer).Error
}

func (r *customerRepository) UpdateBalances(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"total_purchases": customer.TotalPurchases,
			"total_paid":      customer.TotalPaid,
			"total_due":       customer.TotalDue,
		}).Error
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Scopes(Search(params.Search, "name", "phone", "email"))

	if params.HasDue != nil {
		if *params.HasDue {
			query = query.Where("total_due > 0")
		} else {
			query = query.Where("total_due <= 0")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Pagination.Scope()).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{}).Where("customer_id = ?", customerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Scope()).
		Order("paid_at DESC").
		Find(&payments).Error

	return payments, total, err
}

func (r *paymentRepository) SumByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&entity.Payment{}).Where("customer_id = ?", customerID)
	return sumDecimal(query, "SUM(amount)")
}

func (r *paymentRepository) SumBySale(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&entity.Payment{}).Where("sale_id = ?", saleID)
	return sumDecimal(query, "SUM(amount)")
}
