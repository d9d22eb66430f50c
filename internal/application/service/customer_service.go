package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer records and their running balances
type CustomerService struct {
	store repository.TxManager
	audit AuditSink
}

// NewCustomerService creates a new customer service
func NewCustomerService(store repository.TxManager, audit AuditSink) *CustomerService {
	return &CustomerService{store: store, audit: audit}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	Name        string          `validate:"required,max=255"`
	Phone       string          `validate:"max=50"`
	Email       string          `validate:"omitempty,email,max=255"`
	Address     string
	CreditLimit decimal.Decimal `validate:"gte=0"`
	Notes       string
}

// CreateCustomer creates a new customer with zero balances
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:        strings.TrimSpace(input.Name),
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		CreditLimit: input.CreditLimit.Round(2),
		IsActive:    true,
		Notes:       input.Notes,
	}
	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditCreate,
		Entity:   "Customer",
		ObjectID: customer.ID.String(),
		Summary:  customer.Name,
	})
	return customer, nil
}

// UpdateCustomer changes contact details. Balances are not editable.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = strings.TrimSpace(input.Name)
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address
	customer.CreditLimit = input.CreditLimit.Round(2)
	customer.Notes = input.Notes

	if err := s.store.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditUpdate,
		Entity:   "Customer",
		ObjectID: customer.ID.String(),
		Summary:  customer.Name,
	})
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.store.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ledger.NotFound("customer", id)
	}
	return customer, nil
}

// ListCustomers lists customers with optional search and due filter
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.store.Customers().List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, params.Pagination, total), nil
}

// CustomerPaymentInput is a payment from a customer, optionally against one of their sales
type CustomerPaymentInput struct {
	PaymentInput
	SaleID *uuid.UUID
}

// RecordPayment books money received from a customer. Linked payments follow
// the same rules as RecordSalePayment; unlinked ones only move the balances.
func (s *CustomerService) RecordPayment(ctx context.Context, customerID uuid.UUID, input *CustomerPaymentInput) (*entity.Payment, error) {
	if err := input.PaymentInput.validate(); err != nil {
		return nil, err
	}

	payment := input.payment(ActorFrom(ctx))
	var sale *entity.Sale
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return ledger.NotFound("customer", customerID)
		}

		if input.SaleID != nil {
			sale, err = applySalePayment(ctx, tx, *input.SaleID, &customerID, payment)
			return err
		}

		payment.CustomerID = &customerID
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}
		return updateCustomer(ctx, tx, customerID, func(c *entity.Customer) {
			c.ApplyPayment(payment.Amount)
		})
	})
	if err != nil {
		return nil, err
	}

	recordPaymentAudit(ctx, s.audit, payment, sale)
	return payment, nil
}

// ListPayments lists a customer's payments newest first
func (s *CustomerService) ListPayments(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	payments, total, err := s.store.Payments().ListByCustomer(ctx, customerID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(payments, params, total), nil
}

// RecalculateBalance rebuilds a customer's balances from completed sales,
// refunds and payments. The live path keeps them incrementally; this is for
// reconciling after manual data fixes.
func (s *CustomerService) RecalculateBalance(ctx context.Context, customerID uuid.UUID) (*entity.Customer, error) {
	var customer *entity.Customer
	var before entity.Customer
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		customer, err = tx.Customers().LockByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return ledger.NotFound("customer", customerID)
		}
		before = *customer

		sales, err := tx.Sales().SumCompletedTotals(ctx, customerID)
		if err != nil {
			return err
		}
		refunds, err := tx.Sales().SumRefunds(ctx, customerID)
		if err != nil {
			return err
		}
		paid, err := tx.Payments().SumByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		cashBack, err := tx.Sales().SumCashRefunds(ctx, customerID)
		if err != nil {
			return err
		}

		customer.TotalPurchases = sales.Sub(refunds)
		customer.TotalPaid = paid.Sub(cashBack)
		customer.TotalDue = customer.TotalPurchases.Sub(customer.TotalPaid)
		return tx.Customers().UpdateBalances(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	if !before.TotalDue.Equal(customer.TotalDue) || !before.TotalPurchases.Equal(customer.TotalPurchases) ||
		!before.TotalPaid.Equal(customer.TotalPaid) {
		s.audit.Record(ctx, AuditEvent{
			Action:   enum.AuditUpdate,
			Entity:   "Customer",
			ObjectID: customer.ID.String(),
			Summary:  "Balance recalculated for " + customer.Name,
			Changes: map[string]interface{}{
				"total_purchases": map[string]decimal.Decimal{"old": before.TotalPurchases, "new": customer.TotalPurchases},
				"total_paid":      map[string]decimal.Decimal{"old": before.TotalPaid, "new": customer.TotalPaid},
				"total_due":       map[string]decimal.Decimal{"old": before.TotalDue, "new": customer.TotalDue},
			},
		})
	}
	return customer, nil
}
