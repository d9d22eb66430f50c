package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleService handles checkout, cancellation, payments and returns
type SaleService struct {
	store   repository.TxManager
	numbers *NumberGenerator
	locker  repository.Locker
	audit   AuditSink
}

// NewSaleService creates a new sale service
func NewSaleService(store repository.TxManager, numbers *NumberGenerator, locker repository.Locker, audit AuditSink) *SaleService {
	return &SaleService{
		store:   store,
		numbers: numbers,
		locker:  locker,
		audit:   audit,
	}
}

// SaleLineInput is one requested line. A line naming a batch sells from it;
// a line without one is a custom line and needs a description.
type SaleLineInput struct {
	ProductID   *uuid.UUID
	BatchID     *uuid.UUID
	Description string          `validate:"max=255"`
	Quantity    int             `validate:"gt=0"`
	UnitPrice   decimal.Decimal `validate:"gte=0"`
	Discount    decimal.Decimal `validate:"gte=0"`
}

func (l SaleLineInput) toLine(i int) (ledger.SaleLine, error) {
	amounts := ledger.LineAmounts{
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice.Round(2),
		Discount:  l.Discount.Round(2),
	}
	if err := amounts.Validate(); err != nil {
		return nil, err
	}

	if l.BatchID != nil {
		if l.ProductID == nil {
			return nil, ledger.Invalid(fmt.Sprintf("items[%d].product_id", i), "required when batch_id is set")
		}
		return ledger.RegularLine{ProductID: *l.ProductID, BatchID: *l.BatchID, LineAmounts: amounts}, nil
	}
	if l.ProductID != nil {
		return nil, ledger.Invalid(fmt.Sprintf("items[%d].batch_id", i), "required when product_id is set")
	}
	if strings.TrimSpace(l.Description) == "" {
		return nil, ledger.Invalid(fmt.Sprintf("items[%d].description", i), "required for custom lines")
	}
	return ledger.CustomLine{Description: strings.TrimSpace(l.Description), LineAmounts: amounts}, nil
}

// CreateSaleInput represents a checkout
type CreateSaleInput struct {
	CustomerID     *uuid.UUID
	SaleDate       *time.Time
	DiscountAmount decimal.Decimal `validate:"gte=0"`
	TaxAmount      decimal.Decimal `validate:"gte=0"`
	Notes          string
	Items          []SaleLineInput `validate:"required,min=1,dive"`
}

// CreateSale sells the requested lines in one transaction. Either every
// line is booked or nothing is.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	lines := make([]ledger.SaleLine, len(input.Items))
	var batchIDs []uuid.UUID
	for i, item := range input.Items {
		line, err := item.toLine(i)
		if err != nil {
			return nil, err
		}
		lines[i] = line
		if regular, ok := line.(ledger.RegularLine); ok {
			batchIDs = append(batchIDs, regular.BatchID)
		}
	}

	actor := ActorFrom(ctx)
	var sale *entity.Sale
	err := withBatchLocks(ctx, s.locker, batchIDs, func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			if input.CustomerID != nil {
				customer, err := tx.Customers().GetByID(ctx, *input.CustomerID)
				if err != nil {
					return err
				}
				if customer == nil {
					return ledger.NotFound("customer", *input.CustomerID)
				}
			}

			number, err := s.numbers.Next(ctx, tx, ledger.PrefixSale)
			if err != nil {
				return err
			}
			sale = &entity.Sale{
				InvoiceNumber: number,
				CustomerID:    input.CustomerID,
				SaleDate:      dateOrNow(input.SaleDate),
				Status:        enum.StatusCompleted,
				PaymentStatus: enum.PaymentStatusUnpaid,
				Notes:         input.Notes,
				CreatedBy:     actor.ID,
			}
			if err := tx.Sales().Create(ctx, sale); err != nil {
				return err
			}

			batches, err := tx.Batches().LockByIDs(ctx, batchIDs)
			if err != nil {
				return err
			}

			items := make([]entity.SaleItem, 0, len(lines))
			productIDs := make([]uuid.UUID, 0, len(lines))
			subtotal := decimal.Zero
			totalCost := decimal.Zero

			for _, line := range lines {
				amounts := line.Amounts()
				item := entity.SaleItem{
					SaleID:     sale.ID,
					Quantity:   amounts.Quantity,
					UnitPrice:  amounts.UnitPrice,
					Discount:   amounts.Discount,
					TotalPrice: amounts.Total(),
				}

				switch l := line.(type) {
				case ledger.RegularLine:
					batch, ok := batches[l.BatchID]
					if !ok {
						return ledger.NotFound("batch", l.BatchID)
					}
					if batch.ProductID != l.ProductID {
						return ledger.InvalidState("batch", batch.ID, "", "sell product "+l.ProductID.String()+" from")
					}
					if err := decrementBatch(ctx, tx, batch, amounts.Quantity); err != nil {
						return err
					}
					productID, batchID := l.ProductID, l.BatchID
					item.ProductID = &productID
					item.BatchID = &batchID
					item.CostPrice = batch.BuyPrice
					item.TotalCost = batch.BuyPrice.Mul(decimal.NewFromInt(int64(amounts.Quantity)))
					productIDs = append(productIDs, l.ProductID)
				case ledger.CustomLine:
					item.IsCustom = true
					item.CustomDescription = l.Description
				}

				subtotal = subtotal.Add(item.TotalPrice)
				totalCost = totalCost.Add(item.TotalCost)
				items = append(items, item)
			}

			sale.Subtotal = subtotal
			sale.DiscountAmount = input.DiscountAmount.Round(2)
			sale.TaxAmount = input.TaxAmount.Round(2)
			sale.TotalAmount = subtotal.Sub(sale.DiscountAmount).Add(sale.TaxAmount)
			sale.TotalCost = totalCost
			if sale.TotalAmount.IsNegative() {
				return ledger.Invalid("discount_amount", "must not exceed the subtotal plus tax")
			}
			sale.RefreshPaymentStatus()

			if err := tx.Sales().CreateItems(ctx, items); err != nil {
				return err
			}
			if err := tx.Sales().UpdateTotals(ctx, sale); err != nil {
				return err
			}
			sale.Items = items

			if err := tx.Products().RecalculateTotalStock(ctx, productIDs...); err != nil {
				return err
			}

			if sale.CustomerID != nil {
				return updateCustomer(ctx, tx, *sale.CustomerID, func(c *entity.Customer) {
					c.ApplySale(sale.TotalAmount)
				})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditSale,
		Entity:   "Sale",
		ObjectID: sale.ID.String(),
		Summary:  sale.InvoiceNumber,
		Changes: map[string]interface{}{
			"total_amount": sale.TotalAmount,
			"total_cost":   sale.TotalCost,
			"lines":        len(sale.Items),
			"customer_id":  sale.CustomerID,
		},
	})
	return sale, nil
}

// CancelSale voids an unpaid sale and puts its stock back
func (s *SaleService) CancelSale(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	current, err := s.store.Sales().GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ledger.NotFound("sale", saleID)
	}

	var sale *entity.Sale
	err = withBatchLocks(ctx, s.locker, itemBatchIDs(current.Items), func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			var err error
			sale, err = tx.Sales().LockByID(ctx, saleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return ledger.NotFound("sale", saleID)
			}
			if sale.Status == enum.StatusCancelled {
				return ledger.AlreadyCancelled("sale", saleID)
			}
			if sale.PaidAmount.IsPositive() {
				return ledger.InvalidState("sale", saleID, string(sale.PaymentStatus), "cancel")
			}
			for _, item := range sale.Items {
				if item.ReturnedQuantity > 0 {
					return ledger.InvalidState("sale", saleID, "returned", "cancel")
				}
			}

			if err := restoreSaleItems(ctx, tx, sale.Items); err != nil {
				return err
			}

			if sale.CustomerID != nil {
				total, due := sale.TotalAmount, sale.DueAmount()
				if err := updateCustomer(ctx, tx, *sale.CustomerID, func(c *entity.Customer) {
					c.ReverseSale(total, due)
				}); err != nil {
					return err
				}
			}

			sale.Status = enum.StatusCancelled
			return tx.Sales().UpdateTotals(ctx, sale)
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditSale,
		Entity:   "Sale",
		ObjectID: sale.ID.String(),
		Summary:  "Cancelled " + sale.InvoiceNumber,
		Changes: map[string]interface{}{
			"status": enum.StatusCancelled,
		},
	})
	return sale, nil
}

// PaymentInput is money received
type PaymentInput struct {
	Amount    decimal.Decimal    `validate:"gt=0"`
	Method    enum.PaymentMethod `validate:"required"`
	Reference string             `validate:"max=100"`
	Notes     string
	PaidAt    *time.Time
}

func (in *PaymentInput) validate() error {
	if err := validateInput(in); err != nil {
		return err
	}
	if !in.Method.Valid() {
		return ledger.Invalid("method", "unknown payment method "+string(in.Method))
	}
	if in.Amount.Round(2).LessThanOrEqual(decimal.Zero) {
		return ledger.Invalid("amount", "must be greater than zero")
	}
	return nil
}

func (in *PaymentInput) payment(actor Actor) *entity.Payment {
	return &entity.Payment{
		Amount:     in.Amount.Round(2),
		Method:     in.Method,
		Reference:  in.Reference,
		Notes:      in.Notes,
		ReceivedBy: actor.ID,
		PaidAt:     dateOrNow(in.PaidAt),
	}
}

// SalePaymentResult is a recorded payment together with the updated sale
type SalePaymentResult struct {
	Sale    *entity.Sale    `json:"sale"`
	Payment *entity.Payment `json:"payment"`
}

// RecordSalePayment books a payment against one sale
func (s *SaleService) RecordSalePayment(ctx context.Context, saleID uuid.UUID, input *PaymentInput) (*SalePaymentResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	payment := input.payment(ActorFrom(ctx))
	var sale *entity.Sale
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		sale, err = applySalePayment(ctx, tx, saleID, nil, payment)
		return err
	})
	if err != nil {
		return nil, err
	}

	recordPaymentAudit(ctx, s.audit, payment, sale)
	return &SalePaymentResult{Sale: sale, Payment: payment}, nil
}

// applySalePayment locks the sale, checks the amount against what is due and
// books payment. When customerID is set the sale must belong to that customer.
func applySalePayment(ctx context.Context, tx repository.Store, saleID uuid.UUID, customerID *uuid.UUID, payment *entity.Payment) (*entity.Sale, error) {
	sale, err := tx.Sales().LockByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ledger.NotFound("sale", saleID)
	}
	if sale.Status == enum.StatusCancelled {
		return nil, ledger.InvalidState("sale", saleID, string(sale.Status), "record payment on")
	}
	if customerID != nil && (sale.CustomerID == nil || *sale.CustomerID != *customerID) {
		return nil, ledger.InvalidState("sale", saleID, "", "apply a payment from customer "+customerID.String()+" to")
	}

	due := sale.DueAmount()
	if payment.Amount.GreaterThan(due) {
		return nil, &ledger.OverpaymentError{SaleID: saleID, Amount: payment.Amount, Due: due}
	}

	payment.SaleID = &sale.ID
	payment.CustomerID = sale.CustomerID
	if err := tx.Payments().Create(ctx, payment); err != nil {
		return nil, err
	}

	sale.PaidAmount = sale.PaidAmount.Add(payment.Amount)
	sale.RefreshPaymentStatus()
	if err := tx.Sales().UpdateTotals(ctx, sale); err != nil {
		return nil, err
	}

	if sale.CustomerID != nil {
		err := updateCustomer(ctx, tx, *sale.CustomerID, func(c *entity.Customer) {
			c.ApplyPayment(payment.Amount)
		})
		if err != nil {
			return nil, err
		}
	}
	return sale, nil
}

// RecalculatePaidAmount rebuilds a sale's paid amount from its payment rows
// less cash refunded on its returns, and re-derives the payment status. A
// correction can move the status backwards. Customer balances are left to
// CustomerService.RecalculateBalance.
func (s *SaleService) RecalculatePaidAmount(ctx context.Context, saleID uuid.UUID) (*entity.Sale, error) {
	var sale *entity.Sale
	var before entity.Sale
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		sale, err = tx.Sales().LockByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ledger.NotFound("sale", saleID)
		}
		before = *sale

		paid, err := tx.Payments().SumBySale(ctx, saleID)
		if err != nil {
			return err
		}
		cashBack, err := tx.Sales().SumSaleCashRefunds(ctx, saleID)
		if err != nil {
			return err
		}

		sale.PaidAmount = paid.Sub(cashBack)
		sale.RefreshPaymentStatus()
		if sale.PaidAmount.Equal(before.PaidAmount) && sale.PaymentStatus == before.PaymentStatus {
			return nil
		}
		return tx.Sales().UpdateTotals(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	if !sale.PaidAmount.Equal(before.PaidAmount) || sale.PaymentStatus != before.PaymentStatus {
		s.audit.Record(ctx, AuditEvent{
			Action:   enum.AuditUpdate,
			Entity:   "Sale",
			ObjectID: sale.ID.String(),
			Summary:  "Paid amount recalculated for " + sale.InvoiceNumber,
			Changes: map[string]interface{}{
				"paid_amount":    map[string]decimal.Decimal{"old": before.PaidAmount, "new": sale.PaidAmount},
				"payment_status": map[string]enum.PaymentStatus{"old": before.PaymentStatus, "new": sale.PaymentStatus},
			},
		})
	}
	return sale, nil
}

// ReturnLineInput returns quantity units of one sale item
type ReturnLineInput struct {
	SaleItemID uuid.UUID `validate:"required"`
	Quantity   int       `validate:"gt=0"`
}

// CreateReturnInput represents goods brought back against a sale
type CreateReturnInput struct {
	Reason     string
	ReturnDate *time.Time
	Items      []ReturnLineInput `validate:"required,min=1,dive"`
}

// CreateReturn takes items back into stock and lowers what the sale is worth.
// Money already paid beyond the new net amount is recorded as a cash refund.
func (s *SaleService) CreateReturn(ctx context.Context, saleID uuid.UUID, input *CreateReturnInput) (*entity.SaleReturn, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.store.Sales().GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ledger.NotFound("sale", saleID)
	}

	actor := ActorFrom(ctx)
	var ret *entity.SaleReturn
	err = withBatchLocks(ctx, s.locker, itemBatchIDs(current.Items), func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			sale, err := tx.Sales().LockByID(ctx, saleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return ledger.NotFound("sale", saleID)
			}
			if sale.Status != enum.StatusCompleted {
				return ledger.InvalidState("sale", saleID, string(sale.Status), "return items from")
			}

			byID := make(map[uuid.UUID]*entity.SaleItem, len(sale.Items))
			for i := range sale.Items {
				byID[sale.Items[i].ID] = &sale.Items[i]
			}

			requested := make(map[uuid.UUID]int, len(input.Items))
			for i, line := range input.Items {
				item, ok := byID[line.SaleItemID]
				if !ok {
					return ledger.NotFound("sale item", line.SaleItemID)
				}
				requested[item.ID] += line.Quantity
				if requested[item.ID] > item.ReturnableQuantity() {
					return ledger.Invalid(fmt.Sprintf("items[%d].quantity", i),
						fmt.Sprintf("exceeds returnable quantity %d", item.ReturnableQuantity()))
				}
			}

			number, err := s.numbers.Next(ctx, tx, ledger.PrefixReturn)
			if err != nil {
				return err
			}
			ret = &entity.SaleReturn{
				ReturnNumber: number,
				SaleID:       sale.ID,
				ReturnDate:   dateOrNow(input.ReturnDate),
				Reason:       input.Reason,
				CreatedBy:    actor.ID,
			}

			restocked := make([]entity.SaleItem, 0, len(requested))
			refund := decimal.Zero
			for _, line := range input.Items {
				item := byID[line.SaleItemID]
				amount := lineRefund(item, line.Quantity)
				refund = refund.Add(amount)
				ret.Items = append(ret.Items, entity.SaleReturnItem{
					SaleItemID:   item.ID,
					Quantity:     line.Quantity,
					RefundAmount: amount,
				})
				if !item.IsCustom && item.BatchID != nil {
					restocked = append(restocked, entity.SaleItem{
						ProductID: item.ProductID,
						BatchID:   item.BatchID,
						Quantity:  line.Quantity,
					})
				}
			}
			ret.RefundAmount = refund
			_, cashBack := sale.ApplyReturn(refund)
			ret.CashRefund = cashBack

			if err := restoreSaleItems(ctx, tx, restocked); err != nil {
				return err
			}
			for id, qty := range requested {
				item := byID[id]
				item.ReturnedQuantity += qty
				if err := tx.Sales().UpdateItemReturned(ctx, id, item.ReturnedQuantity); err != nil {
					return err
				}
			}
			if err := tx.Sales().CreateReturn(ctx, ret); err != nil {
				return err
			}
			if err := tx.Sales().UpdateTotals(ctx, sale); err != nil {
				return err
			}

			if sale.CustomerID != nil {
				return updateCustomer(ctx, tx, *sale.CustomerID, func(c *entity.Customer) {
					c.ApplyRefund(refund, cashBack)
				})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditUpdate,
		Entity:   "Sale",
		ObjectID: saleID.String(),
		Summary:  "Return " + ret.ReturnNumber,
		Changes: map[string]interface{}{
			"return_number": ret.ReturnNumber,
			"refund_amount": ret.RefundAmount,
			"cash_refund":   ret.CashRefund,
		},
	})
	return ret, nil
}

// lineRefund is qty × unit price less the line discount pro rata
func lineRefund(item *entity.SaleItem, qty int) decimal.Decimal {
	q := decimal.NewFromInt(int64(qty))
	gross := item.UnitPrice.Mul(q)
	if item.Quantity == 0 || item.Discount.IsZero() {
		return gross.Round(2)
	}
	share := item.Discount.Mul(q).Div(decimal.NewFromInt(int64(item.Quantity)))
	return gross.Sub(share).Round(2)
}

// GetSale retrieves a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.store.Sales().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ledger.NotFound("sale", id)
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.store.Sales().List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, params.Pagination, total), nil
}

// ListSalePayments lists the payments booked against a sale
func (s *SaleService) ListSalePayments(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	if _, err := s.GetSale(ctx, saleID); err != nil {
		return nil, err
	}
	return s.store.Payments().ListBySale(ctx, saleID)
}

// ListReturns lists the returns made against a sale
func (s *SaleService) ListReturns(ctx context.Context, saleID uuid.UUID) ([]entity.SaleReturn, error) {
	if _, err := s.GetSale(ctx, saleID); err != nil {
		return nil, err
	}
	return s.store.Sales().ListReturns(ctx, saleID)
}

// decrementBatch takes qty out of a locked batch, failing with InsufficientStock
func decrementBatch(ctx context.Context, tx repository.Store, batch *entity.Batch, qty int) error {
	if qty > batch.Quantity {
		return &ledger.InsufficientStockError{
			BatchID:     batch.ID,
			BatchNumber: batch.BatchNumber,
			Requested:   qty,
			Available:   batch.Quantity,
		}
	}
	ok, err := tx.Batches().Decrement(ctx, batch.ID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return &ledger.InsufficientStockError{
			BatchID:     batch.ID,
			BatchNumber: batch.BatchNumber,
			Requested:   qty,
			Available:   batch.Quantity,
		}
	}
	batch.Quantity -= qty
	return nil
}

// restoreSaleItems puts regular item quantities back into their batches and
// refreshes the affected product totals
func restoreSaleItems(ctx context.Context, tx repository.Store, items []entity.SaleItem) error {
	batchIDs := itemBatchIDs(items)
	if len(batchIDs) == 0 {
		return nil
	}
	batches, err := tx.Batches().LockByIDs(ctx, batchIDs)
	if err != nil {
		return err
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.IsCustom || item.BatchID == nil {
			continue
		}
		batch, ok := batches[*item.BatchID]
		if !ok {
			return ledger.NotFound("batch", *item.BatchID)
		}
		qty := item.Quantity - item.ReturnedQuantity
		if qty <= 0 {
			continue
		}
		if err := tx.Batches().Increment(ctx, batch.ID, qty); err != nil {
			return err
		}
		productIDs = append(productIDs, batch.ProductID)
	}
	return tx.Products().RecalculateTotalStock(ctx, productIDs...)
}

func itemBatchIDs(items []entity.SaleItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if !item.IsCustom && item.BatchID != nil {
			ids = append(ids, *item.BatchID)
		}
	}
	return ids
}

// updateCustomer locks the customer row, applies fn and writes the balances back
func updateCustomer(ctx context.Context, tx repository.Store, id uuid.UUID, fn func(c *entity.Customer)) error {
	customer, err := tx.Customers().LockByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return ledger.NotFound("customer", id)
	}
	fn(customer)
	return tx.Customers().UpdateBalances(ctx, customer)
}

func recordPaymentAudit(ctx context.Context, audit AuditSink, payment *entity.Payment, sale *entity.Sale) {
	changes := map[string]interface{}{
		"amount": payment.Amount,
		"method": payment.Method,
	}
	summary := "Payment " + payment.Amount.StringFixed(2)
	if sale != nil {
		changes["sale_id"] = sale.ID
		changes["paid_amount"] = sale.PaidAmount
		changes["payment_status"] = sale.PaymentStatus
		summary += " on " + sale.InvoiceNumber
	}
	if payment.CustomerID != nil {
		changes["customer_id"] = *payment.CustomerID
	}
	audit.Record(ctx, AuditEvent{
		Action:   enum.AuditPayment,
		Entity:   "Payment",
		ObjectID: payment.ID.String(),
		Summary:  summary,
		Changes:  changes,
	})
}
