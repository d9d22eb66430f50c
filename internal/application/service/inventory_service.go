package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InventoryService receives stock into batches and keeps product totals in line with them
type InventoryService struct {
	store   repository.TxManager
	numbers *NumberGenerator
	audit   AuditSink
}

// NewInventoryService creates a new inventory service
func NewInventoryService(store repository.TxManager, numbers *NumberGenerator, audit AuditSink) *InventoryService {
	return &InventoryService{
		store:   store,
		numbers: numbers,
		audit:   audit,
	}
}

// ReceiveBatchInput describes a lot arriving in a warehouse
type ReceiveBatchInput struct {
	ProductID    uuid.UUID       `validate:"required"`
	WarehouseID  uuid.UUID       `validate:"required"`
	BuyPrice     decimal.Decimal `validate:"gte=0"`
	Quantity     int             `validate:"gt=0"`
	PurchaseDate *time.Time
	Supplier     string `validate:"max=255"`
	Notes        string
}

// ReceiveBatch creates a batch with a generated number and full quantity
func (s *InventoryService) ReceiveBatch(ctx context.Context, input *ReceiveBatchInput) (*entity.Batch, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var batch *entity.Batch
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := requireReceivingWarehouse(ctx, tx, input.WarehouseID); err != nil {
			return err
		}
		if err := requireProduct(ctx, tx, input.ProductID); err != nil {
			return err
		}

		number, err := s.numbers.Next(ctx, tx, ledger.PrefixBatch)
		if err != nil {
			return err
		}
		batch = &entity.Batch{
			BatchNumber:     number,
			ProductID:       input.ProductID,
			WarehouseID:     input.WarehouseID,
			BuyPrice:        input.BuyPrice.Round(2),
			InitialQuantity: input.Quantity,
			Quantity:        input.Quantity,
			PurchaseDate:    dateOrNow(input.PurchaseDate),
			Supplier:        input.Supplier,
			Notes:           input.Notes,
		}
		if err := tx.Batches().Create(ctx, batch); err != nil {
			return err
		}
		return tx.Products().RecalculateTotalStock(ctx, input.ProductID)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditStockIn,
		Entity:   "Batch",
		ObjectID: batch.ID.String(),
		Summary:  batch.BatchNumber,
		Changes: map[string]interface{}{
			"product_id":   batch.ProductID,
			"warehouse_id": batch.WarehouseID,
			"quantity":     batch.Quantity,
			"buy_price":    batch.BuyPrice,
		},
	})
	return batch, nil
}

// PurchaseLineInput is one product line of a purchase
type PurchaseLineInput struct {
	ProductID uuid.UUID       `validate:"required"`
	Quantity  int             `validate:"gt=0"`
	UnitPrice decimal.Decimal `validate:"gte=0"`
}

// CreatePurchaseInput represents goods received from one supplier
type CreatePurchaseInput struct {
	WarehouseID  uuid.UUID `validate:"required"`
	Supplier     string    `validate:"max=255"`
	PurchaseDate *time.Time
	Notes        string
	Items        []PurchaseLineInput `validate:"required,min=1,dive"`
}

// CreatePurchase records a purchase and creates one batch per line
func (s *InventoryService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	actor := ActorFrom(ctx)
	purchaseDate := dateOrNow(input.PurchaseDate)

	var purchase *entity.Purchase
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := requireReceivingWarehouse(ctx, tx, input.WarehouseID); err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(input.Items))
		total := decimal.Zero
		for _, line := range input.Items {
			if err := requireProduct(ctx, tx, line.ProductID); err != nil {
				return err
			}
			productIDs = append(productIDs, line.ProductID)
			total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		number, err := s.numbers.Next(ctx, tx, ledger.PrefixPurchase)
		if err != nil {
			return err
		}
		purchase = &entity.Purchase{
			PurchaseNumber: number,
			Supplier:       input.Supplier,
			PurchaseDate:   purchaseDate,
			TotalAmount:    total.Round(2),
			Notes:          input.Notes,
			CreatedBy:      actor.ID,
		}
		if err := tx.Purchases().Create(ctx, purchase); err != nil {
			return err
		}

		items := make([]entity.PurchaseItem, 0, len(input.Items))
		for _, line := range input.Items {
			batchNumber, err := s.numbers.Next(ctx, tx, ledger.PrefixBatch)
			if err != nil {
				return err
			}
			batch := &entity.Batch{
				BatchNumber:     batchNumber,
				ProductID:       line.ProductID,
				WarehouseID:     input.WarehouseID,
				BuyPrice:        line.UnitPrice.Round(2),
				InitialQuantity: line.Quantity,
				Quantity:        line.Quantity,
				PurchaseDate:    purchaseDate,
				Supplier:        input.Supplier,
				Notes:           "Purchase " + number,
			}
			if err := tx.Batches().Create(ctx, batch); err != nil {
				return err
			}
			items = append(items, entity.PurchaseItem{
				PurchaseID: purchase.ID,
				BatchID:    batch.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  batch.BuyPrice,
				TotalPrice: batch.BuyPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			})
		}
		if err := tx.Purchases().CreateItems(ctx, items); err != nil {
			return err
		}
		purchase.Items = items

		return tx.Products().RecalculateTotalStock(ctx, productIDs...)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditCreate,
		Entity:   "Purchase",
		ObjectID: purchase.ID.String(),
		Summary:  purchase.PurchaseNumber,
		Changes: map[string]interface{}{
			"supplier":     purchase.Supplier,
			"total_amount": purchase.TotalAmount,
			"lines":        len(purchase.Items),
		},
	})
	return purchase, nil
}

// RecalculateProductStock rewrites one product's total_stock from its batches
func (s *InventoryService) RecalculateProductStock(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := requireProduct(ctx, tx, productID); err != nil {
			return err
		}
		return tx.Products().RecalculateTotalStock(ctx, productID)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Products().GetByID(ctx, productID)
}

// GetBatch retrieves a batch by ID
func (s *InventoryService) GetBatch(ctx context.Context, id uuid.UUID) (*entity.Batch, error) {
	batch, err := s.store.Batches().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ledger.NotFound("batch", id)
	}
	return batch, nil
}

// ListBatches lists the batches of a product, oldest first
func (s *InventoryService) ListBatches(ctx context.Context, productID uuid.UUID, inStockOnly bool) ([]entity.Batch, error) {
	if err := requireProduct(ctx, s.store, productID); err != nil {
		return nil, err
	}
	return s.store.Batches().ListByProduct(ctx, productID, inStockOnly)
}

// GetPurchase retrieves a purchase with its lines
func (s *InventoryService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.store.Purchases().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ledger.NotFound("purchase", id)
	}
	return purchase, nil
}

// ListPurchases lists purchases newest first
func (s *InventoryService) ListPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.store.Purchases().List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(purchases, params, total), nil
}

func requireProduct(ctx context.Context, store repository.Store, id uuid.UUID) error {
	product, err := store.Products().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return ledger.NotFound("product", id)
	}
	return nil
}

func requireReceivingWarehouse(ctx context.Context, store repository.Store, id uuid.UUID) error {
	_, err := activeWarehouse(ctx, store, id, "receive into")
	return err
}

func activeWarehouse(ctx context.Context, store repository.Store, id uuid.UUID, action string) (*entity.Warehouse, error) {
	warehouse, err := store.Warehouses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, ledger.NotFound("warehouse", id)
	}
	if !warehouse.IsActive {
		return nil, ledger.InvalidState("warehouse", id, "inactive", action)
	}
	return warehouse, nil
}

func dateOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now()
	}
	return *t
}
