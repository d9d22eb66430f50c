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

// StockOutService writes off stock that leaves without a sale
type StockOutService struct {
	store   repository.TxManager
	numbers *NumberGenerator
	locker  repository.Locker
	audit   AuditSink
	now     func() time.Time
}

// NewStockOutService creates a new stock-out service
func NewStockOutService(store repository.TxManager, numbers *NumberGenerator, locker repository.Locker, audit AuditSink) *StockOutService {
	return &StockOutService{
		store:   store,
		numbers: numbers,
		locker:  locker,
		audit:   audit,
		now:     time.Now,
	}
}

// CreateStockOutInput represents the create stock-out input
type CreateStockOutInput struct {
	WarehouseID  uuid.UUID           `validate:"required"`
	Reason       enum.StockOutReason `validate:"required"`
	StockOutDate *time.Time
	Notes        string
	Items        []BatchQuantityInput `validate:"required,min=1,dive"`
}

// CreateStockOut records a pending stock-out. Stock is not touched until completion.
func (s *StockOutService) CreateStockOut(ctx context.Context, input *CreateStockOutInput) (*entity.StockOut, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Reason.Valid() {
		return nil, ledger.Invalid("reason", "unknown reason "+string(input.Reason))
	}

	actor := ActorFrom(ctx)
	var stockOut *entity.StockOut
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := activeWarehouse(ctx, tx, input.WarehouseID, "remove stock from"); err != nil {
			return err
		}
		if err := checkBatchesInWarehouse(ctx, tx, input.WarehouseID, input.Items); err != nil {
			return err
		}

		number, err := s.numbers.Next(ctx, tx, ledger.PrefixStockOut)
		if err != nil {
			return err
		}
		stockOut = &entity.StockOut{
			StockOutNumber: number,
			WarehouseID:    input.WarehouseID,
			Reason:         input.Reason,
			Status:         enum.StatusPending,
			TotalValue:     decimal.Zero,
			StockOutDate:   dateOrNow(input.StockOutDate),
			Notes:          input.Notes,
			CreatedBy:      actor.ID,
		}
		for _, item := range input.Items {
			stockOut.Items = append(stockOut.Items, entity.StockOutItem{
				BatchID:  item.BatchID,
				Quantity: item.Quantity,
			})
		}
		return tx.StockOuts().Create(ctx, stockOut)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditStockOut,
		Entity:   "StockOut",
		ObjectID: stockOut.ID.String(),
		Summary:  stockOut.StockOutNumber,
		Changes: map[string]interface{}{
			"status":       stockOut.Status,
			"reason":       stockOut.Reason,
			"warehouse_id": stockOut.WarehouseID,
			"lines":        len(stockOut.Items),
		},
	})
	return stockOut, nil
}

// CompleteStockOut removes the stock and snapshots each line's cost.
// Any shortfall fails the whole stock-out.
func (s *StockOutService) CompleteStockOut(ctx context.Context, id uuid.UUID) (*entity.StockOut, error) {
	current, err := s.store.StockOuts().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ledger.NotFound("stock-out", id)
	}

	var stockOut *entity.StockOut
	err = withBatchLocks(ctx, s.locker, stockOutBatchIDs(current.Items), func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			var err error
			stockOut, err = tx.StockOuts().LockByID(ctx, id)
			if err != nil {
				return err
			}
			if stockOut == nil {
				return ledger.NotFound("stock-out", id)
			}
			if stockOut.Status != enum.StatusPending {
				return ledger.InvalidState("stock-out", id, string(stockOut.Status), "complete")
			}

			batches, err := tx.Batches().LockByIDs(ctx, stockOutBatchIDs(stockOut.Items))
			if err != nil {
				return err
			}

			total := decimal.Zero
			productIDs := make([]uuid.UUID, 0, len(stockOut.Items))
			for i := range stockOut.Items {
				item := &stockOut.Items[i]
				batch, ok := batches[item.BatchID]
				if !ok {
					return ledger.NotFound("batch", item.BatchID)
				}
				if batch.WarehouseID != stockOut.WarehouseID {
					return ledger.InvalidState("batch", batch.ID, "moved", "remove")
				}
				if err := decrementBatch(ctx, tx, batch, item.Quantity); err != nil {
					return err
				}

				item.CostPrice = decimal.NewNullDecimal(batch.BuyPrice)
				if err := tx.StockOuts().SetItemCost(ctx, item); err != nil {
					return err
				}
				total = total.Add(item.TotalCost())
				productIDs = append(productIDs, batch.ProductID)
			}

			if err := tx.Products().RecalculateTotalStock(ctx, productIDs...); err != nil {
				return err
			}

			completed := s.now()
			stockOut.Status = enum.StatusCompleted
			stockOut.TotalValue = total.Round(2)
			stockOut.CompletedDate = &completed
			return tx.StockOuts().UpdateStatus(ctx, stockOut)
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditStockOut,
		Entity:   "StockOut",
		ObjectID: stockOut.ID.String(),
		Summary:  "Completed " + stockOut.StockOutNumber,
		Changes: map[string]interface{}{
			"status":      stockOut.Status,
			"total_value": stockOut.TotalValue,
		},
	})
	return stockOut, nil
}

// CancelStockOut cancels a stock-out. A completed one has its quantities put
// back; its total value and completion date are kept as a record.
func (s *StockOutService) CancelStockOut(ctx context.Context, id uuid.UUID) (*entity.StockOut, error) {
	current, err := s.store.StockOuts().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ledger.NotFound("stock-out", id)
	}

	var (
		stockOut *entity.StockOut
		restored bool
	)
	err = withBatchLocks(ctx, s.locker, stockOutBatchIDs(current.Items), func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			var err error
			stockOut, err = tx.StockOuts().LockByID(ctx, id)
			if err != nil {
				return err
			}
			if stockOut == nil {
				return ledger.NotFound("stock-out", id)
			}

			switch stockOut.Status {
			case enum.StatusCancelled:
				return ledger.AlreadyCancelled("stock-out", id)
			case enum.StatusCompleted:
				if err := restoreStockOutItems(ctx, tx, stockOut.Items); err != nil {
					return err
				}
				restored = true
			}

			stockOut.Status = enum.StatusCancelled
			return tx.StockOuts().UpdateStatus(ctx, stockOut)
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditStockOut,
		Entity:   "StockOut",
		ObjectID: stockOut.ID.String(),
		Summary:  "Cancelled " + stockOut.StockOutNumber,
		Changes: map[string]interface{}{
			"status":         stockOut.Status,
			"stock_restored": restored,
		},
	})
	return stockOut, nil
}

func restoreStockOutItems(ctx context.Context, tx repository.Store, items []entity.StockOutItem) error {
	batches, err := tx.Batches().LockByIDs(ctx, stockOutBatchIDs(items))
	if err != nil {
		return err
	}

	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		batch, ok := batches[item.BatchID]
		if !ok {
			return ledger.NotFound("batch", item.BatchID)
		}
		if err := tx.Batches().Increment(ctx, batch.ID, item.Quantity); err != nil {
			return err
		}
		productIDs = append(productIDs, batch.ProductID)
	}
	return tx.Products().RecalculateTotalStock(ctx, productIDs...)
}

// GetStockOut retrieves a stock-out with its lines
func (s *StockOutService) GetStockOut(ctx context.Context, id uuid.UUID) (*entity.StockOut, error) {
	stockOut, err := s.store.StockOuts().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if stockOut == nil {
		return nil, ledger.NotFound("stock-out", id)
	}
	return stockOut, nil
}

// ListStockOuts lists stock-outs, optionally by status
func (s *StockOutService) ListStockOuts(ctx context.Context, status *enum.DocumentStatus, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockOut], error) {
	stockOuts, total, err := s.store.StockOuts().List(ctx, status, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(stockOuts, params, total), nil
}

func stockOutBatchIDs(items []entity.StockOutItem) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.BatchID
	}
	return ids
}
