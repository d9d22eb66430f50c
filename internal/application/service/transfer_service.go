package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/pagination"
)

// TransferService moves stock between warehouses. A transfer is created
// pending and touches stock only when it is completed.
type TransferService struct {
	store   repository.TxManager
	numbers *NumberGenerator
	locker  repository.Locker
	audit   AuditSink
	now     func() time.Time
}

// NewTransferService creates a new transfer service
func NewTransferService(store repository.TxManager, numbers *NumberGenerator, locker repository.Locker, audit AuditSink) *TransferService {
	return &TransferService{
		store:   store,
		numbers: numbers,
		locker:  locker,
		audit:   audit,
		now:     time.Now,
	}
}

// BatchQuantityInput names a quantity of one batch
type BatchQuantityInput struct {
	BatchID  uuid.UUID `validate:"required"`
	Quantity int       `validate:"gt=0"`
}

// CreateTransferInput represents the create transfer input
type CreateTransferInput struct {
	FromWarehouseID uuid.UUID `validate:"required"`
	ToWarehouseID   uuid.UUID `validate:"required"`
	TransferDate    *time.Time
	Notes           string
	Items           []BatchQuantityInput `validate:"required,min=1,dive"`
}

// CreateTransfer records a pending transfer after checking each batch sits in
// the source warehouse and currently holds enough stock
func (s *TransferService) CreateTransfer(ctx context.Context, input *CreateTransferInput) (*entity.StockTransfer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.FromWarehouseID == input.ToWarehouseID {
		return nil, ledger.Invalid("to_warehouse_id", "must differ from from_warehouse_id")
	}

	actor := ActorFrom(ctx)
	var transfer *entity.StockTransfer
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := activeWarehouse(ctx, tx, input.FromWarehouseID, "transfer from"); err != nil {
			return err
		}
		if _, err := activeWarehouse(ctx, tx, input.ToWarehouseID, "transfer to"); err != nil {
			return err
		}
		if err := checkBatchesInWarehouse(ctx, tx, input.FromWarehouseID, input.Items); err != nil {
			return err
		}

		number, err := s.numbers.Next(ctx, tx, ledger.PrefixTransfer)
		if err != nil {
			return err
		}
		transfer = &entity.StockTransfer{
			TransferNumber:  number,
			FromWarehouseID: input.FromWarehouseID,
			ToWarehouseID:   input.ToWarehouseID,
			Status:          enum.StatusPending,
			TransferDate:    dateOrNow(input.TransferDate),
			Notes:           input.Notes,
			CreatedBy:       actor.ID,
		}
		for _, item := range input.Items {
			transfer.Items = append(transfer.Items, entity.StockTransferItem{
				SourceBatchID: item.BatchID,
				Quantity:      item.Quantity,
			})
		}
		return tx.Transfers().Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditTransfer,
		Entity:   "StockTransfer",
		ObjectID: transfer.ID.String(),
		Summary:  transfer.TransferNumber,
		Changes: map[string]interface{}{
			"status":            transfer.Status,
			"from_warehouse_id": transfer.FromWarehouseID,
			"to_warehouse_id":   transfer.ToWarehouseID,
			"lines":             len(transfer.Items),
		},
	})
	return transfer, nil
}

type mergeKey struct {
	productID uuid.UUID
	buyPrice  string
}

// CompleteTransfer moves the stock. Each line is taken out of its source batch
// and merged into a destination batch of the same product and cost, or into
// a new batch when none exists. Any shortfall fails the whole transfer.
func (s *TransferService) CompleteTransfer(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	current, err := s.store.Transfers().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ledger.NotFound("transfer", id)
	}

	// merge targets are looked up unlocked so they can be locked in id order
	// together with the sources
	targets := make(map[mergeKey]uuid.UUID)
	lockIDs := make([]uuid.UUID, 0, 2*len(current.Items))
	for _, item := range current.Items {
		lockIDs = append(lockIDs, item.SourceBatchID)
		if item.SourceBatch == nil {
			continue
		}
		key := mergeKey{item.SourceBatch.ProductID, item.SourceBatch.BuyPrice.StringFixed(2)}
		if _, seen := targets[key]; seen {
			continue
		}
		target, err := s.store.Batches().FindMergeTarget(ctx, item.SourceBatch.ProductID, current.ToWarehouseID, item.SourceBatch.BuyPrice)
		if err != nil {
			return nil, err
		}
		if target != nil {
			targets[key] = target.ID
			lockIDs = append(lockIDs, target.ID)
		}
	}

	var transfer *entity.StockTransfer
	err = withBatchLocks(ctx, s.locker, lockIDs, func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			var err error
			transfer, err = tx.Transfers().LockByID(ctx, id)
			if err != nil {
				return err
			}
			if transfer == nil {
				return ledger.NotFound("transfer", id)
			}
			if transfer.Status != enum.StatusPending {
				return ledger.InvalidState("transfer", id, string(transfer.Status), "complete")
			}
			if _, err := activeWarehouse(ctx, tx, transfer.ToWarehouseID, "transfer to"); err != nil {
				return err
			}

			batches, err := tx.Batches().LockByIDs(ctx, lockIDs)
			if err != nil {
				return err
			}

			// revalidate every line before moving anything
			needed := make(map[uuid.UUID]int, len(transfer.Items))
			for _, item := range transfer.Items {
				source, ok := batches[item.SourceBatchID]
				if !ok {
					return ledger.NotFound("batch", item.SourceBatchID)
				}
				if source.WarehouseID != transfer.FromWarehouseID {
					return ledger.InvalidState("batch", source.ID, "moved", "transfer")
				}
				needed[source.ID] += item.Quantity
				if needed[source.ID] > source.Quantity {
					return &ledger.InsufficientStockError{
						BatchID:     source.ID,
						BatchNumber: source.BatchNumber,
						Requested:   needed[source.ID],
						Available:   source.Quantity,
					}
				}
			}

			productIDs := make([]uuid.UUID, 0, len(transfer.Items))
			for i := range transfer.Items {
				item := &transfer.Items[i]
				source := batches[item.SourceBatchID]
				if err := decrementBatch(ctx, tx, source, item.Quantity); err != nil {
					return err
				}

				key := mergeKey{source.ProductID, source.BuyPrice.StringFixed(2)}
				destID, ok := targets[key]
				if ok {
					if _, locked := batches[destID]; !locked {
						return fmt.Errorf("merge target %s was not locked", destID)
					}
					if err := tx.Batches().Grow(ctx, destID, item.Quantity); err != nil {
						return err
					}
				} else {
					dest, err := s.createDestinationBatch(ctx, tx, source, transfer.ToWarehouseID, item.Quantity)
					if err != nil {
						return err
					}
					destID = dest.ID
					// later lines of the same product and cost merge into it
					targets[key] = destID
					batches[destID] = dest
				}

				if err := tx.Transfers().SetDestination(ctx, item.ID, destID); err != nil {
					return err
				}
				item.DestinationBatchID = &destID
				productIDs = append(productIDs, source.ProductID)
			}

			if err := tx.Products().RecalculateTotalStock(ctx, productIDs...); err != nil {
				return err
			}

			completed := s.now()
			transfer.Status = enum.StatusCompleted
			transfer.CompletedDate = &completed
			return tx.Transfers().UpdateStatus(ctx, transfer)
		})
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditTransfer,
		Entity:   "StockTransfer",
		ObjectID: transfer.ID.String(),
		Summary:  "Completed " + transfer.TransferNumber,
		Changes: map[string]interface{}{
			"status": transfer.Status,
		},
	})
	return transfer, nil
}

func (s *TransferService) createDestinationBatch(ctx context.Context, tx repository.Store, source *entity.Batch, warehouseID uuid.UUID, qty int) (*entity.Batch, error) {
	number, err := s.numbers.Next(ctx, tx, ledger.PrefixBatch)
	if err != nil {
		return nil, err
	}
	dest := &entity.Batch{
		BatchNumber:     number,
		ProductID:       source.ProductID,
		WarehouseID:     warehouseID,
		BuyPrice:        source.BuyPrice,
		InitialQuantity: qty,
		Quantity:        qty,
		PurchaseDate:    source.PurchaseDate,
		Supplier:        source.Supplier,
		Notes:           "Transferred from " + source.BatchNumber,
	}
	if err := tx.Batches().Create(ctx, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

// CancelTransfer cancels a pending transfer. Completed transfers are final;
// move the stock back with a new transfer instead.
func (s *TransferService) CancelTransfer(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	var transfer *entity.StockTransfer
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		transfer, err = tx.Transfers().LockByID(ctx, id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return ledger.NotFound("transfer", id)
		}
		switch transfer.Status {
		case enum.StatusCancelled:
			return ledger.AlreadyCancelled("transfer", id)
		case enum.StatusCompleted:
			return ledger.InvalidState("transfer", id, string(transfer.Status), "cancel")
		}

		transfer.Status = enum.StatusCancelled
		return tx.Transfers().UpdateStatus(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditTransfer,
		Entity:   "StockTransfer",
		ObjectID: transfer.ID.String(),
		Summary:  "Cancelled " + transfer.TransferNumber,
		Changes: map[string]interface{}{
			"status": transfer.Status,
		},
	})
	return transfer, nil
}

// GetTransfer retrieves a transfer with its lines
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*entity.StockTransfer, error) {
	transfer, err := s.store.Transfers().GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, ledger.NotFound("transfer", id)
	}
	return transfer, nil
}

// ListTransfers lists transfers, optionally by status
func (s *TransferService) ListTransfers(ctx context.Context, status *enum.DocumentStatus, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockTransfer], error) {
	transfers, total, err := s.store.Transfers().List(ctx, status, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(transfers, params, total), nil
}

// checkBatchesInWarehouse is the soft check made when a pending document is
// created. Nothing is locked; completion checks again under lock.
func checkBatchesInWarehouse(ctx context.Context, tx repository.Store, warehouseID uuid.UUID, items []BatchQuantityInput) error {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.BatchID
	}
	batches, err := tx.Batches().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*entity.Batch, len(batches))
	for i := range batches {
		byID[batches[i].ID] = &batches[i]
	}

	requested := make(map[uuid.UUID]int, len(items))
	for i, item := range items {
		batch, ok := byID[item.BatchID]
		if !ok {
			return ledger.NotFound("batch", item.BatchID)
		}
		if batch.WarehouseID != warehouseID {
			return ledger.Invalid(fmt.Sprintf("items[%d].batch_id", i), "batch "+batch.BatchNumber+" is not in the selected warehouse")
		}
		requested[batch.ID] += item.Quantity
		if requested[batch.ID] > batch.Quantity {
			return &ledger.InsufficientStockError{
				BatchID:     batch.ID,
				BatchNumber: batch.BatchNumber,
				Requested:   requested[batch.ID],
				Available:   batch.Quantity,
			}
		}
	}
	return nil
}
