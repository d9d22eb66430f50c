package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormStore struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewStore returns a transaction manager over db. lockTimeout bounds how long
// a statement inside WithinTx waits for a row lock; zero leaves the server default.
func NewStore(db *gorm.DB, lockTimeout time.Duration) domainRepo.TxManager {
	return &gormStore{db: db, lockTimeout: lockTimeout}
}

func (s *gormStore) Products() domainRepo.ProductRepository {
	return NewProductRepository(s.db)
}

func (s *gormStore) Categories() domainRepo.CategoryRepository {
	return NewCategoryRepository(s.db)
}

func (s *gormStore) Brands() domainRepo.BrandRepository {
	return NewBrandRepository(s.db)
}

func (s *gormStore) Warehouses() domainRepo.WarehouseRepository {
	return NewWarehouseRepository(s.db)
}

func (s *gormStore) Batches() domainRepo.BatchRepository {
	return NewBatchRepository(s.db)
}

func (s *gormStore) Purchases() domainRepo.PurchaseRepository {
	return NewPurchaseRepository(s.db)
}

func (s *gormStore) Sales() domainRepo.SaleRepository {
	return NewSaleRepository(s.db)
}

func (s *gormStore) Customers() domainRepo.CustomerRepository {
	return NewCustomerRepository(s.db)
}

func (s *gormStore) Payments() domainRepo.PaymentRepository {
	return NewPaymentRepository(s.db)
}

func (s *gormStore) Transfers() domainRepo.TransferRepository {
	return NewTransferRepository(s.db)
}

func (s *gormStore) StockOuts() domainRepo.StockOutRepository {
	return NewStockOutRepository(s.db)
}

func (s *gormStore) Sequences() domainRepo.SequenceRepository {
	return NewSequenceRepository(s.db)
}

func (s *gormStore) AuditLogs() domainRepo.AuditLogRepository {
	return NewAuditLogRepository(s.db)
}

// WithinTx runs fn in a single transaction. Every repository handed to fn
// shares that transaction; a returned error or panic rolls it back.
func (s *gormStore) WithinTx(ctx context.Context, fn func(tx domainRepo.Store) error) error {
	set, reset := lockTimeoutStatements(s.db.Dialector.Name(), s.lockTimeout)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if set != "" {
			if err := tx.Exec(set).Error; err != nil {
				return err
			}
		}
		err := fn(&gormStore{db: tx, lockTimeout: s.lockTimeout})
		if reset != "" {
			// the session outlives the transaction in the pool
			if rerr := tx.Exec(reset).Error; rerr != nil && err == nil {
				err = rerr
			}
		}
		return err
	})
	switch {
	case IsLockTimeout(err):
		return fmt.Errorf("%w: %v", ledger.ErrBusy, err)
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", ledger.ErrConflict, err)
	}
	return err
}

// lockTimeoutStatements returns the statement bounding row lock waits for one
// transaction and, where the setting is session wide, the one undoing it.
// postgres scopes SET LOCAL to the transaction. mysql has no per-transaction
// form, so the session value goes back to the server default afterwards.
// sqlite serialises writers on the database lock; busy_timeout is set on open.
func lockTimeoutStatements(dialect string, timeout time.Duration) (set, reset string) {
	if timeout <= 0 {
		return "", ""
	}
	switch dialect {
	case "postgres":
		return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds()), ""
	case "mysql":
		secs := int(timeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		return fmt.Sprintf("SET SESSION innodb_lock_wait_timeout = %d", secs),
			"SET SESSION innodb_lock_wait_timeout = DEFAULT"
	default:
		return "", ""
	}
}
