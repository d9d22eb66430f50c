package repository

import "context"

// Store gives access to every ledger repository bound to one database handle.
// Inside WithinTx all repositories share the same transaction.
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Brands() BrandRepository
	Warehouses() WarehouseRepository
	Batches() BatchRepository
	Purchases() PurchaseRepository
	Sales() SaleRepository
	Customers() CustomerRepository
	Payments() PaymentRepository
	Transfers() TransferRepository
	StockOuts() StockOutRepository
	Sequences() SequenceRepository
	AuditLogs() AuditLogRepository
}

// TxManager runs fn inside one database transaction. Returning an error from
// fn rolls everything back.
type TxManager interface {
	Store
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// Locker serialises work on shared rows across processes. Keys are acquired
// in the order given; release must be called once the transaction has ended.
type Locker interface {
	Acquire(ctx context.Context, keys []string) (release func(), err error)
}
