package enum

// AuditAction is the kind of change recorded in the audit log
type AuditAction string

const (
	AuditCreate   AuditAction = "CREATE"
	AuditUpdate   AuditAction = "UPDATE"
	AuditDelete   AuditAction = "DELETE"
	AuditSale     AuditAction = "SALE"
	AuditPayment  AuditAction = "PAYMENT"
	AuditStockIn  AuditAction = "STOCK_IN"
	AuditStockOut AuditAction = "STOCK_OUT"
	AuditTransfer AuditAction = "TRANSFER"
)

func (a AuditAction) String() string {
	return string(a)
}
