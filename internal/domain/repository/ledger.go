package repository

// LedgerTx agrupa los repositorios atados a una transacción del ledger.
// Todo lo escrito a través de ellos se confirma junto o se descarta junto.
type LedgerTx struct {
	Products       ProductReader
	Stock          StockRepository
	Sales          SalesOrderRepository
	PurchaseOrders PurchaseOrderRepository
	Adjustments    AdjustmentRepository
	Sequences      SequenceRepository
}

// LockScope claves que una transacción bloquea en exclusiva mientras dura.
// Las implementaciones adquieren los bloqueos en un orden global fijo (OC primero,
// luego productos ordenados por ID) para evitar interbloqueos.
type LockScope struct {
	ProductIDs      []string
	PurchaseOrderID string
}
