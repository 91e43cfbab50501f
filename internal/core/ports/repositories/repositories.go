package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	InvoiceRepo  InvoiceRepositoryFacade
	PaymentRepo  PaymentRepositoryFacade
	ApprovalRepo ApprovalRepositoryFacade
	TxManager    TransactionManager
}

// NewRepositoryProvider wires every repository to a single store.
func NewRepositoryProvider(store WorkflowStoreWithTx) RepositoryProvider {
	return RepositoryProvider{
		InvoiceRepo:  store,
		PaymentRepo:  store,
		ApprovalRepo: store,
		TxManager:    store,
	}
}
