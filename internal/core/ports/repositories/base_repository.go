package repositories

import (
	"context"
)

// WorkflowStore is the full persistence surface the workflow services need.
type WorkflowStore interface {
	InvoiceRepositoryFacade
	PaymentRepositoryFacade
	ApprovalRepositoryFacade
}

// TransactionManager runs a unit of work atomically. Every write made
// through the store passed to fn is committed when fn returns nil and
// discarded when it returns an error.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store WorkflowStore) error) error
}

// WorkflowStoreWithTx is a store that also manages its own transactions
type WorkflowStoreWithTx interface {
	WorkflowStore
	TransactionManager
}
