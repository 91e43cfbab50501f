package services

import (
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, identity portssvc.IdentityProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Invoice:  NewInvoiceService(repos, identity, options...),
		Approval: NewApprovalService(repos, identity, options...),
		Payment:  NewPaymentService(repos, identity, options...),
		Todo:     NewTodoService(repos, identity, options...),
	}
}
