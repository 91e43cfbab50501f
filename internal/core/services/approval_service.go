package services

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/metrics"
)

type approvalService struct {
	BaseService
	approvalRepo portsrepo.ApprovalRepositoryFacade
}

// NewApprovalService creates the ledger service.
func NewApprovalService(repos portsrepo.RepositoryProvider, identity portssvc.IdentityProvider, options ...ServiceOption) portssvc.ApprovalSvc {
	return &approvalService{
		BaseService:  newBaseService(identity, options...),
		approvalRepo: repos.ApprovalRepo,
	}
}

var _ portssvc.ApprovalSvc = (*approvalService)(nil)

func (s *approvalService) RecordApproval(ctx context.Context, invoiceID string, action domain.ApprovalAction, notes string) (*domain.InvoiceApproval, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, string(action), invoiceID, err)
	}
	row, err := workflow.NewApproval(invoiceID, who.ID, who.Name, action, notes, s.Now())
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, string(action), invoiceID, err)
	}
	if err := s.approvalRepo.SaveApprovals(ctx, []domain.InvoiceApproval{row}); err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, string(action), invoiceID, err)
	}
	s.Succeeded(ctx, metrics.EntityApproval, string(action), invoiceID, string(action))
	return &row, nil
}

func (s *approvalService) LatestApproval(ctx context.Context, invoiceID string) (*domain.InvoiceApproval, error) {
	if _, err := s.RequireIdentity(ctx); err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, "latest", invoiceID, err)
	}
	rows, err := s.approvalRepo.FindApprovalsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, "latest", invoiceID, err)
	}
	latest, err := workflow.LatestFor(rows, invoiceID)
	if err != nil {
		return nil, err
	}
	return &latest, nil
}

func (s *approvalService) ListApprovals(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error) {
	if _, err := s.RequireIdentity(ctx); err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, "history", invoiceID, err)
	}
	rows, err := s.approvalRepo.FindApprovalsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityApproval, "history", invoiceID, err)
	}
	return workflow.History(rows, invoiceID), nil
}
