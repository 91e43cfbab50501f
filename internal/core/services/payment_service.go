package services

import (
	"context"
	"errors"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/metrics"
)

const (
	paymentTriggerRegister  = "register"
	paymentTriggerConfirm   = "confirm"
	paymentTriggerReconcile = "reconcile"
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentReader
	txManager   portsrepo.TransactionManager
}

// NewPaymentService creates the payment reconciliation service.
func NewPaymentService(repos portsrepo.RepositoryProvider, identity portssvc.IdentityProvider, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(identity, options...),
		paymentRepo: repos.PaymentRepo,
		txManager:   repos.TxManager,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if _, err := s.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	p, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityPayment, "get", paymentID, err)
	}
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	if _, err := s.RequireIdentity(ctx); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.LoadPayments(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityPayment, "list", "", err)
	}
	return payments, nil
}

// RegisterPayment records a pending payment. The referenced invoice need not
// exist; when it does, its number is copied onto the payment.
func (s *paymentService) RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest) (*domain.Payment, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityPayment, paymentTriggerRegister, "", err)
	}

	var created domain.Payment
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		var related *domain.Invoice
		if req.InvoiceID != "" {
			inv, err := store.FindInvoiceByID(ctx, req.InvoiceID)
			switch {
			case err == nil:
				related = inv
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}
		p, err := workflow.NewPayment(req.ToRegistration(), related, who, s.Now())
		if err != nil {
			return err
		}
		if err := store.SavePayments(ctx, []domain.Payment{p}); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityPayment, paymentTriggerRegister, req.InvoiceID, err)
	}
	s.Succeeded(ctx, metrics.EntityPayment, paymentTriggerRegister, created.ID, string(created.Status))
	return &created, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.advance(ctx, paymentID, paymentTriggerConfirm, workflow.ConfirmPayment)
}

func (s *paymentService) ReconcilePayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.advance(ctx, paymentID, paymentTriggerReconcile, workflow.ReconcilePayment)
}

func (s *paymentService) advance(ctx context.Context, paymentID, trigger string, step func(*domain.Payment, domain.Identity) error) (*domain.Payment, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityPayment, trigger, paymentID, err)
	}

	var updated *domain.Payment
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		p, err := store.FindPaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := step(p, who); err != nil {
			return err
		}
		if err := store.SavePayments(ctx, []domain.Payment{*p}); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityPayment, trigger, paymentID, err)
	}
	s.Succeeded(ctx, metrics.EntityPayment, trigger, paymentID, string(updated.Status))
	return updated, nil
}
