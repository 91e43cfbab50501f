package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/metrics"
	"github.com/SscSPs/invoice_workflow_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// invoiceService drives the invoice lifecycle. Every write runs inside one
// store transaction so the status change and its ledger row land together.
type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceReader
	approvalRepo portsrepo.ApprovalReader
	txManager    portsrepo.TransactionManager
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(repos portsrepo.RepositoryProvider, identity portssvc.IdentityProvider, options ...ServiceOption) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService:  newBaseService(identity, options...),
		invoiceRepo:  repos.InvoiceRepo,
		approvalRepo: repos.ApprovalRepo,
		txManager:    repos.TxManager,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// visibleTo reports whether who may read inv. Customer managers only see their own invoices.
func visibleTo(inv *domain.Invoice, who domain.Identity) bool {
	return who.Role != domain.RoleCustomerManager || inv.IsOwnedBy(who.ID)
}

// findVisible loads an invoice for who. Another requester's invoice is
// reported as not found, the same as GetInvoice does.
func findVisible(ctx context.Context, store portsrepo.InvoiceReader, invoiceID string, who domain.Identity) (*domain.Invoice, error) {
	inv, err := store.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(inv, who) {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	inv, err := findVisible(ctx, s.invoiceRepo, invoiceID, who)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "get", invoiceID, err)
	}
	return inv, nil
}

// sortNewestFirst orders invoices by (createdAt desc, id desc), the order pagination expects.
func sortNewestFirst(invoices []domain.Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		if !invoices[i].CreatedAt.Equal(invoices[j].CreatedAt) {
			return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
		}
		return invoices[i].ID > invoices[j].ID
	})
}

func invoiceKey(inv domain.Invoice) (time.Time, string) {
	return inv.CreatedAt, inv.ID
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if params.Status != "" && !params.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
	}

	all, err := s.invoiceRepo.LoadInvoices(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "list", "", err)
	}

	visible := make([]domain.Invoice, 0, len(all))
	for i := range all {
		if !visibleTo(&all[i], who) {
			continue
		}
		if params.Status != "" && all[i].Status != params.Status {
			continue
		}
		visible = append(visible, all[i])
	}
	sortNewestFirst(visible)

	page, next, err := pagination.Page(visible, params.Limit, params.NextToken, invoiceKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, err)
	}
	s.LogDebug(ctx, "Listed invoices", slog.Int("count", len(page)), slog.String("role", string(who.Role)))
	return &dto.ListInvoicesResponse{Invoices: page, NextToken: next}, nil
}

func (s *invoiceService) ListApplications(ctx context.Context) (*dto.ListApplicationsResponse, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.invoiceRepo.LoadInvoices(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "list_applications", "", err)
	}
	approvals, err := s.approvalRepo.LoadApprovals(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "list_applications", "", err)
	}

	own := make([]domain.Invoice, 0)
	for i := range all {
		if all[i].IsOwnedBy(who.ID) {
			own = append(own, all[i])
		}
	}
	sortNewestFirst(own)

	resp := &dto.ListApplicationsResponse{Applications: make([]dto.ApplicationResponse, 0, len(own))}
	for i := range own {
		resp.Applications = append(resp.Applications, dto.ApplicationResponse{
			Invoice:  own[i],
			Progress: workflow.DescribeProgress(&own[i], approvals, who),
			Actions:  workflow.AvailableTriggers(&own[i], who),
		})
	}
	return resp, nil
}

func buildItems(reqItems []dto.InvoiceItemRequest) ([]domain.InvoiceItem, error) {
	items := make([]domain.InvoiceItem, len(reqItems))
	for i, r := range reqItems {
		if r.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: item %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: item %d tax rate must be between 0 and 100", apperrors.ErrValidation, i+1)
		}
		id := r.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		items[i] = domain.InvoiceItem{
			ID:          id,
			Category:    r.Category,
			ServiceType: r.ServiceType,
			TaxRate:     r.TaxRate,
			Amount:      r.Amount,
		}
		items[i].Recompute()
	}
	return items, nil
}

func checkRevenue(req dto.CreateInvoiceRequest) error {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"contractRevenue", req.ContractRevenue},
		{"appliedInvoiceAmount", req.AppliedInvoiceAmount},
		{"mainRevenue", req.MainRevenue},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, f.name)
		}
	}
	return nil
}

// CreateInvoice opens a new application in pending_dept_leader_approval.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", "", err)
	}
	if err := workflow.CanCreate(who); err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", "", err)
	}
	if !req.ApplicationType.IsValid() {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", "",
			fmt.Errorf("%w: unknown application type %q", apperrors.ErrValidation, req.ApplicationType))
	}
	if len(req.InvoiceItems) == 0 {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", "",
			fmt.Errorf("%w: at least one invoice item is required", apperrors.ErrValidation))
	}
	if err := checkRevenue(req); err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", "", err)
	}
	items, err := buildItems(req.InvoiceItems)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", "", err)
	}

	now := s.Now()
	inv := domain.Invoice{
		ID:                   uuid.NewString(),
		ApplicationType:      req.ApplicationType,
		Status:               domain.InvoiceStatusPendingDeptLeaderApproval,
		ContractRevenue:      req.ContractRevenue,
		AppliedInvoiceAmount: req.AppliedInvoiceAmount,
		MainRevenue:          req.MainRevenue,
		SubmittedBy:          who.ID,
		SubmittedByName:      who.Name,
		CustomerName:         req.CustomerName,
		TaxpayerIDNumber:     req.TaxpayerIDNumber,
		ProjectID:            req.ProjectID,
		ProjectName:          req.ProjectName,
		ProjectCode:          req.ProjectCode,
		ContractCode:         req.ContractCode,
		ContractName:         req.ContractName,
		IndustryType:         req.IndustryType,
		IsRevenueListed:      req.IsRevenueListed,
		InvoiceNotes:         req.InvoiceNotes,
		Attachments:          req.Attachments,
		InvoiceItems:         items,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	inv.RecomputeAmount()

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		return store.SaveInvoices(ctx, []domain.Invoice{inv})
	})
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, "create", inv.ID, err)
	}
	s.Succeeded(ctx, metrics.EntityInvoice, "create", inv.ID, string(inv.Status))
	return &inv, nil
}

// UpdateInvoiceItems replaces the line items of a draft or rejected invoice.
func (s *invoiceService) UpdateInvoiceItems(ctx context.Context, invoiceID string, req dto.UpdateInvoiceItemsRequest) (*domain.Invoice, error) {
	const op = "edit_items"
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, op, invoiceID, err)
	}
	if len(req.InvoiceItems) == 0 {
		return nil, s.Refused(ctx, metrics.EntityInvoice, op, invoiceID,
			fmt.Errorf("%w: at least one invoice item is required", apperrors.ErrValidation))
	}
	items, err := buildItems(req.InvoiceItems)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, op, invoiceID, err)
	}

	var updated *domain.Invoice
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		inv, err := findVisible(ctx, store, invoiceID, who)
		if err != nil {
			return err
		}
		if err := workflow.CanEditItems(inv, who); err != nil {
			return err
		}
		inv.InvoiceItems = items
		inv.RecomputeAmount()
		inv.UpdatedAt = s.Now()
		if err := store.SaveInvoices(ctx, []domain.Invoice{*inv}); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, op, invoiceID, err)
	}
	s.Succeeded(ctx, metrics.EntityInvoice, op, invoiceID, string(updated.Status))
	return updated, nil
}

// prepareFunc runs inside the transaction after the guard passed and before
// the status changes. It may stamp fields on inv or refuse the transition.
type prepareFunc func(ctx context.Context, store portsrepo.WorkflowStore, inv *domain.Invoice, who domain.Identity, now time.Time) error

// transition loads the invoice, resolves trigger against the transition
// table, applies it and persists the invoice together with its ledger row.
func (s *invoiceService) transition(ctx context.Context, invoiceID string, trigger workflow.Trigger, notes string, prepare prepareFunc) (*domain.Invoice, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, string(trigger), invoiceID, err)
	}

	var updated *domain.Invoice
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		inv, err := findVisible(ctx, store, invoiceID, who)
		if err != nil {
			return err
		}
		t, err := workflow.Resolve(inv, trigger, who)
		if err != nil {
			return err
		}
		now := s.Now()
		if prepare != nil {
			if err := prepare(ctx, store, inv, who, now); err != nil {
				return err
			}
		}
		row, err := workflow.Apply(inv, t, who, notes, now)
		if err != nil {
			return err
		}
		if err := store.SaveInvoices(ctx, []domain.Invoice{*inv}); err != nil {
			return err
		}
		if row != nil {
			if err := store.SaveApprovals(ctx, []domain.InvoiceApproval{*row}); err != nil {
				return err
			}
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, s.Refused(ctx, metrics.EntityInvoice, string(trigger), invoiceID, err)
	}
	s.Succeeded(ctx, metrics.EntityInvoice, string(trigger), invoiceID, string(updated.Status))
	return updated, nil
}

func (s *invoiceService) ApproveInvoice(ctx context.Context, invoiceID string, notes string) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerApprove, notes, nil)
}

func (s *invoiceService) RejectInvoice(ctx context.Context, invoiceID string, notes string) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerReject, notes, nil)
}

func stampUpload(req dto.UploadInvoiceRequest) prepareFunc {
	details := req.ToUploadDetails()
	return func(_ context.Context, _ portsrepo.WorkflowStore, inv *domain.Invoice, who domain.Identity, now time.Time) error {
		if err := details.Validate(); err != nil {
			return err
		}
		workflow.StampUpload(inv, details, who, now)
		return nil
	}
}

func (s *invoiceService) UploadInvoice(ctx context.Context, invoiceID string, req dto.UploadInvoiceRequest) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerUpload, "", stampUpload(req))
}

// SubmitToCustomer assigns the next sequential invoice number.
func (s *invoiceService) SubmitToCustomer(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerSubmitToCustomer, "",
		func(ctx context.Context, store portsrepo.WorkflowStore, inv *domain.Invoice, _ domain.Identity, now time.Time) error {
			all, err := store.LoadInvoices(ctx)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = workflow.NextInvoiceNumber(len(all), now)
			return nil
		})
}

// ConfirmInvoice settles the invoice, or routes it into group billing when
// applyGroupBilling is set.
func (s *invoiceService) ConfirmInvoice(ctx context.Context, invoiceID string, applyGroupBilling bool) (*domain.Invoice, error) {
	if applyGroupBilling {
		return s.transition(ctx, invoiceID, workflow.TriggerRequestGroupBilling, "", nil)
	}
	return s.transition(ctx, invoiceID, workflow.TriggerConfirm, "", nil)
}

func (s *invoiceService) SubmitGroupBilling(ctx context.Context, invoiceID string, req dto.GroupBillingRequest) (*domain.Invoice, error) {
	form := req.ToDomain()
	return s.transition(ctx, invoiceID, workflow.TriggerSubmitGroupBilling, "",
		func(_ context.Context, _ portsrepo.WorkflowStore, inv *domain.Invoice, _ domain.Identity, _ time.Time) error {
			data, err := workflow.PrepareGroupBilling(inv, form)
			if err != nil {
				return err
			}
			inv.GroupBillingData = &data
			return nil
		})
}

func (s *invoiceService) UploadGroupInvoice(ctx context.Context, invoiceID string, req dto.UploadInvoiceRequest) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerUploadGroupInvoice, "", stampUpload(req))
}

func (s *invoiceService) WithdrawInvoice(ctx context.Context, invoiceID string, reason string) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerWithdraw, reason, nil)
}

// ResubmitInvoice sends a rejected invoice back to the department leader.
// The rejection note is kept until the next decision overwrites it.
func (s *invoiceService) ResubmitInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.transition(ctx, invoiceID, workflow.TriggerResubmit, "", nil)
}
