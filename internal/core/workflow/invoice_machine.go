// Package workflow holds the pure rules of the invoice and payment
// lifecycles: the transition table, the approval ledger helpers, to-do
// derivation and application progress. Nothing here touches storage.
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// Trigger names a user action that moves an invoice between statuses.
type Trigger string

const (
	TriggerApprove             Trigger = "approve"
	TriggerReject              Trigger = "reject"
	TriggerUpload              Trigger = "upload"
	TriggerSubmitToCustomer    Trigger = "submit_to_customer"
	TriggerConfirm             Trigger = "confirm"
	TriggerRequestGroupBilling Trigger = "request_group_billing"
	TriggerSubmitGroupBilling  Trigger = "submit_group_billing"
	TriggerUploadGroupInvoice  Trigger = "upload_group_invoice"
	TriggerWithdraw            Trigger = "withdraw"
	TriggerResubmit            Trigger = "resubmit"
)

// DefaultWithdrawNote is recorded when a requester withdraws without a reason.
const DefaultWithdrawNote = "申请人主动撤回"

// Transition is one row of the invoice transition table.
// An empty Roles list admits any role; OwnerOnly additionally requires the
// caller to be the invoice's requester. A non-empty Decision means the
// transition is a human decision and appends one ledger row.
type Transition struct {
	From      domain.InvoiceStatus
	Trigger   Trigger
	Roles     []domain.Role
	OwnerOnly bool
	To        domain.InvoiceStatus
	Decision  domain.ApprovalAction
}

// Allows reports whether the identity passes the role and ownership guard.
func (t Transition) Allows(inv *domain.Invoice, who domain.Identity) bool {
	if len(t.Roles) > 0 && !hasRole(t.Roles, who.Role) {
		return false
	}
	if t.OwnerOnly && !inv.IsOwnedBy(who.ID) {
		return false
	}
	return true
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CreateRoles are the roles allowed to open a new invoice application.
var CreateRoles = []domain.Role{domain.RoleCustomerManager}

// EditableStatuses are the statuses in which the requester may edit line items.
var EditableStatuses = []domain.InvoiceStatus{domain.InvoiceStatusDraft, domain.InvoiceStatusRejected}

var (
	deptLeader   = []domain.Role{domain.RoleDepartmentLeader}
	finance      = []domain.Role{domain.RoleFinance}
	support      = []domain.Role{domain.RoleBusinessSupport}
	uploaders    = []domain.Role{domain.RoleFinance, domain.RoleBusinessSupport}
	requesterCM  = []domain.Role{domain.RoleCustomerManager}
	anyRoleOwner = []domain.Role(nil)
)

// InvoiceTransitions is the single source of truth for invoice guards.
var InvoiceTransitions = buildInvoiceTransitions()

func buildInvoiceTransitions() []Transition {
	table := []Transition{
		{From: domain.InvoiceStatusPendingDeptLeaderApproval, Trigger: TriggerApprove, Roles: deptLeader,
			To: domain.InvoiceStatusPendingFinanceApproval, Decision: domain.ApprovalActionApproved},
		{From: domain.InvoiceStatusPendingDeptLeaderApproval, Trigger: TriggerReject, Roles: deptLeader,
			To: domain.InvoiceStatusRejected, Decision: domain.ApprovalActionRejected},
		{From: domain.InvoiceStatusPendingFinanceApproval, Trigger: TriggerApprove, Roles: finance,
			To: domain.InvoiceStatusApproved, Decision: domain.ApprovalActionApproved},
		{From: domain.InvoiceStatusPendingFinanceApproval, Trigger: TriggerReject, Roles: finance,
			To: domain.InvoiceStatusRejected, Decision: domain.ApprovalActionRejected},
		{From: domain.InvoiceStatusApproved, Trigger: TriggerUpload, Roles: uploaders,
			To: domain.InvoiceStatusPendingCustomerConfirmation},
		{From: domain.InvoiceStatusApproved, Trigger: TriggerSubmitToCustomer, Roles: support,
			To: domain.InvoiceStatusSubmittedToCustomer},
		{From: domain.InvoiceStatusPendingCustomerConfirmation, Trigger: TriggerConfirm, Roles: requesterCM, OwnerOnly: true,
			To: domain.InvoiceStatusSettled},
		{From: domain.InvoiceStatusPendingCustomerConfirmation, Trigger: TriggerRequestGroupBilling, Roles: requesterCM, OwnerOnly: true,
			To: domain.InvoiceStatusGroupBillingPending},
		{From: domain.InvoiceStatusGroupBillingPending, Trigger: TriggerSubmitGroupBilling, Roles: requesterCM, OwnerOnly: true,
			To: domain.InvoiceStatusGroupBillingReviewed},
		{From: domain.InvoiceStatusGroupBillingReviewed, Trigger: TriggerUploadGroupInvoice, Roles: support,
			To: domain.InvoiceStatusPendingCustomerConfirmation},
		{From: domain.InvoiceStatusRejected, Trigger: TriggerResubmit, Roles: anyRoleOwner, OwnerOnly: true,
			To: domain.InvoiceStatusPendingDeptLeaderApproval},
	}
	for _, status := range domain.InvoiceStatuses {
		if status.IsTerminal() {
			continue
		}
		table = append(table, Transition{
			From: status, Trigger: TriggerWithdraw, Roles: anyRoleOwner, OwnerOnly: true,
			To: domain.InvoiceStatusRejected, Decision: domain.ApprovalActionRejected,
		})
	}
	return table
}

// Resolve finds the transition for trigger from the invoice's current status
// and checks the caller against its guard. A trigger with no row for the
// current status yields ErrInvalidState; a failed role or ownership check
// yields ErrForbidden. Both match apperrors.ErrGuardViolation.
func Resolve(inv *domain.Invoice, trigger Trigger, who domain.Identity) (Transition, error) {
	known := false
	for _, t := range InvoiceTransitions {
		if t.Trigger != trigger {
			continue
		}
		known = true
		if t.From != inv.Status {
			continue
		}
		if !t.Allows(inv, who) {
			return Transition{}, fmt.Errorf("%w: %s may not %s invoice %s", apperrors.ErrForbidden, describe(who), trigger, inv.ID)
		}
		return t, nil
	}
	if !known {
		return Transition{}, fmt.Errorf("%w: unknown trigger %q", apperrors.ErrValidation, trigger)
	}
	return Transition{}, fmt.Errorf("%w: cannot %s invoice %s in status %s", apperrors.ErrInvalidState, trigger, inv.ID, inv.Status)
}

// AvailableTriggers lists the triggers the identity may fire on the invoice right now.
func AvailableTriggers(inv *domain.Invoice, who domain.Identity) []Trigger {
	out := make([]Trigger, 0)
	for _, t := range InvoiceTransitions {
		if t.From == inv.Status && t.Allows(inv, who) {
			out = append(out, t.Trigger)
		}
	}
	return out
}

// Apply moves the invoice along t. When the transition is a decision it
// returns the ledger row to append; otherwise the row is nil.
// Rejection notes are also kept on the invoice.
func Apply(inv *domain.Invoice, t Transition, who domain.Identity, notes string, now time.Time) (*domain.InvoiceApproval, error) {
	if inv.Status != t.From {
		return nil, fmt.Errorf("%w: invoice %s is %s, transition expects %s", apperrors.ErrInvalidState, inv.ID, inv.Status, t.From)
	}
	if t.Trigger == TriggerWithdraw && strings.TrimSpace(notes) == "" {
		notes = DefaultWithdrawNote
	}

	var row *domain.InvoiceApproval
	if t.Decision != "" {
		approval, err := NewApproval(inv.ID, who.ID, who.Name, t.Decision, notes, now)
		if err != nil {
			return nil, err
		}
		row = &approval
	}

	inv.Status = t.To
	inv.UpdatedAt = now
	if t.Decision == domain.ApprovalActionRejected {
		inv.Notes = notes
	}
	return row, nil
}

// CanCreate reports whether the identity may open a new invoice application.
func CanCreate(who domain.Identity) error {
	if !hasRole(CreateRoles, who.Role) {
		return fmt.Errorf("%w: %s may not create invoices", apperrors.ErrForbidden, describe(who))
	}
	return nil
}

// CanEditItems checks the guard of the line-item edit operation.
func CanEditItems(inv *domain.Invoice, who domain.Identity) error {
	if !inv.IsOwnedBy(who.ID) {
		return fmt.Errorf("%w: %s is not the requester of invoice %s", apperrors.ErrForbidden, describe(who), inv.ID)
	}
	for _, s := range EditableStatuses {
		if inv.Status == s {
			return nil
		}
	}
	return fmt.Errorf("%w: items of invoice %s cannot be edited in status %s", apperrors.ErrInvalidState, inv.ID, inv.Status)
}

// NextInvoiceNumber formats INV-{year}-{seq} where seq is one more than the
// number of invoices already known.
func NextInvoiceNumber(existing int, now time.Time) string {
	return fmt.Sprintf("INV-%d-%03d", now.Year(), existing+1)
}

// UploadDetails is the issued-invoice information stamped by an upload.
type UploadDetails struct {
	InvoiceNumber string
	InvoiceDate   string
	FileURL       string
	Notes         string
}

// Validate checks the mandatory upload fields.
func (u UploadDetails) Validate() error {
	var missing []string
	if strings.TrimSpace(u.InvoiceNumber) == "" {
		missing = append(missing, "uploadedInvoiceNumber")
	}
	if strings.TrimSpace(u.InvoiceDate) == "" {
		missing = append(missing, "uploadedInvoiceDate")
	} else if _, err := time.Parse(time.DateOnly, u.InvoiceDate); err != nil {
		return fmt.Errorf("%w: uploadedInvoiceDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// StampUpload records the uploaded invoice on inv.
func StampUpload(inv *domain.Invoice, u UploadDetails, who domain.Identity, now time.Time) {
	at := now
	inv.UploadedInvoiceNumber = u.InvoiceNumber
	inv.UploadedInvoiceDate = u.InvoiceDate
	inv.UploadedInvoiceFileURL = u.FileURL
	inv.UploadNotes = u.Notes
	inv.UploadedBy = who.ID
	inv.UploadedByName = who.Name
	inv.UploadedAt = &at
}

func describe(who domain.Identity) string {
	if who.ID == "" {
		return string(who.Role)
	}
	return fmt.Sprintf("%s (%s)", who.ID, who.Role)
}
