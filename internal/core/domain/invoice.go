package domain

import (
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is a position in the invoice lifecycle.
type InvoiceStatus string

const (
	InvoiceStatusDraft                       InvoiceStatus = "draft"
	InvoiceStatusPendingDeptLeaderApproval   InvoiceStatus = "pending_dept_leader_approval"
	InvoiceStatusPendingFinanceApproval      InvoiceStatus = "pending_finance_approval"
	InvoiceStatusApproved                    InvoiceStatus = "approved"
	InvoiceStatusRejected                    InvoiceStatus = "rejected"
	InvoiceStatusPendingUpload               InvoiceStatus = "pending_upload"
	InvoiceStatusSubmittedToCustomer         InvoiceStatus = "submitted_to_customer"
	InvoiceStatusPendingCustomerConfirmation InvoiceStatus = "pending_customer_confirmation"
	InvoiceStatusCompleted                   InvoiceStatus = "completed"
	InvoiceStatusSettled                     InvoiceStatus = "settled"
	InvoiceStatusGroupBillingPending         InvoiceStatus = "group_billing_pending"
	InvoiceStatusGroupBillingReviewed        InvoiceStatus = "group_billing_reviewed"
)

// InvoiceStatuses lists every status in lifecycle order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusPendingDeptLeaderApproval,
	InvoiceStatusPendingFinanceApproval,
	InvoiceStatusApproved,
	InvoiceStatusRejected,
	InvoiceStatusPendingUpload,
	InvoiceStatusSubmittedToCustomer,
	InvoiceStatusPendingCustomerConfirmation,
	InvoiceStatusCompleted,
	InvoiceStatusSettled,
	InvoiceStatusGroupBillingPending,
	InvoiceStatusGroupBillingReviewed,
}

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	for _, known := range InvoiceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further forward progress is expected.
// Rejected is terminal but can be re-entered through a resubmission.
func (s InvoiceStatus) IsTerminal() bool {
	switch s {
	case InvoiceStatusSettled, InvoiceStatusCompleted, InvoiceStatusRejected:
		return true
	}
	return false
}

// ApplicationType classifies an invoice request.
type ApplicationType string

const (
	ApplicationTypeNormal  ApplicationType = "normal"
	ApplicationTypeUrgent  ApplicationType = "urgent"
	ApplicationTypeReissue ApplicationType = "reissue"
)

// IsValid reports whether t is a known application type.
func (t ApplicationType) IsValid() bool {
	switch t {
	case ApplicationTypeNormal, ApplicationTypeUrgent, ApplicationTypeReissue:
		return true
	}
	return false
}

// InvoiceItem is one line of an invoice request. TaxRate is a percentage (0-100)
// and Amount is the gross amount; the other two amounts are derived.
type InvoiceItem struct {
	ID               string          `json:"id"`
	Category         string          `json:"category"`
	ServiceType      string          `json:"serviceType,omitempty"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	Amount           decimal.Decimal `json:"amount"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	AmountWithoutTax decimal.Decimal `json:"amountWithoutTax"`
}

// Recompute derives AmountWithoutTax and TaxAmount from Amount and TaxRate.
func (it *InvoiceItem) Recompute() {
	it.AmountWithoutTax, it.TaxAmount = accounting.SplitGross(it.Amount, it.TaxRate)
}

// Invoice is a single billing request travelling through the approval workflow.
type Invoice struct {
	ID              string          `json:"id"`
	ApplicationType ApplicationType `json:"applicationType"`
	Status          InvoiceStatus   `json:"status"`
	InvoiceNumber   string          `json:"invoiceNumber,omitempty"`

	Amount               decimal.Decimal `json:"amount"`
	ContractRevenue      decimal.Decimal `json:"contractRevenue"`
	AppliedInvoiceAmount decimal.Decimal `json:"appliedInvoiceAmount"`
	MainRevenue          decimal.Decimal `json:"mainRevenue"`

	SubmittedBy      string `json:"submittedBy"`
	SubmittedByName  string `json:"submittedByName"`
	CustomerName     string `json:"customerName"`
	TaxpayerIDNumber string `json:"taxpayerIdNumber"`

	ProjectID       string   `json:"projectId,omitempty"`
	ProjectName     string   `json:"projectName,omitempty"`
	ProjectCode     string   `json:"projectCode,omitempty"`
	ContractCode    string   `json:"contractCode,omitempty"`
	ContractName    string   `json:"contractName,omitempty"`
	IndustryType    string   `json:"industryType,omitempty"`
	IsRevenueListed *bool    `json:"isRevenueListed,omitempty"`
	InvoiceNotes    string   `json:"invoiceNotes,omitempty"`
	Attachments     []string `json:"attachments,omitempty"`
	Notes           string   `json:"notes,omitempty"`

	InvoiceItems []InvoiceItem `json:"invoiceItems"`

	UploadedInvoiceNumber  string     `json:"uploadedInvoiceNumber,omitempty"`
	UploadedInvoiceDate    string     `json:"uploadedInvoiceDate,omitempty"`
	UploadedInvoiceFileURL string     `json:"uploadedInvoiceFileUrl,omitempty"`
	UploadedBy             string     `json:"uploadedBy,omitempty"`
	UploadedByName         string     `json:"uploadedByName,omitempty"`
	UploadedAt             *time.Time `json:"uploadedAt,omitempty"`
	UploadNotes            string     `json:"uploadNotes,omitempty"`

	GroupBillingData *GroupBillingData `json:"groupBillingData,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecomputeAmount refreshes the derived amounts of every line item and sets
// the invoice amount to the sum of the gross item amounts.
func (inv *Invoice) RecomputeAmount() {
	total := decimal.Zero
	for i := range inv.InvoiceItems {
		inv.InvoiceItems[i].Recompute()
		total = total.Add(inv.InvoiceItems[i].Amount)
	}
	inv.Amount = total
}

// IsOwnedBy reports whether userID submitted the invoice.
func (inv *Invoice) IsOwnedBy(userID string) bool {
	return userID != "" && inv.SubmittedBy == userID
}

// DisplayNumber is the assigned invoice number, falling back to the ID.
func (inv *Invoice) DisplayNumber() string {
	if inv.InvoiceNumber != "" {
		return inv.InvoiceNumber
	}
	return inv.ID
}

// Clone returns a deep copy that shares no mutable state with inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.InvoiceItems != nil {
		out.InvoiceItems = append([]InvoiceItem(nil), inv.InvoiceItems...)
	}
	if inv.Attachments != nil {
		out.Attachments = append([]string(nil), inv.Attachments...)
	}
	if inv.IsRevenueListed != nil {
		v := *inv.IsRevenueListed
		out.IsRevenueListed = &v
	}
	if inv.UploadedAt != nil {
		v := *inv.UploadedAt
		out.UploadedAt = &v
	}
	if inv.GroupBillingData != nil {
		gb := inv.GroupBillingData.Clone()
		out.GroupBillingData = &gb
	}
	return out
}

// GroupInvoiceType is the VAT invoice kind requested from the group entity.
type GroupInvoiceType string

const (
	GroupInvoiceTypeVATSpecial GroupInvoiceType = "vat_special"
	GroupInvoiceTypeVATNormal  GroupInvoiceType = "vat_normal"
)

// GroupBillingItem is one line of a consolidated (group) invoice request.
type GroupBillingItem struct {
	ID          string          `json:"id"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Category    string          `json:"category"`
	ProductName string          `json:"productName"`
	Model       string          `json:"model,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// GroupBillingData is the snapshot of the group-billing form attached to an invoice.
type GroupBillingData struct {
	ProjectName      string             `json:"projectName"`
	BillingAmount    decimal.Decimal    `json:"billingAmount"`
	CustomerName     string             `json:"customerName"`
	Address          string             `json:"address"`
	TaxpayerIDNumber string             `json:"taxpayerIdNumber"`
	Phone            string             `json:"phone"`
	BankName         string             `json:"bankName"`
	AccountNumber    string             `json:"accountNumber"`
	InvoiceType      GroupInvoiceType   `json:"invoiceType"`
	Notes            string             `json:"notes,omitempty"`
	InvoiceItems     []GroupBillingItem `json:"invoiceItems"`
}

// Total sums the gross amounts of the group-billing items.
func (g *GroupBillingData) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.InvoiceItems {
		total = total.Add(item.Amount)
	}
	return total
}

// Clone returns a deep copy of g.
func (g GroupBillingData) Clone() GroupBillingData {
	out := g
	if g.InvoiceItems != nil {
		out.InvoiceItems = append([]GroupBillingItem(nil), g.InvoiceItems...)
	}
	return out
}
