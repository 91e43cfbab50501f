package dto

import (
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line item as submitted by the requester.
// Derived tax amounts are computed by the server and never accepted.
type InvoiceItemRequest struct {
	ID          string          `json:"id"`
	Category    string          `json:"category" binding:"required"`
	ServiceType string          `json:"serviceType"`
	TaxRate     decimal.Decimal `json:"taxRate"` // percentage, e.g. 6 for 6%
	Amount      decimal.Decimal `json:"amount"`
}

// CreateInvoiceRequest defines the data needed to open an invoice application.
type CreateInvoiceRequest struct {
	ApplicationType      domain.ApplicationType `json:"applicationType" binding:"required,oneof=normal urgent reissue"`
	CustomerName         string                 `json:"customerName" binding:"required"`
	TaxpayerIDNumber     string                 `json:"taxpayerIdNumber"`
	ContractRevenue      decimal.Decimal        `json:"contractRevenue"`
	AppliedInvoiceAmount decimal.Decimal        `json:"appliedInvoiceAmount"`
	MainRevenue          decimal.Decimal        `json:"mainRevenue"`
	ProjectID            string                 `json:"projectId"`
	ProjectName          string                 `json:"projectName"`
	ProjectCode          string                 `json:"projectCode"`
	ContractCode         string                 `json:"contractCode"`
	ContractName         string                 `json:"contractName"`
	IndustryType         string                 `json:"industryType"`
	IsRevenueListed      *bool                  `json:"isRevenueListed"`
	InvoiceNotes         string                 `json:"invoiceNotes"`
	Attachments          []string               `json:"attachments"`
	InvoiceItems         []InvoiceItemRequest   `json:"invoiceItems" binding:"required,min=1,dive"`
}

// UpdateInvoiceItemsRequest replaces the line items of a draft or rejected invoice.
type UpdateInvoiceItemsRequest struct {
	InvoiceItems []InvoiceItemRequest `json:"invoiceItems" binding:"required,min=1,dive"`
}

// RejectInvoiceRequest carries the optional rejection note.
type RejectInvoiceRequest struct {
	Notes string `json:"notes"`
}

// ApproveInvoiceRequest carries an optional approval note.
type ApproveInvoiceRequest struct {
	Notes string `json:"notes"`
}

// UploadInvoiceRequest records the invoice issued after approval.
type UploadInvoiceRequest struct {
	UploadedInvoiceNumber  string `json:"uploadedInvoiceNumber" binding:"required"`
	UploadedInvoiceDate    string `json:"uploadedInvoiceDate" binding:"required,datetime=2006-01-02"`
	UploadedInvoiceFileURL string `json:"uploadedInvoiceFileUrl"`
	UploadNotes            string `json:"uploadNotes"`
}

// ToUploadDetails converts the request to the workflow input.
func (r UploadInvoiceRequest) ToUploadDetails() workflow.UploadDetails {
	return workflow.UploadDetails{
		InvoiceNumber: r.UploadedInvoiceNumber,
		InvoiceDate:   r.UploadedInvoiceDate,
		FileURL:       r.UploadedInvoiceFileURL,
		Notes:         r.UploadNotes,
	}
}

// ConfirmInvoiceRequest is the requester's answer to an uploaded invoice.
// ApplyGroupBilling routes the invoice into the group-billing sub-flow instead of settling it.
type ConfirmInvoiceRequest struct {
	ApplyGroupBilling bool `json:"applyGroupBilling"`
}

// WithdrawInvoiceRequest carries the optional withdrawal reason.
type WithdrawInvoiceRequest struct {
	Reason string `json:"reason"`
}

// GroupBillingItemRequest is one line of the group-billing form.
type GroupBillingItemRequest struct {
	ID          string          `json:"id"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Category    string          `json:"category"`
	ProductName string          `json:"productName"`
	Model       string          `json:"model"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// GroupBillingRequest is the group-billing form. Item completeness is
// checked by the workflow so every offending item is reported at once.
type GroupBillingRequest struct {
	ProjectName      string                    `json:"projectName"`
	CustomerName     string                    `json:"customerName"`
	Address          string                    `json:"address"`
	TaxpayerIDNumber string                    `json:"taxpayerIdNumber"`
	Phone            string                    `json:"phone"`
	BankName         string                    `json:"bankName"`
	AccountNumber    string                    `json:"accountNumber"`
	InvoiceType      domain.GroupInvoiceType   `json:"invoiceType" binding:"omitempty,oneof=vat_special vat_normal"`
	Notes            string                    `json:"notes"`
	InvoiceItems     []GroupBillingItemRequest `json:"invoiceItems"`
}

// ToDomain converts the form to the domain snapshot (billing amount is recomputed later).
func (r GroupBillingRequest) ToDomain() domain.GroupBillingData {
	items := make([]domain.GroupBillingItem, len(r.InvoiceItems))
	for i, it := range r.InvoiceItems {
		items[i] = domain.GroupBillingItem{
			ID:          it.ID,
			TaxRate:     it.TaxRate,
			Category:    it.Category,
			ProductName: it.ProductName,
			Model:       it.Model,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			Amount:      it.Amount,
		}
	}
	return domain.GroupBillingData{
		ProjectName:      r.ProjectName,
		CustomerName:     r.CustomerName,
		Address:          r.Address,
		TaxpayerIDNumber: r.TaxpayerIDNumber,
		Phone:            r.Phone,
		BankName:         r.BankName,
		AccountNumber:    r.AccountNumber,
		InvoiceType:      r.InvoiceType,
		Notes:            r.Notes,
		InvoiceItems:     items,
	}
}

// ListInvoicesParams defines the query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int                  `form:"limit"`
	NextToken *string              `form:"nextToken"`
	Status    domain.InvoiceStatus `form:"status"`
}

// ListInvoicesResponse is one page of invoices.
type ListInvoicesResponse struct {
	Invoices  []domain.Invoice `json:"invoices"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ApplicationResponse is one of the requester's own invoices with its progress.
// Actions lists the triggers the requester may fire on it now.
type ApplicationResponse struct {
	Invoice  domain.Invoice     `json:"invoice"`
	Progress workflow.Progress  `json:"progress"`
	Actions  []workflow.Trigger `json:"actions"`
}

// ListApplicationsResponse lists the requester's applications, newest first.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// InvoiceApprovalsResponse is the ledger history of one invoice.
type InvoiceApprovalsResponse struct {
	Approvals []domain.InvoiceApproval `json:"approvals"`
}
