package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices and their ledger.
type invoiceHandler struct {
	invoiceService  portssvc.InvoiceSvcFacade
	approvalService portssvc.ApprovalSvc
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade, as portssvc.ApprovalSvc) *invoiceHandler {
	return &invoiceHandler{invoiceService: is, approvalService: as}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceSvc portssvc.InvoiceSvcFacade, approvalSvc portssvc.ApprovalSvc) {
	h := newInvoiceHandler(invoiceSvc, approvalSvc)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID/items", h.updateInvoiceItems)
		invoices.POST("/:invoiceID/approve", h.approveInvoice)
		invoices.POST("/:invoiceID/reject", h.rejectInvoice)
		invoices.POST("/:invoiceID/upload", h.uploadInvoice)
		invoices.POST("/:invoiceID/submit-to-customer", h.submitToCustomer)
		invoices.POST("/:invoiceID/confirm", h.confirmInvoice)
		invoices.POST("/:invoiceID/group-billing", h.submitGroupBilling)
		invoices.POST("/:invoiceID/group-invoice", h.uploadGroupInvoice)
		invoices.POST("/:invoiceID/withdraw", h.withdrawInvoice)
		invoices.POST("/:invoiceID/resubmit", h.resubmitInvoice)
		invoices.GET("/:invoiceID/approvals", h.listApprovals)
		invoices.GET("/:invoiceID/approvals/latest", h.latestApproval)
	}
	rg.GET("/applications", h.listApplications)
}

// createInvoice godoc
// @Summary Create an invoice application
// @Description Opens a new invoice application in pending_dept_leader_approval. Customer managers only.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice application"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not create invoices"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "create invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created", slog.String("invoice_id", inv.ID))
	c.JSON(http.StatusCreated, inv)
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices newest first. Customer managers only see their own.
// @Tags invoices
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Cursor from the previous page"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondWithError(c, err, "retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// updateInvoiceItems godoc
// @Summary Replace the line items of a draft or rejected invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param items body dto.UpdateInvoiceItemsRequest true "Line items"
// @Success 200 {object} domain.Invoice
// @Failure 403 {object} map[string]string "Not the requester"
// @Failure 409 {object} map[string]string "Invoice is not editable"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/items [put]
func (h *invoiceHandler) updateInvoiceItems(c *gin.Context) {
	var req dto.UpdateInvoiceItemsRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.UpdateInvoiceItems(c.Request.Context(), c.Param("invoiceID"), req)
	if err != nil {
		respondWithError(c, err, "update invoice items")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// approveInvoice godoc
// @Summary Approve an invoice at the current review stage
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param body body dto.ApproveInvoiceRequest false "Optional note"
// @Success 200 {object} domain.Invoice
// @Failure 403 {object} map[string]string "Wrong role for this stage"
// @Failure 409 {object} map[string]string "Invoice is not awaiting approval"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/approve [post]
func (h *invoiceHandler) approveInvoice(c *gin.Context) {
	var req dto.ApproveInvoiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.ApproveInvoice(c.Request.Context(), c.Param("invoiceID"), req.Notes)
	if err != nil {
		respondWithError(c, err, "approve invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// rejectInvoice godoc
// @Summary Reject an invoice at the current review stage
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param body body dto.RejectInvoiceRequest false "Rejection note"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/reject [post]
func (h *invoiceHandler) rejectInvoice(c *gin.Context) {
	var req dto.RejectInvoiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.RejectInvoice(c.Request.Context(), c.Param("invoiceID"), req.Notes)
	if err != nil {
		respondWithError(c, err, "reject invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// uploadInvoice godoc
// @Summary Record the issued invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param upload body dto.UploadInvoiceRequest true "Issued invoice details"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/upload [post]
func (h *invoiceHandler) uploadInvoice(c *gin.Context) {
	var req dto.UploadInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.UploadInvoice(c.Request.Context(), c.Param("invoiceID"), req)
	if err != nil {
		respondWithError(c, err, "upload invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// submitToCustomer godoc
// @Summary Submit an approved invoice to the customer
// @Description Assigns the next INV-{year}-{seq} number.
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/submit-to-customer [post]
func (h *invoiceHandler) submitToCustomer(c *gin.Context) {
	inv, err := h.invoiceService.SubmitToCustomer(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondWithError(c, err, "submit invoice to customer")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// confirmInvoice godoc
// @Summary Confirm an uploaded invoice
// @Description Settles the invoice, or moves it to group billing when applyGroupBilling is true.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param body body dto.ConfirmInvoiceRequest false "Confirmation"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/confirm [post]
func (h *invoiceHandler) confirmInvoice(c *gin.Context) {
	var req dto.ConfirmInvoiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.ConfirmInvoice(c.Request.Context(), c.Param("invoiceID"), req.ApplyGroupBilling)
	if err != nil {
		respondWithError(c, err, "confirm invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// submitGroupBilling godoc
// @Summary Submit the group-billing form
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param form body dto.GroupBillingRequest true "Group billing form"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Every incomplete item is listed"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/group-billing [post]
func (h *invoiceHandler) submitGroupBilling(c *gin.Context) {
	var req dto.GroupBillingRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.SubmitGroupBilling(c.Request.Context(), c.Param("invoiceID"), req)
	if err != nil {
		respondWithError(c, err, "submit group billing")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// uploadGroupInvoice godoc
// @Summary Record the group invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param upload body dto.UploadInvoiceRequest true "Issued group invoice details"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/group-invoice [post]
func (h *invoiceHandler) uploadGroupInvoice(c *gin.Context) {
	var req dto.UploadInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.UploadGroupInvoice(c.Request.Context(), c.Param("invoiceID"), req)
	if err != nil {
		respondWithError(c, err, "upload group invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// withdrawInvoice godoc
// @Summary Withdraw an own application
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param body body dto.WithdrawInvoiceRequest false "Reason"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/withdraw [post]
func (h *invoiceHandler) withdrawInvoice(c *gin.Context) {
	var req dto.WithdrawInvoiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.WithdrawInvoice(c.Request.Context(), c.Param("invoiceID"), req.Reason)
	if err != nil {
		respondWithError(c, err, "withdraw invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// resubmitInvoice godoc
// @Summary Resubmit a rejected application
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Security BearerAuth
// @Router /invoices/{invoiceID}/resubmit [post]
func (h *invoiceHandler) resubmitInvoice(c *gin.Context) {
	inv, err := h.invoiceService.ResubmitInvoice(c.Request.Context(), c.Param("invoiceID"))
	if err != nil {
		respondWithError(c, err, "resubmit invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// listApprovals godoc
// @Summary Approval history of an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceApprovalsResponse
// @Security BearerAuth
// @Router /invoices/{invoiceID}/approvals [get]
func (h *invoiceHandler) listApprovals(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	if _, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID); err != nil {
		respondWithError(c, err, "retrieve invoice")
		return
	}
	rows, err := h.approvalService.ListApprovals(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, err, "list approvals")
		return
	}
	c.JSON(http.StatusOK, dto.InvoiceApprovalsResponse{Approvals: rows})
}

// latestApproval godoc
// @Summary Latest decision on an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} domain.InvoiceApproval
// @Failure 404 {object} map[string]string "No decision recorded"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/approvals/latest [get]
func (h *invoiceHandler) latestApproval(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	if _, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID); err != nil {
		respondWithError(c, err, "retrieve invoice")
		return
	}
	row, err := h.approvalService.LatestApproval(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, err, "retrieve latest approval")
		return
	}
	c.JSON(http.StatusOK, row)
}

// listApplications godoc
// @Summary The caller's own applications with their progress
// @Tags applications
// @Produce json
// @Success 200 {object} dto.ListApplicationsResponse
// @Security BearerAuth
// @Router /applications [get]
func (h *invoiceHandler) listApplications(c *gin.Context) {
	resp, err := h.invoiceService.ListApplications(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "list applications")
		return
	}
	c.JSON(http.StatusOK, resp)
}
