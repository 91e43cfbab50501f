package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentSvc portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: paymentSvc}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.registerPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/confirm", h.confirmPayment)
		payments.POST("/:paymentID/reconcile", h.reconcilePayment)
	}
}

// registerPayment godoc
// @Summary Register an incoming payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.RegisterPaymentRequest true "Payment"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Role may not register payments"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) registerPayment(c *gin.Context) {
	var req dto.RegisterPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.paymentService.RegisterPayment(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "register payment")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// listPayments godoc
// @Summary List payments in registration order
// @Tags payments
// @Produce json
// @Success 200 {object} dto.ListPaymentsResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: payments})
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	p, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondWithError(c, err, "retrieve payment")
		return
	}
	c.JSON(http.StatusOK, p)
}

// confirmPayment godoc
// @Summary Confirm a pending payment (finance)
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 409 {object} map[string]string "Payment is not pending"
// @Security BearerAuth
// @Router /payments/{paymentID}/confirm [post]
func (h *paymentHandler) confirmPayment(c *gin.Context) {
	p, err := h.paymentService.ConfirmPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondWithError(c, err, "confirm payment")
		return
	}
	c.JSON(http.StatusOK, p)
}

// reconcilePayment godoc
// @Summary Reconcile a confirmed payment (finance)
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 409 {object} map[string]string "Payment is not confirmed"
// @Security BearerAuth
// @Router /payments/{paymentID}/reconcile [post]
func (h *paymentHandler) reconcilePayment(c *gin.Context) {
	p, err := h.paymentService.ReconcilePayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondWithError(c, err, "reconcile payment")
		return
	}
	c.JSON(http.StatusOK, p)
}
