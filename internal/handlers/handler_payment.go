package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Drumblow/modularcompany-sub001/internal/core/ports/services"
	"github.com/Drumblow/modularcompany-sub001/internal/dto"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers all payment-related routes.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:id", h.getPayment)
		payments.PUT("/:id/confirm", h.confirmPayment)
		payments.PUT("/:id/cancel", h.cancelPayment)
	}
}

// createPayment godoc
// @Summary Create a payment
// @Description Pays a set of approved, unpaid time entries of one recipient. The payment and its allocation rows are written atomically.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or unapproved entries"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Entry already paid"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	payment, links, err := h.paymentService.CreatePayment(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, links))
}

// listPayments godoc
// @Summary List payments
// @Description Lists payments visible to the caller, optionally filtered to one recipient.
// @Tags payments
// @Produce json
// @Param userId query string false "Filter by recipient user"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), principal, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves a payment with its allocation rows. Visible to its creator, its recipient and company staff.
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	payment, links, err := h.paymentService.GetPaymentByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, links))
}

// confirmPayment godoc
// @Summary Confirm receipt of a payment
// @Description Lets the recipient confirm the payment, completing it and notifying its creator.
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Payment not open"
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{id}/confirm [put]
func (h *paymentHandler) confirmPayment(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.ConfirmPayment(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, nil))
}

// cancelPayment godoc
// @Summary Cancel a payment
// @Description Cancels a not-yet-completed payment and releases its time entries for future payments.
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Payment already completed"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{id}/cancel [put]
func (h *paymentHandler) cancelPayment(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, nil))
}
