package handlers

import (
	"errors"
	"net/http"

	"stayease/middleware"
	"stayease/models"
	"stayease/services/payment"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the QR transfer workflow: QR generation, manual
// confirmation, and the gateway callback.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// paymentErrorStatus maps orchestrator errors onto HTTP statuses.
func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, payment.ErrInvoiceNotFound), errors.Is(err, payment.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrNotInvoiceOwner):
		return http.StatusForbidden
	case errors.Is(err, payment.ErrInvoiceAlreadyPaid), errors.Is(err, payment.ErrInvoiceCancelled), errors.Is(err, payment.ErrInvalidCallback):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GenerateQRHandler handles POST /api/invoices/:id/generate-qr.
func (h *PaymentHandler) GenerateQRHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req struct {
		TransactionCode string `json:"transactionCode"`
	}
	// Body is optional; an empty body opens a fresh payment attempt.
	_ = c.ShouldBindJSON(&req)

	resp, err := h.Service.GenerateQR(c.Request.Context(), p, c.Param("id"), req.TransactionCode)
	if err != nil {
		status := paymentErrorStatus(err)
		if status == http.StatusInternalServerError {
			utils.GetLogger().Error("QR generation failed", zap.String("invoiceID", c.Param("id")), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to generate payment QR"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPaymentHandler handles POST /api/invoices/:id/confirm-payment.
func (h *PaymentHandler) ConfirmPaymentHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req struct {
		Gateway         string `json:"gateway"`
		TransactionCode string `json:"transactionCode"`
	}
	_ = c.ShouldBindJSON(&req)

	inv, err := h.Service.ConfirmPayment(c.Request.Context(), p, c.Param("id"), req.Gateway, req.TransactionCode)
	if err != nil {
		status := paymentErrorStatus(err)
		if status == http.StatusInternalServerError {
			utils.GetLogger().Error("Payment confirmation failed", zap.String("invoiceID", c.Param("id")), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to confirm payment"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListInvoiceTransactionsHandler handles GET /api/invoices/:id/transactions.
func (h *PaymentHandler) ListInvoiceTransactionsHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	txns, err := h.Service.ListForInvoice(p, c.Param("id"))
	if err != nil {
		status := paymentErrorStatus(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to list transactions"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, txns)
}

// ListMyTransactionsHandler handles GET /api/transactions.
func (h *PaymentHandler) ListMyTransactionsHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	userID := p.UserID
	if q := c.Query("userId"); q != "" && p.IsStaff() {
		userID = q
	}

	txns, err := h.Service.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, txns)
}

// CallbackHandler handles GET and POST /api/payment/callback. The sandbox
// gateway may deliver the outcome as query parameters or as a JSON body, so
// both bindings are accepted.
func (h *PaymentHandler) CallbackHandler(c *gin.Context) {
	var cb models.PaymentCallback
	if c.Request.Method == http.MethodGet {
		if err := c.ShouldBindQuery(&cb); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ProcessCallback(c.Request.Context(), cb); err != nil {
		// An already-paid invoice means the callback is a duplicate; report
		// success so the gateway stops retrying.
		if errors.Is(err, payment.ErrInvoiceAlreadyPaid) {
			c.JSON(http.StatusOK, gin.H{"message": "Payment already recorded"})
			return
		}
		status := paymentErrorStatus(err)
		if status == http.StatusInternalServerError {
			utils.GetLogger().Error("Payment callback failed",
				zap.String("transactionCode", cb.TransactionCode), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to process callback"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Callback processed"})
}
