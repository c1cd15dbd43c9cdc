package handlers

import (
	"net/http"
	"strconv"

	"stayease/middleware"
	"stayease/services/invoice"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves invoice listing and the admin issuing surface.
type InvoiceHandler struct {
	Service invoice.InvoiceService
}

func NewInvoiceHandler(svc invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: svc}
}

// ListMineHandler handles GET /api/invoices. Residents always see their own
// invoices; staff may pass ?userId= to inspect another resident's.
func (h *InvoiceHandler) ListMineHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	skip, limit := pageParams(c)

	userID := p.UserID
	if q := c.Query("userId"); q != "" && p.IsStaff() {
		userID = q
	}

	invoices, err := h.Service.ListForUser(userID, c.Query("status"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// GetHandler handles GET /api/invoices/:id.
func (h *InvoiceHandler) GetHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	inv, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if inv.UserID != p.UserID && !p.IsStaff() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this invoice"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListAllHandler handles GET /api/admin/invoices.
func (h *InvoiceHandler) ListAllHandler(c *gin.Context) {
	skip, limit := pageParams(c)
	invoices, err := h.Service.ListAll(c.Query("status"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// DueSoonHandler handles GET /api/admin/invoices/due-soon.
func (h *InvoiceHandler) DueSoonHandler(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "3"))
	invoices, err := h.Service.DueSoon(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// CreateHandler handles POST /api/admin/invoices.
func (h *InvoiceHandler) CreateHandler(c *gin.Context) {
	var in invoice.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := h.Service.Create(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// CancelHandler handles POST /api/admin/invoices/:id/cancel.
func (h *InvoiceHandler) CancelHandler(c *gin.Context) {
	if err := h.Service.Cancel(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice cancelled"})
}
