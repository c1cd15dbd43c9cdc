package handlers

import (
	"net/http"
	"time"

	invoiceRepo "stayease/database/repository/invoice"
	requestRepo "stayease/database/repository/servicerequest"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the management dashboard.
type AdminHandler struct {
	Invoices invoiceRepo.InvoiceRepository
	Requests requestRepo.ServiceRequestRepository
}

func NewAdminHandler(invoices invoiceRepo.InvoiceRepository, requests requestRepo.ServiceRequestRepository) *AdminHandler {
	return &AdminHandler{Invoices: invoices, Requests: requests}
}

// DashboardHandler handles GET /api/admin/dashboard: invoice counts by
// status, revenue collected this month, and open ticket counts.
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	logger := utils.GetLogger()

	invoiceCounts, err := h.Invoices.CountByStatus()
	if err != nil {
		logger.Error("Dashboard invoice counts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	requestCounts, err := h.Requests.CountByStatus()
	if err != nil {
		logger.Error("Dashboard request counts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthRevenue, err := h.Invoices.RevenueSince(monthStart)
	if err != nil {
		logger.Error("Dashboard revenue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":     invoiceCounts,
		"requests":     requestCounts,
		"monthRevenue": monthRevenue,
		"generatedAt":  now,
	})
}
