package handlers

import (
	"errors"
	"net/http"

	"stayease/middleware"
	"stayease/services/servicerequest"

	"github.com/gin-gonic/gin"
)

// ServiceRequestHandler serves maintenance tickets and their chat threads.
type ServiceRequestHandler struct {
	Service servicerequest.ServiceRequestService
}

func NewServiceRequestHandler(svc servicerequest.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{Service: svc}
}

// CreateHandler handles POST /api/requests.
func (h *ServiceRequestHandler) CreateHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var in servicerequest.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.Service.Create(p, in)
	if err != nil {
		var ve *servicerequest.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "fields": ve.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListMineHandler handles GET /api/requests. Residents see their own tickets;
// staff see all and may filter by status or assignee.
func (h *ServiceRequestHandler) ListMineHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	skip, limit := pageParams(c)

	var (
		requests interface{}
		err      error
	)
	if p.IsStaff() {
		requests, err = h.Service.ListAll(c.Query("status"), c.Query("assigneeId"), skip, limit)
	} else {
		requests, err = h.Service.ListForUser(p.UserID, skip, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetHandler handles GET /api/requests/:id.
func (h *ServiceRequestHandler) GetHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	req, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service request not found"})
		return
	}
	if req.UserID != p.UserID && req.AssigneeID != p.UserID && !p.IsStaff() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this request"})
		return
	}
	c.JSON(http.StatusOK, req)
}

// SetStatusHandler handles PUT /api/requests/:id/status (staff only).
func (h *ServiceRequestHandler) SetStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AssignHandler handles PUT /api/requests/:id/assignee (staff only).
func (h *ServiceRequestHandler) AssignHandler(c *gin.Context) {
	var req struct {
		AssigneeID string `json:"assigneeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.Assign(c.Request.Context(), c.Param("id"), req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddMessageHandler handles POST /api/requests/:id/messages.
func (h *ServiceRequestHandler) AddMessageHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Service.AddMessage(p, c.Param("id"), req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}
