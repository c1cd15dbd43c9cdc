package handlers

import (
	"net/http"
	"strconv"

	"stayease/models"
	"stayease/services/apartment"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ApartmentHandler serves the unit inventory endpoints.
type ApartmentHandler struct {
	Service apartment.ApartmentService
}

func NewApartmentHandler(svc apartment.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{Service: svc}
}

// pageParams reads skip/limit query parameters with sane bounds.
func pageParams(c *gin.Context) (int64, int64) {
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return skip, limit
}

// ListHandler handles GET /api/apartments.
func (h *ApartmentHandler) ListHandler(c *gin.Context) {
	skip, limit := pageParams(c)
	apartments, err := h.Service.List(c.Query("status"), c.Query("building"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, apartments)
}

// GetHandler handles GET /api/apartments/:id.
func (h *ApartmentHandler) GetHandler(c *gin.Context) {
	apt, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Apartment not found"})
		return
	}
	c.JSON(http.StatusOK, apt)
}

// CreateHandler handles POST /api/admin/apartments.
func (h *ApartmentHandler) CreateHandler(c *gin.Context) {
	var req models.Apartment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	apt, err := h.Service.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, apt)
}

// UpdateHandler handles PATCH /api/admin/apartments/:id.
func (h *ApartmentHandler) UpdateHandler(c *gin.Context) {
	var req struct {
		Building    string  `json:"building"`
		Floor       *int    `json:"floor"`
		AreaSqm     float64 `json:"areaSqm"`
		Bedrooms    *int    `json:"bedrooms"`
		MonthlyRent float64 `json:"monthlyRent"`
		Status      string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Building != "" {
		fields["building"] = req.Building
	}
	if req.Floor != nil {
		fields["floor"] = *req.Floor
	}
	if req.AreaSqm > 0 {
		fields["area_sqm"] = req.AreaSqm
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.MonthlyRent > 0 {
		fields["monthly_rent"] = req.MonthlyRent
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}

	apt, err := h.Service.Update(c.Param("id"), fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, apt)
}

// AssignResidentHandler handles POST /api/admin/apartments/:id/residents.
func (h *ApartmentHandler) AssignResidentHandler(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.AssignResident(c.Param("id"), req.UserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resident assigned"})
}

// UnassignResidentHandler handles DELETE /api/admin/apartments/:id/residents/:userId.
func (h *ApartmentHandler) UnassignResidentHandler(c *gin.Context) {
	if err := h.Service.UnassignResident(c.Param("id"), c.Param("userId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resident unassigned"})
}

// DeleteHandler handles DELETE /api/admin/apartments/:id.
func (h *ApartmentHandler) DeleteHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Apartment deleted"})
}
