package handlers

import (
	"net/http"

	"stayease/middleware"
	"stayease/models"
	"stayease/services/user"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves profile and account endpoints.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	u, err := h.UserService.GetUserByID(p.UserID)
	if err != nil {
		utils.GetLogger().Error("User not found", zap.String("id", p.UserID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateMeHandler handles PATCH /api/users/me.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = p.UserID

	updated, err := h.UserService.UpdateUser(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateFCMTokenHandler handles PUT /api/users/me/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.UserService.UpdateFCMToken(p.UserID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token updated"})
}

// MarkNotificationsReadHandler handles PUT /api/users/me/notifications/read.
func (h *UserHandler) MarkNotificationsReadHandler(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	if err := h.UserService.MarkNotificationsRead(p.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked read"})
}

// ListUsersHandler handles GET /api/admin/users.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.UserService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetRoleHandler handles PUT /api/admin/users/:id/role.
func (h *UserHandler) SetRoleHandler(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.UserService.SetRole(c.Param("id"), req.Role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// DeleteUserHandler handles DELETE /api/admin/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.UserService.DeleteUser(id); err != nil {
		utils.GetLogger().Error("Delete error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
