package handlers

import (
	"errors"
	"net/http"

	"stayease/middleware"
	"stayease/services/user"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserService: svc}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var in user.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.UserService.Register(in)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed, please try again"})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.UserService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := h.UserService.RevokeAuthToken(p.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
