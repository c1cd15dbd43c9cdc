package routes

import (
	"net/http"
	"time"

	"stayease/handlers"
	"stayease/middleware"
	"stayease/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login, and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers the authenticated profile surface.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.MeHandler)
		api.PATCH("/me", hb.Users.UpdateMeHandler)
		api.PUT("/me/fcm-token", hb.Users.UpdateFCMTokenHandler)
		api.PUT("/me/notifications/read", hb.Users.MarkNotificationsReadHandler)
	}
}

// RegisterApartmentRoutes registers the read-only unit inventory.
func RegisterApartmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/apartments")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.Apartments.ListHandler)
		api.GET("/:id", hb.Apartments.GetHandler)
	}
}

// RegisterInvoiceRoutes registers invoice viewing and the payment workflow.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.Invoices.ListMineHandler)
		api.GET("/:id", hb.Invoices.GetHandler)
		api.GET("/:id/transactions", hb.Payments.ListInvoiceTransactionsHandler)
		api.POST("/:id/generate-qr", hb.Payments.GenerateQRHandler)
		api.POST("/:id/confirm-payment", hb.Payments.ConfirmPaymentHandler)
	}

	txns := r.Group("/api/transactions")
	{
		txns.Use(middleware.AuthMiddleware(hb.UserRepo))
		txns.GET("", hb.Payments.ListMyTransactionsHandler)
	}
}

// RegisterPaymentCallbackRoute registers the unauthenticated gateway
// callback. The sandbox gateway delivers either a GET with query parameters
// or a POST with a JSON body.
func RegisterPaymentCallbackRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/payment/callback", hb.Payments.CallbackHandler)
	r.POST("/api/payment/callback", hb.Payments.CallbackHandler)
}

// RegisterServiceRequestRoutes registers maintenance tickets and their chat.
func RegisterServiceRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("", hb.Requests.CreateHandler)
		api.GET("", hb.Requests.ListMineHandler)
		api.GET("/:id", hb.Requests.GetHandler)
		api.POST("/:id/messages", hb.Requests.AddMessageHandler)

		staff := api.Group("")
		staff.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		staff.PUT("/:id/status", hb.Requests.SetStatusHandler)
		staff.PUT("/:id/assignee", hb.Requests.AssignHandler)
	}
}

// RegisterFeedRoutes registers the community feed.
func RegisterFeedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/posts")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.Feed.ListHandler)
		api.GET("/:id", hb.Feed.GetHandler)
		api.POST("", hb.Feed.CreateHandler)
		api.DELETE("/:id", hb.Feed.DeleteHandler)
		api.POST("/:id/comments", hb.Feed.AddCommentHandler)
		api.DELETE("/:id/comments/:commentId", hb.Feed.DeleteCommentHandler)
		api.PUT("/:id/like", hb.Feed.LikeHandler)
		api.DELETE("/:id/like", hb.Feed.UnlikeHandler)
	}
}

// RegisterMediaRoutes registers authenticated media uploads.
func RegisterMediaRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/media")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/upload", hb.Media.UploadHandler)
	}
}

// RegisterAdminRoutes registers the management surface.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.Use(middleware.RequireRoles(models.RoleAdmin))

		api.GET("/dashboard", hb.Admin.DashboardHandler)

		api.GET("/users", hb.Users.ListUsersHandler)
		api.PUT("/users/:id/role", hb.Users.SetRoleHandler)
		api.DELETE("/users/:id", hb.Users.DeleteUserHandler)

		api.POST("/apartments", hb.Apartments.CreateHandler)
		api.PATCH("/apartments/:id", hb.Apartments.UpdateHandler)
		api.POST("/apartments/:id/residents", hb.Apartments.AssignResidentHandler)
		api.DELETE("/apartments/:id/residents/:userId", hb.Apartments.UnassignResidentHandler)
		api.DELETE("/apartments/:id", hb.Apartments.DeleteHandler)

		api.GET("/invoices", hb.Invoices.ListAllHandler)
		api.GET("/invoices/due-soon", hb.Invoices.DueSoonHandler)
		api.POST("/invoices", hb.Invoices.CreateHandler)
		api.POST("/invoices/:id/cancel", hb.Invoices.CancelHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm StayEase"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterApartmentRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterPaymentCallbackRoute(r, hb)
	RegisterServiceRequestRoutes(r, hb)
	RegisterFeedRoutes(r, hb)
	RegisterMediaRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
