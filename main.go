package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayease/config"
	"stayease/cron"
	"stayease/database"
	apartmentRepoPkg "stayease/database/repository/apartment"
	invoiceRepoPkg "stayease/database/repository/invoice"
	postRepoPkg "stayease/database/repository/post"
	requestRepoPkg "stayease/database/repository/servicerequest"
	transactionRepoPkg "stayease/database/repository/transaction"
	userRepoPkg "stayease/database/repository/user"
	"stayease/handlers"
	"stayease/models"
	"stayease/routes"
	"stayease/services/apartment"
	"stayease/services/feed"
	"stayease/services/invoice"
	"stayease/services/notification"
	"stayease/services/payment"
	"stayease/services/servicerequest"
	"stayease/services/user"
	"stayease/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	cloudinaryStorage, err := utils.Cloudinary()
	if err != nil {
		// Media uploads degrade gracefully; everything else keeps working.
		logger.Sugar().Warnf("main: cloudinary storage unavailable: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	usersRepo := userRepoPkg.NewMongoUserRepo()
	apartmentsRepo := apartmentRepoPkg.NewMongoApartmentRepo()
	invoicesRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	transactionsRepo := transactionRepoPkg.NewMongoTransactionRepo()
	requestsRepo := requestRepoPkg.NewMongoServiceRequestRepo()
	postsRepo := postRepoPkg.NewMongoPostRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Users: usersRepo,
	}
	userService := &user.DefaultUserService{
		Repo: usersRepo,
	}
	apartmentService := &apartment.DefaultApartmentService{
		Repo:  apartmentsRepo,
		Users: usersRepo,
	}
	invoiceService := &invoice.DefaultInvoiceService{
		Repo:       invoicesRepo,
		Apartments: apartmentsRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		InvoiceRepo:     invoicesRepo,
		TransactionRepo: transactionsRepo,
		Notifier:        notificationService,
		Bank: models.BankAccount{
			BankID:      config.AppConfig.BankID,
			AccountNo:   config.AppConfig.BankAccountNo,
			AccountName: config.AppConfig.BankAccountName,
		},
		QRExpiry: time.Duration(config.AppConfig.QRExpiryMinutes) * time.Minute,
	}
	requestService := servicerequest.NewDefaultServiceRequestService(requestsRepo, notificationService)
	feedService := &feed.DefaultFeedService{
		Repo: postsRepo,
	}

	// Background jobs: daily overdue sweep and due-soon reminders.
	cron.InitInvoiceWorker(invoiceService, notificationService)
	scheduler := cron.StartScheduler(invoiceService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: usersRepo,

		Auth:       handlers.NewAuthHandler(userService),
		Users:      handlers.NewUserHandler(userService),
		Apartments: handlers.NewApartmentHandler(apartmentService),
		Invoices:   handlers.NewInvoiceHandler(invoiceService),
		Payments:   handlers.NewPaymentHandler(paymentService),
		Requests:   handlers.NewServiceRequestHandler(requestService),
		Feed:       handlers.NewFeedHandler(feedService),
		Admin:      handlers.NewAdminHandler(invoicesRepo, requestsRepo),
		Media:      handlers.NewMediaHandler(cloudinaryStorage),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
