package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentvehicle/config"
	"rentvehicle/cron"
	"rentvehicle/database"
	bookingRepoPkg "rentvehicle/database/repository/booking"
	paymentRepoPkg "rentvehicle/database/repository/payment"
	reviewRepoPkg "rentvehicle/database/repository/review"
	userRepoPkg "rentvehicle/database/repository/user"
	vehicleRepoPkg "rentvehicle/database/repository/vehicle"
	"rentvehicle/handlers"
	"rentvehicle/middleware"
	"rentvehicle/routes"
	"rentvehicle/services/auth"
	"rentvehicle/services/booking"
	"rentvehicle/services/notification"
	"rentvehicle/services/payment"
	"rentvehicle/services/review"
	"rentvehicle/services/tasks"
	userService "rentvehicle/services/user"
	"rentvehicle/services/vehicle"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer utils.SyncLogger()

	database.InitDB()
	defer database.CloseDB()
	utils.InitRedis()
	utils.FirebaseInit()

	if config.AppConfig.CloudinaryCloudName != "" {
		storageService, err := utils.Cloudinary()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
		handlers.StorageSvc = storageService
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	typeRepo := vehicleRepoPkg.NewMongoVehicleTypeRepo()
	modelRepo := vehicleRepoPkg.NewMongoVehicleModelRepo()
	unitRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	mailer := tasks.NewMailer()
	defer mailer.Close()

	handlers.AuthSvc = &auth.DefaultAuthService{Repo: userRepo}
	handlers.VehicleSvc = &vehicle.DefaultVehicleService{
		Types:  typeRepo,
		Models: modelRepo,
		Units:  unitRepo,
	}
	handlers.BookingSvc = &booking.DefaultBookingService{
		Bookings: bookingRepo,
		Units:    unitRepo,
		Models:   modelRepo,
		Users:    userRepo,
		Notifier: notificationService,
		Mail:     mailer,
	}
	handlers.PaymentSvc = &payment.DefaultPaymentService{
		Payments: paymentRepo,
		Bookings: bookingRepo,
	}
	handlers.ReviewSvc = &review.DefaultReviewService{
		Reviews:  reviewRepo,
		Bookings: bookingRepo,
		Users:    userRepo,
	}
	handlers.UserSvc = &userService.DefaultUserService{Repo: userRepo}

	// Background mail worker.
	cron.InitMailWorker()

	routes.SetupRoutes(router, []string{"*"})

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
