package routes

import (
	"net/http"
	"time"

	"rentvehicle/handlers"
	"rentvehicle/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/social-login", handlers.SocialLogin)
		api.POST("/admin/login", handlers.AdminLoginInitiate)
		api.POST("/admin/verify", handlers.AdminLoginVerify)
		api.POST("/forgot-password", handlers.ForgotPassword)
		api.POST("/reset-password", handlers.ResetPassword)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(false))
		api.GET("/me", handlers.Me)
		api.PUT("/profile", handlers.UpdateProfile)
		api.POST("/change-password/request", handlers.RequestPasswordChange)
		api.POST("/change-password", handlers.ChangePassword)
		api.POST("/logout", handlers.Logout)
		api.POST("/logout-all", handlers.LogoutAll)
		api.POST("/fcm-token", handlers.RegisterFCMToken)
	}
}

// RegisterCatalogRoutes registers the public storefront catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine) {
	api := r.Group("/api/catalog")
	{
		api.GET("/types", handlers.ListVehicleTypes)
		api.GET("/models", handlers.SearchVehicleModels)
		api.GET("/models/:id", handlers.GetVehicleModel)
		api.GET("/brands", handlers.ListBrands)
		api.GET("/availability", handlers.CheckAvailability)
		api.GET("/models/:id/reviews", handlers.ListModelReviews)
	}
}

// RegisterReviewRoutes registers customer review endpoints.
func RegisterReviewRoutes(r *gin.Engine) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.AuthMiddleware(false))
		api.POST("", handlers.CreateReview)
		api.GET("/mine", handlers.ListMyReviews)
		api.PUT("/:id", handlers.UpdateReview)
		api.DELETE("/:id", handlers.DeleteReview)
	}
}

// RegisterBookingRoutes registers rental order endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(false))
		api.POST("", handlers.CreateBooking)
		api.GET("/mine", handlers.ListMyBookings)
		api.GET("/:id", handlers.GetBooking)
		api.POST("/:id/cancel", handlers.CancelBooking)
	}
}

// RegisterPaymentRoutes registers deposit endpoints.
func RegisterPaymentRoutes(r *gin.Engine) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.AuthMiddleware(false))
		api.POST("/intent", handlers.CreatePaymentIntent)
		api.POST("/confirm", handlers.ConfirmPayment)
		api.GET("/booking/:bookingId", handlers.GetPayment)
	}
}

// RegisterAdminRoutes registers back office endpoints.
func RegisterAdminRoutes(r *gin.Engine) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(false))
		api.Use(middleware.AdminMiddleware())

		api.POST("/types", handlers.CreateVehicleType)
		api.PUT("/types/:id", handlers.UpdateVehicleType)
		api.DELETE("/types/:id", handlers.DeleteVehicleType)

		api.POST("/models", handlers.CreateVehicleModel)
		api.PUT("/models/:id", handlers.UpdateVehicleModel)
		api.DELETE("/models/:id", handlers.DeleteVehicleModel)
		api.POST("/models/images", handlers.UploadVehicleImage)

		api.POST("/vehicles", handlers.CreateVehicleUnit)
		api.GET("/vehicles", handlers.ListVehicleUnits)
		api.PUT("/vehicles/:id/status", handlers.UpdateVehicleUnitStatus)

		api.GET("/bookings", handlers.ListAllBookings)
		api.POST("/bookings/:id/approve", handlers.ApproveBooking)
		api.POST("/bookings/:id/cancel", handlers.CancelBooking)
		api.POST("/bookings/:id/complete", handlers.CompleteBooking)

		api.GET("/users", handlers.ListUsers)
		api.POST("/users/:id/ban", handlers.BanUser)
		api.POST("/users/:id/unban", handlers.UnbanUser)

		api.GET("/reviews", handlers.ListAllReviews)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// SetupRoutes wires CORS and every route group onto the engine.
func SetupRoutes(r *gin.Engine, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r)
	RegisterCatalogRoutes(r)
	RegisterBookingRoutes(r)
	RegisterPaymentRoutes(r)
	RegisterReviewRoutes(r)
	RegisterAdminRoutes(r)
}
