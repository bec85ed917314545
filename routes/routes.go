package routes

import (
	"net/http"
	"time"

	"festa/handlers"
	"festa/middleware"
	"festa/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates everything route registration needs.
type HandlerBundle struct {
	AuthService auth.AuthService

	Auth     *handlers.AuthHandler
	Provider *handlers.ProviderHandler
	Search   *handlers.SearchHandler
	Booking  *handlers.BookingHandler
}

// RegisterAuthRoutes registers the session/identity endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterProviderRoutes registers catalog search and management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public catalog endpoints.
		api.GET("", hb.Search.SearchProvidersHandler)
		api.GET("/:id", hb.Provider.GetProviderHandler)
		api.GET("/:id/calendar", hb.Provider.CalendarHandler)

		// Mutations require an authenticated provider session.
		protected := api.Group("")
		protected.Use(middleware.SessionMiddleware(hb.AuthService))
		protected.POST("", hb.Provider.CreateProviderHandler)
		protected.GET("/me/profile", hb.Provider.GetOwnProviderHandler)
		protected.PATCH("/:id", hb.Provider.UpdateProviderHandler)
		protected.POST("/:id/packages", hb.Provider.AddPackageHandler)
		protected.PUT("/:id/packages/:pkgID", hb.Provider.UpdatePackageHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.SessionMiddleware(hb.AuthService))
		api.POST("", hb.Booking.RequestBookingHandler)
		api.GET("", hb.Booking.ListBookingsHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.POST("/:id/accept", hb.Booking.AcceptBookingHandler)
		api.POST("/:id/reject", hb.Booking.RejectBookingHandler)
		api.POST("/:id/cancel", hb.Booking.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Festa"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
