package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"conciergerie-backend/controllers"
	"conciergerie-backend/middleware"
	"conciergerie-backend/models"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

type Controllers struct {
	Bookings   *controllers.BookingController
	Properties *controllers.PropertyController
	Users      *controllers.UserController
	Auth       *controllers.AuthController
	Payments   *controllers.PaymentController
}

// SetupRouter wires every API route. Tokens are checked with parser.
func SetupRouter(ctl Controllers, parser middleware.TokenParser, corsOrigins string, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(log), gin.Recovery())

	origins := parseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.Auth(parser)
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("/property/:id/booked-dates", ctl.Bookings.GetBookedDates)
			bookings.GET("/:id", ctl.Bookings.GetBooking)
			bookings.PATCH("/:id/cancel", ctl.Bookings.CancelBooking)
			bookings.PATCH("/:id/confirm", ctl.Bookings.ConfirmBooking)
			bookings.PATCH("/:id/complete", ctl.Bookings.CompleteBooking)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", ctl.Properties.GetProperties)
			properties.GET("/featured", ctl.Properties.GetFeatured)
			properties.GET("/slug/:slug", ctl.Properties.GetPropertyBySlug)
			properties.GET("/:id", ctl.Properties.GetProperty)

			properties.POST("", requireAuth, adminOnly, ctl.Properties.CreateProperty)
			properties.PATCH("/:id", requireAuth, adminOnly, ctl.Properties.UpdateProperty)
			properties.DELETE("/:id", requireAuth, adminOnly, ctl.Properties.DeleteProperty)
		}

		users := api.Group("/users")
		{
			users.GET("", ctl.Users.GetUsers)
			users.GET("/:id", ctl.Users.GetUser)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", ctl.Auth.Register)
			auth.POST("/login", ctl.Auth.Login)
			auth.GET("/profile", requireAuth, ctl.Auth.Profile)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/create-intent", ctl.Payments.CreateIntent)
			payments.POST("/webhook", ctl.Payments.Webhook)
			payments.GET("/booking/:bookingId", ctl.Payments.GetPaymentByBooking)
			payments.GET("/:id", ctl.Payments.GetPayment)
		}
	}

	return r
}
