package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"travelex-backend/controllers"
	"travelex-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
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

// SetupRouter wires the controllers onto the gin engine.
func SetupRouter(
	auth *controllers.AuthController,
	users *controllers.UserController,
	destinations *controllers.DestinationController,
	bookings *controllers.BookingController,
	reviews *controllers.ReviewController,
	activity *controllers.ActivityController,
	analytics *controllers.AnalyticsController,
	currencies *controllers.CurrencyController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
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

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", auth.Register)
			authRoutes.POST("/login", auth.Login)
		}

		destRoutes := api.Group("/destinations")
		{
			destRoutes.GET("", destinations.GetDestinations)
			destRoutes.GET("/:id", destinations.GetDestination)
			destRoutes.GET("/:id/reviews", reviews.GetDestinationReviews)
			destRoutes.GET("/:id/reviews/stats", reviews.GetReviewStats)
			destRoutes.POST("/:id/reviews", middleware.RequireAuth(), reviews.CreateReview)
		}

		bookingRoutes := api.Group("/bookings", middleware.RequireAuth())
		{
			bookingRoutes.POST("", bookings.CreateBooking)
			bookingRoutes.GET("", bookings.GetMyBookings)
			bookingRoutes.GET("/:id", bookings.GetBooking)
			bookingRoutes.PATCH("/:id", bookings.UpdateBooking)
			bookingRoutes.POST("/:id/cancel", bookings.CancelBooking)
		}

		currencyRoutes := api.Group("/currencies")
		{
			currencyRoutes.GET("", currencies.GetCurrencies)
			currencyRoutes.GET("/preference", middleware.RequireAuth(), currencies.GetPreference)
			currencyRoutes.PUT("/preference", middleware.RequireAuth(), currencies.SetPreference)
		}

		admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/users", users.GetUsers)
			admin.POST("/users", users.CreateUser)
			admin.GET("/users/:id", users.GetUser)
			admin.PUT("/users/:id", users.UpsertUser)
			admin.PATCH("/users/:id", users.UpdateUser)
			admin.DELETE("/users/:id", users.DeleteUser)

			admin.GET("/destinations/stats", destinations.GetDestinationsWithStats)
			admin.POST("/destinations", destinations.CreateDestination)
			admin.PUT("/destinations/:id", destinations.UpdateDestination)
			admin.DELETE("/destinations/:id", destinations.DeleteDestination)

			admin.GET("/bookings", bookings.GetAllBookings)

			admin.GET("/activity-logs", activity.GetActivityLogs)

			admin.GET("/analytics/revenue", analytics.GetRevenue)
			admin.GET("/analytics/bookings", analytics.GetBookingStats)
			admin.GET("/analytics/users", analytics.GetUserStats)
		}
	}

	return r
}
