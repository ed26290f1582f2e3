// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"selvatours/internal/booking"
	"selvatours/internal/catalog"
	"selvatours/internal/notifications"
	"selvatours/internal/shared/config"
	"selvatours/internal/shared/database"
	"selvatours/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config      *config.Config
	db          *database.DB
	relay       notifications.Service
	catalogRepo catalog.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, relay notifications.Service, catalogRepo catalog.Repository) *Router {
	return &Router{
		config:      cfg,
		db:          db,
		relay:       relay,
		catalogRepo: catalogRepo,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "selvatours-backend",
			})
			return
		}

		if err := r.relay.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "degraded",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "selvatours-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "selvatours-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupCatalogRoutes configures tour and transfer catalog routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogService := catalog.NewService(r.catalogRepo)
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupBookingRoutes configures the booking request flow
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedis())
	pendingStore := booking.NewPendingStore(cacheService, r.config.Booking.ConfirmationTTL)

	bookingService := booking.NewService(r.catalogRepo, pendingStore, r.relay, r.config.Booking.ConfirmationTTL)
	bookingController := booking.NewController(bookingService)

	booking.SetupBookingRoutes(rg, bookingController)
}
