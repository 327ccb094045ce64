// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/javajoker/shopbot/internal/config"
	"github.com/javajoker/shopbot/internal/handlers"
	"github.com/javajoker/shopbot/internal/middleware"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/utils"
)

const Version = "1.0.0"

type Deps struct {
	Catalog   *services.CatalogService
	Orders    *services.OrderService
	Reviews   *services.ReviewService
	Deliverer handlers.Deliverer
	// Submitter and WebhookSecret are only set in webhook mode.
	Submitter     handlers.Submitter
	WebhookSecret string
}

// Initialize builds the HTTP surface. ctx bounds the background sweepers of
// the rate limiters.
func Initialize(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Reviews)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Deliverer)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	generalLimiter := middleware.NewRateLimiter(ctx, rate.Every(100*time.Millisecond), 10) // 10 requests per second
	adminLimiter := middleware.NewRateLimiter(ctx, rate.Every(time.Second), 5)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})

	// Telegram update push, webhook mode only
	if deps.Submitter != nil {
		webhookHandler := handlers.NewWebhookHandler(deps.WebhookSecret, deps.Submitter)
		r.POST("/telegram/webhook/:secret", webhookHandler.Receive)
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		catalog := v1.Group("/catalog")
		catalog.Use(generalLimiter.Middleware())
		{
			catalog.GET("/categories", catalogHandler.GetCategories)
			catalog.GET("/categories/:category/products", catalogHandler.GetCategoryProducts)
			catalog.GET("/products/:id", catalogHandler.GetProduct)
		}

		admin := v1.Group("/admin")
		admin.Use(adminLimiter.Middleware())
		admin.Use(middleware.AdminRequired(cfg.Bot.AdminID))
		{
			admin.GET("/orders/:id", orderHandler.GetOrder)
			admin.POST("/orders/:id/deliver", orderHandler.DeliverOrder)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "Route")
	})

	return r
}
