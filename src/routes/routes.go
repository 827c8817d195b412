package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/anminfang-tamu/internal-order-book/src/config"
	"github.com/anminfang-tamu/internal-order-book/src/handlers"
	"github.com/anminfang-tamu/internal-order-book/src/middleware"
)

func SetupRoutes(app *fiber.App, orderHandler *handlers.OrderHandler, cfg *config.Config, metricsHandler http.Handler) {
	availability := middleware.NewAvailability(cfg.Availability.MaxInFlight)
	app.Use(availability.Middleware())
	app.Use(middleware.RequestLogger(cfg.Log.RequestLogging))

	api := app.Group("/api/v1")

	if !cfg.RateLimit.Disabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
		api.Use(rateLimiter.Middleware())
	}

	api.Post("/orders", orderHandler.SubmitOrder)
	api.Delete("/orders/:id", orderHandler.CancelOrder)
	api.Get("/orders/:id", orderHandler.GetOrder)
	api.Get("/orderbook", orderHandler.GetOrderBook)
	api.Get("/orderbook/best-bid", orderHandler.GetBestBid)
	api.Get("/orderbook/best-ask", orderHandler.GetBestAsk)
	api.Get("/orderbook/orders", orderHandler.GetOrdersAtPrice)
	api.Get("/stats", orderHandler.PerformanceStats)

	app.Get("/health", orderHandler.HealthCheck)
	if metricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))
	}
}
