package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/anminfang-tamu/internal-order-book/src/config"
	"github.com/anminfang-tamu/internal-order-book/src/engine"
	"github.com/anminfang-tamu/internal-order-book/src/feed"
	"github.com/anminfang-tamu/internal-order-book/src/handlers"
	"github.com/anminfang-tamu/internal-order-book/src/logger"
	"github.com/anminfang-tamu/internal-order-book/src/perf"
	"github.com/anminfang-tamu/internal-order-book/src/routes"
	"github.com/anminfang-tamu/internal-order-book/src/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)
	defer logger.Close()

	log.Info().Msg("Initializing order book service")

	eng := engine.NewEngine()
	tracker := perf.NewTracker()

	var publisher feed.Publisher = feed.Noop{}
	if len(cfg.Feed.Brokers) > 0 {
		kafkaPub := feed.NewKafkaPublisher(cfg.Feed.Brokers, cfg.Feed.Topic)
		defer kafkaPub.Close()
		publisher = kafkaPub
		log.Info().
			Strs("brokers", cfg.Feed.Brokers).
			Str("topic", cfg.Feed.Topic).
			Msg("Trade feed enabled")
	}

	facade := service.NewFacade(eng, tracker, publisher)
	orderHandler := handlers.NewOrderHandler(facade, cfg.Book)
	metricsHandler := perf.NewMetricsHandler(tracker, eng.ActiveOrders)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Error().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Int("status", code).
				Str("error", err.Error()).
				Msg("Request error")
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	routes.SetupRoutes(app, orderHandler, cfg, metricsHandler)

	serverError := make(chan error, 1)
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			// edge case: ignore shutdown errors, only report real failures
			if err.Error() != "server is shutting down" {
				serverError <- err
			}
		}
	}()

	select {
	case err := <-serverError:
		log.Fatal().
			Err(err).
			Str("port", cfg.Server.Port).
			Msg("Server failed to start")
	default:
		log.Info().
			Str("port", cfg.Server.Port).
			Msg("Order book service started")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	log.Info().Msg("Received shutdown signal, shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().
				Dur("timeout", cfg.Server.ShutdownTimeout).
				Msg("Shutdown timeout exceeded")
		} else {
			log.Error().Err(err).Msg("Error during shutdown")
		}
	} else {
		log.Info().Msg("Shutdown complete")
	}
}
