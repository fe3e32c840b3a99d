package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/climatedash/emissions-dashboard/internal/api/http"
	"github.com/climatedash/emissions-dashboard/internal/assistant"
	"github.com/climatedash/emissions-dashboard/internal/cache"
	"github.com/climatedash/emissions-dashboard/internal/config"
	"github.com/climatedash/emissions-dashboard/internal/emissions"
	"github.com/climatedash/emissions-dashboard/internal/emissions/providers"
	"github.com/climatedash/emissions-dashboard/internal/scheduler"
	"github.com/climatedash/emissions-dashboard/internal/search"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Upstream climate API client with backoff + circuit breaker.
	climate := providers.NewClimateTraceClient(httpClient, cfg.ClimateAPIBaseURL)

	// One cache instance for the process, injected into the service.
	memCache := cache.NewMemory(cfg.CacheWindow)

	// Core aggregation service.
	service := emissions.NewService(climate, memCache)

	// Glue layers around the core.
	chat := assistant.New(httpClient, service, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	searcher := search.New(httpClient, cfg.SearchAPIURL, cfg.SearchAPIKey)

	// Scheduler that warms reference data and the landing-page views.
	warmer := scheduler.New(service, cfg.WarmInterval)
	if err := warmer.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer warmer.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "emissions-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "emissions-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, chat, searcher)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
