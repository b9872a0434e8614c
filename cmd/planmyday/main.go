package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hoangvvo/llm-sdk/sdk-go/google"

	httpapi "github.com/nvegesna/planmyday/internal/api/http"
	"github.com/nvegesna/planmyday/internal/config"
	"github.com/nvegesna/planmyday/internal/geo"
	"github.com/nvegesna/planmyday/internal/logging"
	"github.com/nvegesna/planmyday/internal/mailer"
	"github.com/nvegesna/planmyday/internal/news"
	"github.com/nvegesna/planmyday/internal/planner"
	"github.com/nvegesna/planmyday/internal/poi"
	"github.com/nvegesna/planmyday/internal/scheduler"
	"github.com/nvegesna/planmyday/internal/session"
	"github.com/nvegesna/planmyday/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	// Shared HTTP client for outbound lookups. Deadlines come from per-call
	// contexts, so no client-wide timeout here.
	httpClient := &http.Client{}

	geocoder := geo.NewGeocoder(httpClient, cfg.GeoBaseURL, cfg.LookupTimeout)
	weatherSvc := weather.NewService(
		geocoder,
		weather.NewClient(httpClient, cfg.ForecastBaseURL, cfg.LookupTimeout),
		logger,
	)
	newsSvc := news.NewService(
		news.NewClient(httpClient, cfg.NewsBaseURL, news.FeedParams{
			HL:   cfg.NewsHL,
			GL:   cfg.NewsGL,
			CEID: cfg.NewsCEID,
		}, cfg.LookupTimeout),
		logger,
	)
	poiSvc := poi.NewService(
		geocoder,
		poi.NewClient(httpClient, cfg.OverpassBaseURL, cfg.OverpassTimeout),
		logger,
	)

	// Agent crew on a shared Gemini model and tool services.
	model := google.NewGoogleModel(cfg.PlanModel, google.GoogleModelOptions{APIKey: cfg.GoogleAPIKey})
	toolbelt := &planner.Toolbelt{
		Weather: weatherSvc,
		News:    newsSvc,
		Venues:  poiSvc,
		Logger:  logger,
	}
	workflow := planner.NewWorkflow(model, toolbelt, logger)

	// In-memory plan runs plus the background runner that settles them.
	store := session.NewMemoryStore()
	runner := session.NewRunner(store, workflow, cfg.PlanTimeout, logger)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if !mail.Configured() {
		logger.Info("smtp not configured; email delivery disabled")
	}

	// Scheduler that periodically prunes settled plan runs.
	sched := scheduler.New(store, cfg.SessionPruneInterval, cfg.SessionRetention, logger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "planmyday",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(fiberlog.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "planmyday",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Store:  store,
		Runner: runner,
		Mailer: mail,
		Logger: logger,
	})

	go func() {
		logger.Info("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
