package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ZETTAI-INC/AITUKAERUSTAF/config"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/api/handlers"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/billing"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/contact"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/email"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/logger"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/metrics"
	custommiddleware "github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/middleware"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/plans"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Prometheus metrics
	prometheusMetrics := metrics.New()

	// Plan catalog, immutable after this point
	catalog := plans.NewCatalog(cfg.StripePriceLight, cfg.StripePriceStandard, cfg.StripePricePremium)

	// Stripe processor. Left nil without credentials so the flows answer
	// "payment service unavailable" instead of crashing mid-request.
	var processor billing.Processor
	if cfg.StripeSecretKey != "" {
		processor = billing.NewStripeProcessor(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		log.Printf("✅ Stripe client initialized")
	} else {
		log.Printf("⚠️  STRIPE_SECRET_KEY is not set. Stripe features will be unavailable.")
	}

	billingService := billing.NewService(processor, catalog, cfg.FrontendURL, appLogger).
		WithRecorder(prometheusMetrics)

	emailService := email.NewService(cfg.EmailFrom, "オタスケAI", cfg.SendGridAPIKey)
	contactService := contact.NewService(emailService, cfg.EmailNotificationTo, appLogger).
		WithRecorder(prometheusMetrics)

	billingHandler := handlers.NewBillingHandler(billingService)
	webhookHandler := handlers.NewWebhookHandler(billingService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Rate limiters: form endpoints share one budget, webhooks get a
	// larger one since Stripe batches redeliveries
	apiRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	webhookRateLimiter := custommiddleware.NewRateLimiter(100, 20)

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())

	// Public probes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "Otasuke AI API",
			"version":     "0.1.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Payment intake + contact relay
	api := e.Group("/api", apiRateLimiter.RateLimitMiddleware())
	api.POST("/checkout", billingHandler.CreateCheckout)
	api.POST("/invoice", billingHandler.CreateInvoice)
	api.POST("/contact", contactHandler.Submit)

	// Webhook route reads its own raw body; no body-parsing middleware may
	// run before it or the signature check over the exact bytes breaks.
	e.POST("/api/webhooks", webhookHandler.HandleStripe, webhookRateLimiter.RateLimitMiddleware())

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 Otasuke AI API starting on %s", address)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d), webhooks 100 req/min", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
