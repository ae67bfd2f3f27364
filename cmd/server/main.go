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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/surveypay/backend/internal/config"
	"github.com/surveypay/backend/internal/handler"
	appMiddleware "github.com/surveypay/backend/internal/middleware"
	"github.com/surveypay/backend/internal/repository"
	"github.com/surveypay/backend/internal/service"
	"github.com/surveypay/backend/internal/survey"
	"github.com/surveypay/backend/pkg/notify"
	"github.com/surveypay/backend/pkg/payment"
	"github.com/surveypay/backend/pkg/sheets"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx := context.Background()

	// Initialize database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database error: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := repository.RunMigrations(ctx, db); err != nil {
		log.Fatalf("❌ Migration error: %v", err)
	}
	log.Println("✅ Database connected & migrated")

	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, userRepo)

	// Seed admin user on first startup
	if err := authSvc.SeedAdmin(ctx); err != nil {
		log.Fatalf("❌ Admin seed error: %v", err)
	}

	// Survey extraction pipeline
	fetcher := survey.NewFetcher(cfg.FetchTimeout, cfg.FetchProxies)
	detector := survey.NewDetector(
		survey.NewGoogleFormsExtractor(fetcher),
		survey.NewTypeformExtractor(fetcher),
		survey.NewSurveyMonkeyExtractor(fetcher),
	)
	resolver := survey.NewShortlinkResolver(cfg.FetchTimeout)
	extractionSvc := service.NewExtractionService(detector, resolver)

	// Payment gateway
	var gateway payment.Gateway
	if cfg.PaymentAPIURL != "" && cfg.PaymentAPIKey != "" {
		gateway = payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey, 30*time.Second)
		log.Println("✅ Payment provider configured")
	} else {
		gateway = payment.NewMockGateway()
		log.Println("⚠️  PAYMENT_API_URL not set, using mock payment gateway")
	}
	if cfg.PaymentWebhookSecret == "" {
		log.Println("⚠️  PAYMENT_WEBHOOK_SECRET is empty — all webhook deliveries will be rejected")
	}

	// Repositories & services
	submissionRepo := repository.NewSubmissionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	failureRepo := repository.NewFailureRepository(db)

	checkoutSvc := service.NewCheckoutService(submissionRepo, transactionRepo, extractionSvc, gateway)
	reconcileSvc := service.NewReconcileService(transactionRepo, submissionRepo, failureRepo, nil, nil)

	// Reconciliation side effects (optional integrations)
	if cfg.SheetAPIURL != "" {
		reconcileSvc.UseSheet(sheets.NewClient(cfg.SheetAPIURL, cfg.SheetAPIKey, 15*time.Second))
		log.Println("✅ Sheet gateway configured")
	}
	if cfg.SMTPHost != "" {
		reconcileSvc.UseMailer(notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom))
		log.Println("✅ SMTP mailer configured")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authSvc)
	healthHandler := handler.NewHealthHandler(db)
	extractHandler := handler.NewExtractHandler(extractionSvc)
	submissionHandler := handler.NewSubmissionHandler(checkoutSvc)
	webhookHandler := handler.NewWebhookHandler(reconcileSvc, cfg.PaymentWebhookSecret)
	adminHandler := handler.NewAdminHandler(transactionRepo, submissionRepo, failureRepo)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Callback-Signature"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(20, 40)
	r.Use(globalRL.Middleware())

	// Health check and public routes (no auth)
	r.Get("/health", healthHandler.Check)
	r.Post("/api/extract", extractHandler.Extract)
	r.Post("/api/submissions", submissionHandler.Create)
	r.Get("/api/submissions/{id}", submissionHandler.GetByID)
	r.Post("/api/payment/webhook", webhookHandler.HandlePayment) // Public webhook

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.StrictRateLimiter())
		r.Post("/api/auth/login", authHandler.Login)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Auth(authSvc))
		r.Use(appMiddleware.AdminOnly)
		r.Get("/api/admin/transactions", adminHandler.ListTransactions)
		r.Get("/api/admin/submissions", adminHandler.ListSubmissions)
		r.Get("/api/admin/reconciliation-failures", adminHandler.ListReconciliationFailures)
	})

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("🛑 Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("🚀 SurveyPay Backend listening at http://%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
}
