package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/atlascrm/backend/internal/application/billing"
	companyapp "github.com/atlascrm/backend/internal/application/company"
	deletionapp "github.com/atlascrm/backend/internal/application/deletion"
	partnerapp "github.com/atlascrm/backend/internal/application/partner"
	reportapp "github.com/atlascrm/backend/internal/application/report"
	treasuryapp "github.com/atlascrm/backend/internal/application/treasury"
	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/infrastructure/auth"
	"github.com/atlascrm/backend/internal/infrastructure/cache"
	"github.com/atlascrm/backend/internal/infrastructure/config"
	"github.com/atlascrm/backend/internal/infrastructure/logger"
	"github.com/atlascrm/backend/internal/infrastructure/persistence"
	"github.com/atlascrm/backend/internal/infrastructure/storage"
	"github.com/atlascrm/backend/internal/interfaces/http/handler"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/atlascrm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const policyCacheTTL = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Atlas backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the deletion policy cache. The cache degrades to direct
	// repository reads when Redis is down, so startup does not fail on it.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unreachable at startup, policy cache degraded", zap.Error(err))
	}

	// Object storage for record attachments
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Initialize repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	disbursementRepo := persistence.NewGormDisbursementRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	sourceRepo := persistence.NewGormSourceRepository(db.DB)
	deletionRequestRepo := persistence.NewGormDeletionRequestRepository(db.DB)
	deletionPolicyRepo := persistence.NewGormDeletionPolicyRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	policyCache := cache.NewRedisPolicyCache(redisClient, deletionPolicyRepo, policyCacheTTL, log)

	// Initialize application services
	companyService := companyapp.NewService(companyRepo, log)
	partnerService := partnerapp.NewService(clientRepo, supplierRepo, log)
	documentService := billingapp.NewDocumentService(
		invoiceRepo, purchaseOrderRepo, clientRepo, supplierRepo, uow, log,
	)
	paymentService := billingapp.NewPaymentService(
		paymentRepo, invoiceRepo, purchaseOrderRepo,
		receiptRepo, disbursementRepo, clientRepo, supplierRepo, uow, log,
	)
	treasuryService := treasuryapp.NewCategoryService(categoryRepo, sourceRepo, log)
	reportService := reportapp.NewFinanceReportService(financeReportRepo, companyRepo, log)

	deletionService := deletionapp.NewService(
		deletionRequestRepo, policyCache, companyRepo, objectStorage, uow, log,
	)
	deletionService.RegisterDeleter(deletion.RecordTypeClients, persistence.NewClientDeleter(db.DB, attachmentRepo))
	deletionService.RegisterDeleter(deletion.RecordTypeSuppliers, persistence.NewSupplierDeleter(db.DB, attachmentRepo))
	deletionService.RegisterDeleter(deletion.RecordTypeInvoices, persistence.NewInvoiceDeleter(db.DB, attachmentRepo))
	deletionService.RegisterDeleter(deletion.RecordTypePurchaseOrder, persistence.NewPurchaseOrderDeleter(db.DB, attachmentRepo))
	deletionService.RegisterDeleter(deletion.RecordTypeReceipts, persistence.NewReceiptDeleter(db.DB, attachmentRepo))
	deletionService.RegisterDeleter(deletion.RecordTypeDisbursements, persistence.NewDisbursementDeleter(db.DB, attachmentRepo))

	policyService := deletionapp.NewPolicyService(deletionPolicyRepo, policyCache, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging can tag
	// entries, then security headers and CORS, then authentication.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
		},
	}))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewCompanyHandler(companyService)).
		Register(handler.NewPartnerHandler(partnerService)).
		Register(handler.NewBillingHandler(documentService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewTreasuryHandler(treasuryService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewDeletionHandler(deletionService, policyService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
