package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-extract/bot"
	"invoice-extract/config"
	"invoice-extract/database"
	"invoice-extract/handlers"
	"invoice-extract/logger"
	"invoice-extract/middleware"
	"invoice-extract/ocr"
	"invoice-extract/repository"
	"invoice-extract/storage"
	"invoice-extract/whatsapp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(nil).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.Database, cfg.Log.GormMode, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	objects, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("failed to create object storage", zap.Error(err))
	}
	if cfg.Storage.Endpoint != "" {
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn("failed to ensure storage bucket", zap.String("bucket", objects.Bucket()), zap.Error(err))
		}
	}

	ocrCfg, err := storage.LoadAWSConfig(ctx, cfg.OCR.Region, cfg.Storage.AccessKey, cfg.Storage.SecretKey)
	if err != nil {
		log.Fatal("failed to create OCR client config", zap.Error(err))
	}
	recognizer := ocr.NewTextractRecognizer(ocrCfg, objects.Bucket(), log)

	wa := whatsapp.NewClient(cfg.WhatsApp, whatsapp.WithLogger(log))
	registrations := repository.NewRegistrationRepository(db)
	transactions := repository.NewTransactionRepository(db)

	pipeline := bot.NewPipeline(wa, objects, recognizer, transactions, wa, bot.WithLogger(log))
	router := bot.NewRouter(registrations, wa, pipeline, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := setupRouter(cfg, log, db, router, registrations, transactions)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}

func setupRouter(
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	router handlers.EventRouter,
	registrations *repository.RegistrationRepository,
	transactions *repository.TransactionRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(log))
	r.Use(logger.Recovery(log))

	corsCfg := cors.DefaultConfig()
	if slices.Contains(cfg.HTTP.CORSAllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderRequestID}
	corsCfg.ExposeHeaders = []string{middleware.HeaderRequestID, "Content-Disposition"}
	r.Use(cors.New(corsCfg))

	webhook := handlers.NewWebhookHandler(router, cfg.WhatsApp.VerifyToken, log)
	r.GET("/webhook", webhook.Verify)
	r.POST("/webhook", webhook.Receive)
	r.GET("/health", handlers.NewHealthHandler(db, log).Health)

	if !cfg.Admin.Enabled() {
		log.Info("admin API disabled")
		return r
	}

	r.POST("/login", handlers.NewAuthHandler(cfg.Admin, log).Login)

	admin := handlers.NewAdminHandler(registrations, transactions, log)
	txs := handlers.NewTransactionHandler(transactions, log)
	export := handlers.NewExportHandler(transactions, log)

	api := r.Group("/api")
	api.Use(middleware.JwtAuthMiddleware(cfg.Admin.JWTSecret))
	{
		api.GET("/registrations", admin.GetRegistrations)
		api.GET("/registrations/:phone/stats", admin.GetRegistrationStats)
		api.GET("/transactions", txs.GetTransactions)
		api.GET("/export", export.ExportExcel)
	}
	return r
}
