// File: opsledger/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opsledger/config"
	"opsledger/cron"
	"opsledger/database"
	auditlogRepo "opsledger/database/repository/auditlog"
	directoryRepo "opsledger/database/repository/directory"
	ledgerRepo "opsledger/database/repository/ledger"
	sessionRepo "opsledger/database/repository/session"
	"opsledger/handlers"
	"opsledger/middleware"
	"opsledger/routes"
	"opsledger/services/audit"
	"opsledger/services/ledger"
	"opsledger/services/scheduling"
	"opsledger/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.ApplyCORS(router)

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()
	auditLog := auditlogRepo.NewMongoAuditLogRepo()
	financials := ledgerRepo.NewMongoLedgerRepo()
	directory := directoryRepo.NewMongoDirectoryRepo()

	if err := sessions.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure session indexes: %v", err)
	}
	if err := auditLog.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure audit log indexes: %v", err)
	}
	if err := financials.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure ledger indexes: %v", err)
	}

	// services.
	auditService := &audit.DefaultAuditService{Repo: auditLog}
	ledgerService := &ledger.DefaultLedgerService{Repo: financials, Sessions: sessions}
	sessionService := scheduling.NewSessionService(sessions, directory, auditService, ledgerService)

	// Repair any ledger gap left by a crash before taking traffic, then
	// keep sweeping in the background.
	if created, err := ledgerService.SweepOnce(); err != nil {
		logger.Sugar().Warnf("main: startup reconciliation sweep failed: %v", err)
	} else if created > 0 {
		logger.Sugar().Infof("main: startup sweep backfilled %d ledger entries", created)
	}
	cron.InitSweepWorker(ledgerService)

	// handlers and routes.
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	auditHandler := handlers.NewAuditHandler(auditService)
	financialHandler := handlers.NewFinancialHandler(ledgerService)

	authCache := utils.GetAuthCacheClient()
	routes.RegisterSessionRoutes(router, sessionHandler, authCache)
	routes.RegisterAuditRoutes(router, auditHandler, authCache)
	routes.RegisterFinanceRoutes(router, financialHandler, authCache)
	routes.RegisterHealthRoute(router)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), authCache}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
