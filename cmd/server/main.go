// Package main is the entry point for the facturis API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"facturis/internal/domain/client"
	"facturis/internal/domain/company"
	"facturis/internal/domain/invoice"
	v1 "facturis/internal/infrastructure/http/v1"
	"facturis/internal/infrastructure/numbering"
	"facturis/internal/infrastructure/storage/postgres"
	"facturis/internal/infrastructure/storage/postgres/invoice_repo"
	"facturis/internal/infrastructure/storage/postgres/record_repo"
	"facturis/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting facturis server")

	// --- Database connection ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if getEnv("AUTO_MIGRATE", "false") == "true" {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to apply schema", "error", err)
		}
	}

	// --- Transaction manager and repositories ---
	txManager := postgres.NewTxManager(pool)

	companyRepo := record_repo.NewCompanyRepo(txManager)
	clientRepo := record_repo.NewClientRepo(txManager)
	invoiceRepo := invoice_repo.NewInvoiceRepo(txManager)

	// --- Numbering allocator ---
	allocator := numbering.NewService(txManager)

	// --- Domain services ---
	companyService := company.NewService(companyRepo)
	clientService := client.NewService(clientRepo, companyRepo)
	invoiceService := invoice.NewService(
		invoiceRepo,
		companyRepo,
		clientRepo,
		allocator,
		txManager,
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		CompanyService: companyService,
		ClientService:  clientService,
		InvoiceService: invoiceService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
