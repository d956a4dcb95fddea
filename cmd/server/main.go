package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"invoice-backend/internal/config"
	"invoice-backend/internal/database"
	"invoice-backend/internal/db"
	"invoice-backend/internal/handlers"
	"invoice-backend/internal/health"
	h "invoice-backend/internal/http"
	"invoice-backend/internal/middleware"
	"invoice-backend/internal/repositories"
	"invoice-backend/internal/services"
	"invoice-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	invoiceService := services.NewInvoiceService(invoiceRepo)
	importService := services.NewImportService(invoiceRepo)

	// Initialize handlers
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	uploadHandler := handlers.NewUploadHandler(importService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(invoiceHandler, uploadHandler, healthHandler)

	// Wrap with panic recovery and metrics middleware
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
