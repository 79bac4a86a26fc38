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

	"github.com/isdelr/storefront-be/internal/api"
	"github.com/isdelr/storefront-be/internal/auth"
	"github.com/isdelr/storefront-be/internal/config"
	"github.com/isdelr/storefront-be/internal/database"
	"github.com/isdelr/storefront-be/internal/logger"
	"github.com/isdelr/storefront-be/internal/services"
	"github.com/isdelr/storefront-be/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Debug)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	if cfg.SeedDatabase {
		if err := database.Seed(db, cfg.BcryptCost); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Set up services
	accountStore := store.NewAccountStore(db)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(accountStore, tokenService, cfg.BcryptCost)
	productService := services.NewProductService(db)

	// Set up router
	router := api.NewRouter(tokenService, authService, productService, cfg.CORSOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
