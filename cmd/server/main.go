package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "fleetrent-backend/internal/api/grpc"
	httpapi "fleetrent-backend/internal/api/http"
	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/backend"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
	"fleetrent-backend/internal/store"

	"github.com/rs/cors"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.InitializeWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	logger.Info("Starting FleetRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "persistence", cfg.Persistence.Type)

	ctx := context.Background()

	// Initialize persistence and load state
	repo, closeRepo, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open persistence backend", "error", err, "type", cfg.Persistence.Type)
		log.Fatalf("Failed to open persistence backend: %v", err)
	}
	defer closeRepo()

	st, err := store.Open(ctx, repo)
	if err != nil {
		logger.Error("Failed to load state", "error", err)
		log.Fatalf("Failed to load state: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManagerWithExpiry(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage Service
	if cfg.Storage.Type != "" && cfg.Storage.Type != "local" {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}
	logger.Info("Using local image storage", "upload_dir", cfg.Storage.UploadDir)
	objects, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize local storage", "error", err)
		log.Fatalf("Failed to initialize local storage: %v", err)
	}

	// Initialize Services
	emailSvc, emailQueue := service.NewAsyncEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName,
		cfg.Email.Workers, cfg.Email.QueueSize, cfg.Email.MaxRetries)
	authSvc := service.NewAuthService(st, tokenManager)
	userSvc := service.NewUserService(st)
	vehicleSvc := service.NewVehicleService(st)
	rentalSvc := service.NewRentalService(st, emailSvc, cfg.Rental.MaxActiveRentals)
	analyticsSvc := service.NewAnalyticsService(st)
	invoiceSvc := service.NewInvoiceService(st)
	imageSvc := service.NewImageStorageService(st, objects, cfg.Storage.MaxFileSize<<20, cfg.Storage.AllowedTypes)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(tokenManager, httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc, userSvc),
		Vehicles: httpapi.NewVehicleHandler(vehicleSvc, rentalSvc),
		Rentals:  httpapi.NewRentalHandler(rentalSvc, invoiceSvc),
		Staff:    httpapi.NewStaffHandler(userSvc, analyticsSvc),
		Images:   httpapi.NewImageHandler(imageSvc),
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      c.Handler(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Set up gRPC health server
	var health *grpcapi.HealthServer
	if cfg.Server.HealthPort > 0 {
		lis, err := net.Listen("tcp", cfg.GetHealthAddress())
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", cfg.GetHealthAddress())
			log.Fatalf("Failed to listen: %v", err)
		}
		health = grpcapi.NewHealthServer()
		go func() {
			if err := health.Serve(lis); err != nil {
				logger.Error("gRPC health server error", "error", err)
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	if health != nil {
		health.SetServing(true)
	}

	// Wait for interrupt signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Received signal", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("HTTP server error", "error", err)
	}

	// Graceful shutdown
	logger.Info("Shutting down...")
	if health != nil {
		health.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if health != nil {
		health.Stop()
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("Failed to save state on shutdown", "error", err)
	}
	emailQueue.Stop()
	logger.Info("FleetRent Backend stopped. Goodbye!")
}
