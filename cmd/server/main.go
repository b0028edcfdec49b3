package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domainRepo "guestgate-service/internal/domain/repository"
	"guestgate-service/internal/infrastructure/config"
	"guestgate-service/internal/infrastructure/identity"
	"guestgate-service/internal/infrastructure/persistence"
	adapters "guestgate-service/internal/interface/repository"
	"guestgate-service/internal/interface/web"
	"guestgate-service/internal/usecase"
	"guestgate-service/pkg/logger"
	"guestgate-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Guestgate Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection (reservation record store)
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Reference data is optional: without Postgres, drafts are
	// submitted exactly as entered
	var airlineRepository domainRepo.AirlineRepository
	var timezoneRepository domainRepo.TimezoneRepository
	if cfg.PostgresDSN != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = adapters.NewGormAirlineRepository(gormDB)
		timezoneRepository = adapters.NewGormTimezoneRepository(gormDB)
	}

	// Set up repositories
	reservationRepo := adapters.NewMongoReservationRepository(db)
	flightInfoRepo := adapters.NewFlightInfoRepository(cfg.FlightInfoEndpoint, cfg.FlightInfoToken, cfg.FlightInfoSender, log)

	// Set up identity provider
	googleIdentity := identity.NewGoogleIdentity(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.IdentityAPIKey, log)

	// Set up usecases
	m := metrics.NewMetrics("guestgate")
	registry := usecase.NewRegistry(cfg.SessionTTL, log)
	resolver := usecase.NewResolver(reservationRepo, m, log)
	guard := usecase.NewAccessGuard(resolver, googleIdentity, m, log)
	submitter := usecase.NewFlightSubmitter(flightInfoRepo, airlineRepository, timezoneRepository, m, log)

	// Sweep expired sessions in a goroutine
	go registry.Sweep(ctx, 5*time.Minute)

	// Set up HTTP router
	handlers := web.NewHandlers(registry, guard, submitter, googleIdentity, googleIdentity, log)
	router := web.NewRouter(handlers)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Guestgate Service stopped")
}
