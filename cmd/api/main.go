package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-backend/internal/adapters/cache"
	"github.com/healthhub/healthhub-backend/internal/adapters/database"
	"github.com/healthhub/healthhub-backend/internal/adapters/events"
	"github.com/healthhub/healthhub-backend/internal/adapters/providers/payment"
	"github.com/healthhub/healthhub-backend/internal/adapters/search"
	"github.com/healthhub/healthhub-backend/internal/api/handlers"
	"github.com/healthhub/healthhub-backend/internal/api/routes"
	"github.com/healthhub/healthhub-backend/internal/application/services"
	"github.com/healthhub/healthhub-backend/internal/domain/providers"
	"github.com/healthhub/healthhub-backend/internal/domain/repositories"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/postgres"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/redis"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/clients/typesense"
	"github.com/healthhub/healthhub-backend/internal/infrastructure/observability"
	"github.com/healthhub/healthhub-backend/internal/jobs"
	"github.com/healthhub/healthhub-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger("healthhub-api", cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client. The service degrades to uncached, non-streaming
	// operation when Redis is unavailable.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache and events")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Typesense client, doctor search falls back to database scan")
		typesenseClient = nil
	} else {
		log.Info().Msg("Typesense client initialized successfully")
	}

	// Initialize adapters
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	availabilityAdapter := database.NewAvailabilityAdapter(pgClient)
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	patientAdapter := database.NewPatientAdapter(pgClient)
	paymentAdapter := database.NewPaymentAdapter(pgClient)
	labAdapter := database.NewLabAdapter(pgClient)
	labReportAdapter := database.NewLabReportAdapter(pgClient)
	medicineAdapter := database.NewMedicineAdapter(pgClient)
	bloodBankAdapter := database.NewBloodBankAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Cache and event bus initialized successfully")
	}

	var searchRepo repositories.DoctorSearchRepository
	if typesenseClient != nil {
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	stripeProvider := payment.NewStripeAdapter(&cfg.Stripe)

	// Initialize services
	availabilityService := services.NewAvailabilityService(
		availabilityAdapter,
		appointmentAdapter,
		cacheProvider,
		cfg.Booking.SlotViewTTL,
	)
	bookingService := services.NewBookingService(
		appointmentAdapter,
		availabilityAdapter,
		patientAdapter,
		paymentAdapter,
		stripeProvider,
		eventBus,
		availabilityService,
	)
	paymentService := services.NewPaymentService(
		paymentAdapter,
		appointmentAdapter,
		doctorAdapter,
		stripeProvider,
		cfg.Stripe.Currency,
	)
	doctorService := services.NewDoctorService(doctorAdapter, searchRepo)
	patientService := services.NewPatientService(patientAdapter, bloodBankAdapter)
	labService := services.NewLabService(labAdapter, labReportAdapter)
	medicineService := services.NewMedicineService(medicineAdapter)

	// Populate the search index on boot so discovery works after a cold start
	if searchRepo != nil {
		if err := doctorService.SyncSearchIndex(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to sync doctor search index")
		}
	}

	// Start the expiry sweep so unpaid bookings release their slots
	sweeper := jobs.NewExpirySweeper(bookingService, cfg.Booking.PendingDeadline, cfg.Booking.SweepSchedule)
	if err := sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start expiry sweeper")
	}
	log.Info().Str("schedule", cfg.Booking.SweepSchedule).Msg("Expiry sweeper started")

	// Initialize handlers
	doctorHandler := handlers.NewDoctorHandler(doctorService, availabilityService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	patientHandler := handlers.NewPatientHandler(patientService)
	labHandler := handlers.NewLabHandler(labService)
	medicineHandler := handlers.NewMedicineHandler(medicineService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	} else {
		log.Warn().Msg("Streaming endpoints disabled (Redis not available)")
	}

	// Set up router
	router := routes.NewRouter(
		doctorHandler,
		appointmentHandler,
		paymentHandler,
		patientHandler,
		labHandler,
		medicineHandler,
		sseHandler,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	sweeper.Stop()

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
