package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/internal/infrastructure/config"
	"flightlookup-service/internal/infrastructure/persistence"
	"flightlookup-service/internal/interface/api"
	lookupRepo "flightlookup-service/internal/interface/repository"
	"flightlookup-service/internal/usecase"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()

	// Create logger
	level := "info"
	if cfg != nil {
		level = cfg.LogLevel
	}
	log := logger.NewLogger(level)
	defer log.Sync()

	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log.Info("Starting Flight Lookup Service", "version", cfg.AppVersion, "mode", cfg.LookupMode)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace)

	// Lookup service: live provider or fixtures, chosen once
	var lookup repository.LookupService
	if cfg.LookupMode == config.ModeLive {
		lookup = lookupRepo.NewAviationstackRepository(cfg.APIKey, log, m,
			lookupRepo.WithBaseURL(cfg.APIBaseURL),
			lookupRepo.WithTimeout(cfg.UpstreamTimeout),
		)
	} else {
		lookup = lookupRepo.NewFixtureRepository(log)
	}

	// Optional PostgreSQL airport directory
	if cfg.PostgresDSN != "" {
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN, log, &lookupRepo.Airport{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		directory := lookupRepo.NewGormAirportDirectoryRepository(gormDB)
		lookup = lookupRepo.NewDirectoryLookupService(lookup, directory, log)
	}

	// Optional Redis batch cache
	if cfg.RedisAddr != "" {
		log.Info("Connecting to Redis", "addr", cfg.RedisAddr)
		redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisClient.Close()
		cache := lookupRepo.NewRedisBatchCache(redisClient, cfg.UpstreamCacheTTL)
		lookup = lookupRepo.NewCachedLookupService(lookup, cfg.LookupMode, cache, log, m)
	}

	// Optional MongoDB search history
	var history repository.SearchRecordRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}()
		records := lookupRepo.NewMongoSearchRecordRepository(db)
		if err := records.EnsureIndexes(ctx); err != nil {
			log.Warn("Failed to create search record indexes", "error", err)
		}
		history = records
	}

	// Optional NATS search events
	var publisher repository.SearchEventPublisher
	if cfg.NatsURL != "" {
		log.Info("Connecting to NATS", "url", cfg.NatsURL)
		nc, err := persistence.NewNatsConn(cfg.NatsURL, "flightlookup-service")
		if err != nil {
			log.Fatal("Failed to connect to NATS", "error", err)
		}
		defer nc.Drain()
		publisher = lookupRepo.NewNatsSearchEventPublisher(nc)
	}

	resolver := usecase.NewAirportResolver(lookup, usecase.NewAirportCache(), log, m)
	searchService := usecase.NewFlightSearchService(lookup, resolver, history, publisher, log, m, cfg.LookupMode)

	handler := api.NewHandler(searchService, log, cfg.LookupMode)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handler, promhttp.Handler(), cfg.WriteTimeout),
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

	cancel()

	log.Info("Flight Lookup Service stopped")
}
