package main

import (
	"context"
	"flag"
	"os"
	"sort"

	"flightlookup-service/internal/infrastructure/config"
	"flightlookup-service/internal/infrastructure/persistence"
	"flightlookup-service/internal/interface/repository"
	"flightlookup-service/pkg/logger"
)

func main() {
	dsn := flag.String("dsn", "", "PostgreSQL DSN (defaults to POSTGRES_DSN)")
	flag.Parse()

	log := logger.NewLogger("info")
	defer log.Sync()

	if *dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal("Failed to load config", "error", err)
		}
		*dsn = cfg.PostgresDSN
	}
	if *dsn == "" {
		log.Error("No PostgreSQL DSN given, set POSTGRES_DSN or -dsn")
		os.Exit(2)
	}

	db, err := persistence.NewPostgresDB(*dsn, log, &repository.Airport{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	directory := repository.NewGormAirportDirectoryRepository(db)

	codes := make([]string, 0, len(repository.FixtureAirports))
	for code := range repository.FixtureAirports {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	ctx := context.Background()
	for _, code := range codes {
		airport := repository.FixtureAirports[code]
		if err := directory.Save(ctx, &airport); err != nil {
			log.Fatal("Failed to seed airport", "iata", code, "error", err)
		}
		log.Info("Seeded airport", "iata", code, "name", airport.Name)
	}

	count, err := directory.Count(ctx)
	if err != nil {
		log.Fatal("Failed to count airports", "error", err)
	}
	log.Info("Airport directory ready", "airports", count)
}
