package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/internal/infrastructure/config"
	lookupRepo "flightlookup-service/internal/interface/repository"
	"flightlookup-service/internal/usecase"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"
	"flightlookup-service/templates"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	flightNumber := flag.String("flight", "", "flight IATA number, e.g. BA123")
	airport := flag.String("airport", "", "departure airport IATA code, e.g. JFK")
	date := flag.String("date", "", "flight date YYYY-MM-DD")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.NewLogger("warn")
	defer log.Sync()

	m := metrics.NewMetricsWithRegistry(cfg.MetricsNamespace, prometheus.NewRegistry())

	var lookup repository.LookupService
	if cfg.LookupMode == config.ModeLive {
		lookup = lookupRepo.NewAviationstackRepository(cfg.APIKey, log, m,
			lookupRepo.WithBaseURL(cfg.APIBaseURL),
			lookupRepo.WithTimeout(cfg.UpstreamTimeout),
		)
	} else {
		lookup = lookupRepo.NewFixtureRepository(log)
	}

	resolver := usecase.NewAirportResolver(lookup, nil, log, m)
	service := usecase.NewFlightSearchService(lookup, resolver, nil, nil, log, m, cfg.LookupMode)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch {
	case *flightNumber != "":
		flights, err := service.SearchFlight(ctx, *flightNumber, *date)
		if err != nil {
			fail(err)
		}
		printFlights(flights)
	case *airport != "":
		result, err := service.SearchAirportDepartures(ctx, *airport, *date)
		if err != nil {
			fail(err)
		}
		if result.Origin != nil {
			fmt.Printf("%s (%s) %.4f, %.4f\n\n", result.Origin.Name, result.Origin.IATA, result.Origin.Lat, result.Origin.Lng)
		}
		flights := make([]entity.Flight, 0, len(result.Flights))
		for _, f := range result.Flights {
			flights = append(flights, f.Flight)
		}
		printFlights(flights)
		for _, route := range result.Routes {
			fmt.Printf("route %s -> %s (%.4f, %.4f)\n", route.From.IATA, route.To.IATA, route.To.Lat, route.To.Lng)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printFlights(flights []entity.Flight) {
	if len(flights) == 0 {
		fmt.Println("No flights found")
		return
	}
	for _, f := range flights {
		fmt.Println(templates.FlightCard(f))
		if link := templates.CalendarURL(f); link != "" {
			fmt.Println("Add to calendar:", link)
		}
		fmt.Println()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
