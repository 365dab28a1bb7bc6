package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/templates"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// FlightSearcher is the search surface served over HTTP
type FlightSearcher interface {
	SearchFlight(ctx context.Context, flightNumber, date string) ([]entity.Flight, error)
	SearchFlightsByAirport(ctx context.Context, airportCode, date string) ([]entity.Flight, error)
	GetAirportInfo(ctx context.Context, airportCode string) (*entity.AirportInfo, error)
	SearchAirportDepartures(ctx context.Context, airportCode, date string) (*entity.DepartureSearchResult, error)
	RecentSearches(ctx context.Context, limit int) ([]*entity.SearchRecord, error)
}

// Handler serves the flight lookup API
type Handler struct {
	searcher FlightSearcher
	logger   logger.Logger
	mode     string
}

// NewHandler creates a new API handler
func NewHandler(searcher FlightSearcher, logger logger.Logger, mode string) *Handler {
	return &Handler{
		searcher: searcher,
		logger:   logger,
		mode:     mode,
	}
}

type flightView struct {
	entity.Flight
	CalendarURL string `json:"calendarUrl,omitempty"`
}

type enrichedFlightView struct {
	entity.EnrichedFlight
	CalendarURL string `json:"calendarUrl,omitempty"`
}

// NewRouter builds the HTTP router. metricsHandler is mounted on /metrics when not nil.
func NewRouter(h *Handler, metricsHandler http.Handler, requestTimeout time.Duration) http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(h.logger),
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "mode": h.mode})
	})
	if metricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	router.Mount("/api", h.Routes())
	return router
}

// Routes returns the /api sub-router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/flights/{flightNumber}", h.getFlight)
	r.Get("/airports/{code}", h.getAirport)
	r.Get("/airports/{code}/flights", h.getAirportFlights)
	r.Get("/airports/{code}/departures", h.getAirportDepartures)
	r.Get("/searches", h.listSearches)
	return r
}

func (h *Handler) getFlight(w http.ResponseWriter, r *http.Request) {
	flights, err := h.searcher.SearchFlight(r.Context(), chi.URLParam(r, "flightNumber"), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"flights": toFlightViews(flights),
		"count":   len(flights),
	})
}

func (h *Handler) getAirportFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.searcher.SearchFlightsByAirport(r.Context(), chi.URLParam(r, "code"), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"flights": toFlightViews(flights),
		"count":   len(flights),
	})
}

func (h *Handler) getAirport(w http.ResponseWriter, r *http.Request) {
	airport, err := h.searcher.GetAirportInfo(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, airport)
}

func (h *Handler) getAirportDepartures(w http.ResponseWriter, r *http.Request) {
	result, err := h.searcher.SearchAirportDepartures(r.Context(), chi.URLParam(r, "code"), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	flights := make([]enrichedFlightView, 0, len(result.Flights))
	for _, f := range result.Flights {
		flights = append(flights, enrichedFlightView{EnrichedFlight: f, CalendarURL: templates.CalendarURL(f.Flight)})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"airport": result.Airport,
		"origin":  result.Origin,
		"flights": flights,
		"routes":  result.Routes,
		"count":   len(flights),
	})
}

func (h *Handler) listSearches(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.searcher.RecentSearches(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"searches": records})
}

func toFlightViews(flights []entity.Flight) []flightView {
	views := make([]flightView, 0, len(flights))
	for _, f := range flights {
		views = append(views, flightView{Flight: f, CalendarURL: templates.CalendarURL(f)})
	}
	return views
}
