package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/pkg/logger"

	"github.com/go-chi/chi/v5/middleware"
)

const rateLimitedMessage = "rate limited, wait and retry"

// WriteJSON serializes v as JSON with the provided status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a structured error response.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// writeError maps domain errors onto HTTP statuses
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var upstreamErr *entity.UpstreamError

	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrAirportNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrRateLimited):
		detail := err.Error()
		if errors.As(err, &upstreamErr) {
			detail = upstreamErr.Message
		}
		w.Header().Set("Retry-After", "60")
		WriteJSON(w, http.StatusTooManyRequests, map[string]string{
			"error":  rateLimitedMessage,
			"detail": detail,
		})
	case errors.Is(err, entity.ErrConfiguration):
		h.logger.Error("Configuration error", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &upstreamErr):
		Error(w, http.StatusBadGateway, upstreamErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		// client went away, nothing useful to write
		w.WriteHeader(499)
	default:
		h.logger.Error("Unhandled error", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// requestLogger logs one line per request with its chi request ID
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("HTTP request",
				"requestId", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String())
		})
	}
}
