package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// HealthHandler reports liveness or readiness in the API envelope shape.
// With no dependency probes it always reports healthy. With probes, every
// probe must succeed for a 200; the first failure returns 503.
func HealthHandler(log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				if log != nil {
					log.ErrorContext(r.Context(), "readiness probe failed", slog.Any("error", err))
				}
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   map[string]any{"message": "dependency unavailable"},
				})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"status": "ok"},
		})
	}
}
