package http

import (
	"context"
	"net/http"
	"time"

	"loan-capital/repository"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	cache repository.CacheRepository
}

func NewHealthHandler(cache repository.CacheRepository) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Check reports API liveness and whether the quote cache answers.
// A failing cache only degrades the service, quotes are still computed.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status, cacheStatus := "ok", "healthy"
	if err := h.cache.Ping(ctx); err != nil {
		status, cacheStatus = "degraded", "unhealthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"checks": map[string]string{
			"api":   "healthy",
			"cache": cacheStatus,
		},
	})
}
