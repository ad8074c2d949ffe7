package http

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// NewRouter mounts the API routes. Only quote requests are rate limited.
func NewRouter(
	capital *CapitalHandler,
	health *HealthHandler,
	limiter *RateLimiter,
) http.Handler {
	router := httprouter.New()

	router.Handler(
		http.MethodPost,
		"/loan/capital",
		RateLimitMiddleware(limiter, http.HandlerFunc(capital.Quote)),
	)
	router.HandlerFunc(http.MethodGet, "/health", health.Check)

	return router
}
