package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-capital/config"
	httpLayer "loan-capital/http"
	"loan-capital/repository"
	"loan-capital/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	var cache repository.CacheRepository
	if cfg.UsesRedis() {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.CacheTTL)
		defer redisCache.Close()
		cache = redisCache
		log.Printf("Caching quotes in redis at %s", cfg.Redis.Addr)
	} else {
		cache = repository.NewMemoryCache()
		log.Println("REDIS_ADDR not set, caching quotes in memory")
	}

	capitalService := service.NewCapitalService(cache)

	capitalHandler := httpLayer.NewCapitalHandler(capitalService)
	healthHandler := httpLayer.NewHealthHandler(cache)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpLayer.NewRouter(capitalHandler, healthHandler, rateLimiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Capital API listening on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
