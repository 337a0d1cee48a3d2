package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/accessmap-service/internal/config"
	httpDelivery "github.com/accessmap-service/internal/delivery/http"
	"github.com/accessmap-service/internal/delivery/http/handler"
	"github.com/accessmap-service/internal/domain/repository"
	"github.com/accessmap-service/internal/infrastructure/ipapi"
	"github.com/accessmap-service/internal/infrastructure/nominatim"
	"github.com/accessmap-service/internal/infrastructure/overpass"
	"github.com/accessmap-service/internal/pkg/logger"
	"github.com/accessmap-service/internal/repository/cache"
	"github.com/accessmap-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting AccessMap Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("overpass_url", cfg.Overpass.BaseURL),
	)

	// 3. Connect to Redis (optional result cache)
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.CacheEnabled() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
	} else {
		log.Info("Redis not configured, places cache disabled")
	}

	// 4. Initialize external API clients
	geodataRepo := overpass.NewClient(&cfg.Overpass, log)
	geocoderRepo := nominatim.NewClient(&cfg.Nominatim, log)
	ipLocatorRepo := ipapi.NewClient(&cfg.IPLocation, log)

	log.Info("External API clients initialized")

	// 5. Initialize Use Cases
	placesUC := usecase.NewPlacesUseCase(
		geodataRepo,
		geocoderRepo,
		cacheRepo,
		log,
		cfg.Cache.PlacesCacheTTL,
	)

	locationUC := usecase.NewLocationUseCase(
		geocoderRepo,
		ipLocatorRepo,
		&cfg.Fetch,
		log,
	)

	coordinatorManager := usecase.NewCoordinatorManager(
		placesUC,
		log,
		cfg.Fetch.CenterEpsilonDeg,
		cfg.Fetch.DefaultRadiusKm,
	)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	placesHandler := handler.NewPlacesHandler(coordinatorManager, placesUC, log)
	geocodeHandler := handler.NewGeocodeHandler(geocoderRepo, log)
	locationHandler := handler.NewLocationHandler(locationUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		placesHandler,
		geocodeHandler,
		locationHandler,
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
