package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-parser/app/config"
	"github.com/address-parser/app/controllers"
	"github.com/address-parser/app/services"
	"github.com/address-parser/internal/catalog"
	"github.com/address-parser/internal/matcher"
	"github.com/address-parser/internal/search"
	"github.com/address-parser/routes"
)

func main() {
	cfg, err := config.Load("config/parser.yaml")
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("starting address matching service")

	cat, err := catalog.Load(context.Background(), cfg.DBConnection)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	logger.Info("loaded catalog", zap.Int("locations", cat.Len()), zap.String("version", cat.Version()))

	cacheService, err := buildCacheService(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build cache service", zap.Error(err))
	}
	defer cacheService.Close()

	thresholds := matcher.Thresholds{
		StructuredMinConfidence: cfg.StructuredMinConfidence,
		FuzzyMinConfidence:      cfg.FuzzyMinConfidence,
		LLMMinConfidence:        cfg.LLMMinConfidence,
		MaxCandidates:           cfg.MaxCandidates,
		LLMCommand:              cfg.LLMCommand,
	}

	addressService := services.NewAddressService(cat, thresholds, logger)
	addressController := controllers.NewAddressController(addressService, cacheService, cat, logger)

	suggestController := buildSuggestController(cfg, cat, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	if err := routes.SetupAllRoutes(router, addressController, suggestController, cfg.AllowedCIDR, logger); err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.BindAddress + ":" + portOrDefault(cfg.BindPort),
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server exited")
}

func buildCacheService(cfg config.Config, logger *zap.Logger) (services.ICacheService, error) {
	ttl := time.Duration(cfg.CacheTTLSecs) * time.Second
	l1, err := services.NewCacheService(cfg.L1CacheSize, ttl)
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddress == "" {
		return l1, nil
	}

	l2, err := services.NewRedisCacheService(cfg.RedisAddress, ttl, logger)
	if err != nil {
		logger.Warn("redis unavailable, falling back to L1-only cache", zap.Error(err))
		return l1, nil
	}

	return services.NewHybridCacheService(l1, l2, logger), nil
}

func buildSuggestController(cfg config.Config, cat *catalog.Catalog, logger *zap.Logger) *controllers.SuggestController {
	if cfg.MeiliHost == "" {
		return nil
	}

	index, err := search.NewSuggestionIndex(search.SuggestionIndexConfig{
		Host:      cfg.MeiliHost,
		APIKey:    cfg.MeiliAPIKey,
		IndexName: "address_suggestions",
	}, logger)
	if err != nil {
		logger.Warn("suggestion index unavailable, /v1/suggest disabled", zap.Error(err))
		return nil
	}

	if err := index.BuildIndex(); err != nil {
		logger.Warn("failed to configure suggestion index", zap.Error(err))
	}
	if err := index.Seed(cat.Records()); err != nil {
		logger.Warn("failed to seed suggestion index", zap.Error(err))
	}

	return controllers.NewSuggestController(index, logger)
}

func portOrDefault(p int) string {
	if p <= 0 {
		return "8080"
	}
	return strconv.Itoa(p)
}
