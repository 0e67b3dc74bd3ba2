// ABOUTME: Main entry point for the Nav Assist API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"navassist-api/api"
	"navassist-api/api/handlers"
	"navassist-api/core/agent"
	"navassist-api/core/domain"
	"navassist-api/core/extract"
	"navassist-api/core/feed"
	"navassist-api/core/interfaces"
	"navassist-api/core/navigation"
	"navassist-api/core/relevance"
	"navassist-api/core/security"
	"navassist-api/core/services"
	"navassist-api/core/sitemap"
	"navassist-api/infrastructure/cache/memory"
	"navassist-api/infrastructure/cache/redis"
	"navassist-api/infrastructure/cache/sqlite"
	"navassist-api/infrastructure/fetcher"
	"navassist-api/infrastructure/http/browser"
	"navassist-api/infrastructure/llm"
	logruslogger "navassist-api/infrastructure/logger/logrus"
	"navassist-api/pkg/config"
	"navassist-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.New(cfg.Server.LogLevel)
	logger.Info("Starting Nav Assist API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	flags := loadFlags(cfg)

	cache := buildCache(cfg, logger)
	httpClient := browser.NewClient(cfg.Crawler.FetchTimeout)
	pageFetcher := fetcher.New(httpClient, cache, logger, fetcher.Options{
		RequestsPerMinute: cfg.Crawler.RequestsPerMinute,
		CacheTTL:          cfg.Cache.PageTTL,
	})
	llmClient := llm.NewOpenAIClient(llm.Config{
		APIURL:      cfg.LLM.APIURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.LLM.Timeout,
		Temperature: cfg.LLM.Temperature,
	})

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Fetcher:    pageFetcher,
		LLM:        llmClient,
		Logger:     logger,
	}

	ctx := context.Background()

	// Relevance engine: semantic scoring needs a working LLM; keyword
	// scoring always runs as the fallback.
	var semantic *relevance.SemanticStrategy
	if flags.IsEnabled(ctx, featureflags.SemanticRelevance) {
		mediator := security.NewMediator(deps.LLM, deps.Logger)
		semantic = relevance.NewSemanticStrategy(mediator, deps.Logger)
		logger.Info("Semantic relevance enabled", map[string]interface{}{"model": cfg.LLM.Model})
	}
	keyword := relevance.NewKeywordStrategy(relevanceWeights(cfg))
	engine := relevance.NewEngine(semantic, keyword, deps.Logger)

	// Crawl pipeline
	var seeds sitemap.SeedProvider
	if flags.IsEnabled(ctx, featureflags.FeedSeeding) {
		seeds = feed.NewDiscovery(deps.Fetcher, deps.Logger)
	}
	store := sitemap.NewStore()
	crawler := sitemap.NewCrawler(store, deps.Fetcher, deps.Logger, domain.CrawlLimits{
		MaxDepth:          cfg.Crawler.MaxDepth,
		MaxPages:          cfg.Crawler.MaxPages,
		RequestsPerMinute: cfg.Crawler.RequestsPerMinute,
	}, seeds)

	var metadataService *services.MetadataService
	if flags.IsEnabled(ctx, featureflags.MetadataEnrichment) {
		metadataService = services.NewMetadataService(deps.Cache, deps.Logger)
	}
	analysis := services.NewAnalysisService(
		deps.Fetcher,
		extract.NewExtractor(deps.Logger),
		store,
		crawler,
		metadataService,
		deps.Cache,
		deps.Logger,
	)

	// No browsing agent engine ships with the server; /query/route still
	// produces the full run bundle for external agents.
	agents := agent.NewService(nil, navigation.NewRouter(deps.Logger), deps.Logger)

	apiConfig := api.APIConfig{Logger: logger}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = 100
		apiConfig.RateWindow = time.Minute
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewAnalyzeHandler(analysis).RegisterRoutes(humaAPI)
	handlers.NewSitemapHandler(analysis).RegisterRoutes(humaAPI)
	handlers.NewQueryHandler(analysis, engine, agents).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// loadFlags builds the feature flag set: crawl seeding, metadata
// enrichment, and rate limiting default on; semantic relevance defaults
// to whether an LLM key is configured. FEATURE_* variables override.
// relevanceWeights maps the configured scoring weights onto the keyword
// strategy's signal set.
func relevanceWeights(cfg *config.Config) relevance.Weights {
	return relevance.Weights{
		FullQueryMatch: cfg.Relevance.FullQueryMatch,
		LinkText:       cfg.Relevance.LinkText,
		URLPath:        cfg.Relevance.URLPath,
		SectionName:    cfg.Relevance.SectionName,
		ContentSnippet: cfg.Relevance.ContentSnippet,
		PrimaryNav:     cfg.Relevance.PrimaryNav,
		TopicMatch:     cfg.Relevance.TopicMatch,
	}
}

func loadFlags(cfg *config.Config) featureflags.Manager {
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.SemanticRelevance:  cfg.LLM.APIKey != "",
		featureflags.FeedSeeding:        true,
		featureflags.MetadataEnrichment: true,
		featureflags.RateLimitEnabled:   true,
	})

	for flag := range flags.GetAllFlags() {
		envKey := "FEATURE_" + strings.ToUpper(string(flag))
		if value, ok := os.LookupEnv(envKey); ok {
			lowered := strings.ToLower(value)
			flags.SetEnabled(flag, lowered == "true" || lowered == "1" || lowered == "enabled")
		}
	}

	return flags
}

// buildCache selects the cache backend, falling back to memory when the
// configured backend can't be reached.
func buildCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(redis.Config{
			Address:  cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLitePath,
		})
		return sqliteCache
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache()
	}
}
