// Package infrastructure provides concrete implementations of the
// interfaces defined in the core package.
//
// # Structure
//
// - cache/: memory (go-cache), redis (go-redis + rejson), sqlite backends
// - http/browser/: HTTP client presenting browser-like request headers
// - fetcher/: rate-limited, cached page fetcher
// - llm/: OpenAI-compatible chat completions client
// - logger/logrus/: structured JSON logging
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(redis.Config{
//	    Address:  "localhost:6379",
//	    Password: "",
//	    DB:       0,
//	})
//
// The Redis backend additionally implements interfaces.JSONCache for
// native JSON document storage.
//
// # Fetcher
//
// The fetcher spaces out requests per domain and caches bodies:
//
//	client := browser.NewClient(15 * time.Second)
//	f := fetcher.New(client, cache, logger, fetcher.Options{RequestsPerMinute: 20})
//	html, err := f.Fetch(ctx, "https://example.com")
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := logrus.New("info")
//	logger.Info("Crawl started", map[string]interface{}{
//	    "domain": "example.com",
//	})
package infrastructure
