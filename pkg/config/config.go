// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, crawler, and LLM settings

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache backend configuration
	Cache CacheConfig

	// Crawler contains per-domain crawl limits
	Crawler CrawlerConfig

	// LLM contains language model client configuration
	LLM LLMConfig

	// Relevance contains keyword scoring weights
	Relevance RelevanceConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel controls log verbosity (debug/info/warn/error)
	LogLevel string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string

	// PageTTL is how long fetched page bodies stay cached
	PageTTL time.Duration
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// CrawlerConfig holds per-domain crawl limits
type CrawlerConfig struct {
	// MaxDepth is the maximum link depth from the seed URL
	MaxDepth int

	// MaxPages is the maximum number of pages visited per domain
	MaxPages int

	// RequestsPerMinute caps the fetch rate per domain
	RequestsPerMinute int

	// FetchTimeout bounds a single page request
	FetchTimeout time.Duration
}

// LLMConfig holds language model client configuration
type LLMConfig struct {
	// APIURL is the base URL of the chat completions API
	APIURL string

	// APIKey authenticates requests; semantic scoring is disabled when empty
	APIKey string

	// Model names the chat model to use
	Model string

	// Timeout bounds a single completion request
	Timeout time.Duration

	// Temperature controls completion randomness
	Temperature float64
}

// RelevanceConfig holds the keyword relevance scoring weights
type RelevanceConfig struct {
	// FullQueryMatch scores a link whose text contains the whole query
	FullQueryMatch float64

	// LinkText scores each query keyword found in link text
	LinkText float64

	// URLPath scores each query keyword found in the URL path
	URLPath float64

	// SectionName scores each query keyword found in the section name
	SectionName float64

	// ContentSnippet scores each query keyword found in attached content
	ContentSnippet float64

	// PrimaryNav is a flat bonus for links in primary navigation areas
	PrimaryNav float64

	// TopicMatch scores links matching a known query intent family
	TopicMatch float64
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnvOrDefault("PORT", "8000"),
			LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "navassist_cache.db"),
			PageTTL:    getEnvAsDurationOrDefault("PAGE_CACHE_TTL", time.Hour),
		},
		Crawler: CrawlerConfig{
			MaxDepth:          getEnvAsIntOrDefault("CRAWL_MAX_DEPTH", 2),
			MaxPages:          getEnvAsIntOrDefault("CRAWL_MAX_PAGES", 30),
			RequestsPerMinute: getEnvAsIntOrDefault("CRAWL_REQUESTS_PER_MINUTE", 20),
			FetchTimeout:      getEnvAsDurationOrDefault("FETCH_TIMEOUT", 15*time.Second),
		},
		LLM: LLMConfig{
			APIURL:      getEnvOrDefault("LLM_API_URL", "https://api.openai.com/v1"),
			APIKey:      getEnvOrDefault("LLM_API_KEY", ""),
			Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			Timeout:     getEnvAsDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
			Temperature: getEnvAsFloatOrDefault("LLM_TEMPERATURE", 0.0),
		},
		Relevance: RelevanceConfig{
			FullQueryMatch: getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_FULL_QUERY", 5),
			LinkText:       getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_LINK_TEXT", 2),
			URLPath:        getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_URL_PATH", 1),
			SectionName:    getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_SECTION_NAME", 1),
			ContentSnippet: getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_CONTENT_SNIPPET", 0.5),
			PrimaryNav:     getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_PRIMARY_NAV", 0.5),
			TopicMatch:     getEnvAsFloatOrDefault("RELEVANCE_WEIGHT_TOPIC_MATCH", 10),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the environment variable as a duration or a default.
// Bare integers are read as seconds.
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis', or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Crawler.MaxDepth < 0 {
		return errors.New("crawl max depth cannot be negative")
	}

	if c.Crawler.MaxPages < 1 {
		return errors.New("crawl max pages must be at least 1")
	}

	if c.Crawler.RequestsPerMinute < 1 {
		return errors.New("crawl requests per minute must be at least 1")
	}

	weights := []float64{
		c.Relevance.FullQueryMatch,
		c.Relevance.LinkText,
		c.Relevance.URLPath,
		c.Relevance.SectionName,
		c.Relevance.ContentSnippet,
		c.Relevance.PrimaryNav,
		c.Relevance.TopicMatch,
	}
	for _, w := range weights {
		if w < 0 {
			return errors.New("relevance weights cannot be negative")
		}
	}

	return nil
}
