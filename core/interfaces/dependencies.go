// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides caching functionality
	Cache Cache

	// HTTPClient provides plain HTTP request functionality
	HTTPClient HTTPClient

	// Fetcher provides rate-limited, cached page fetching
	Fetcher Fetcher

	// LLM provides chat completions for the semantic relevance strategy
	LLM LLMClient

	// Logger provides structured logging
	Logger Logger
}
