// Package core contains the business logic for the Nav Assist API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (SiteStructure, PageRecord, RelevanceCandidate, etc.)
// - extract: HTML structure extraction (navigation, sections, forms, social links, keywords)
// - sitemap: Per-domain crawl maps, the background crawler, tree/report/xml projections
// - relevance: Query-to-page mapping via keyword scoring with an LLM-backed semantic strategy
// - security: The mediation contract, breach detection, and system-text scrubbing
// - navigation: Starting-URL routing and agent prompt assembly
// - agent: Browsing-agent task preparation and result post-processing
// - services: Site analysis orchestration and metadata enrichment
// - feed: RSS/Atom discovery used to seed crawls
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, fetcher, LLM, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "navassist-api/core/interfaces"
//	    "navassist-api/core/services"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Fetcher:    myFetcher,    // implements interfaces.Fetcher
//	    LLM:        myLLM,        // implements interfaces.LLMClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Analyze a site
//	analysis := services.NewAnalysisService(deps.Fetcher, extractor, store, crawler, nil, deps.Cache, deps.Logger)
//	structure, err := analysis.Analyze(ctx, "https://example.com")
package core
