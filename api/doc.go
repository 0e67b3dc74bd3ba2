// Package api provides the HTTP API layer for the Nav Assist application.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers (analyze, sitemap, query)
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//   - POST /analyze: fetch and parse a site's entry page, start the
//     background crawl, and return the structure snapshot
//   - GET /sitemap/{domain}: the live crawl map (partial while crawling)
//   - GET /sitemap/{domain}/report: aggregated crawl statistics
//   - GET /sitemap/{domain}/export: sitemap.xml export
//   - GET /sitemap/{domain}/search: topic search over mapped pages
//   - POST /query/map: score pages against a user query; a detected
//     manipulation attempt returns 403 with a security_breach error
//   - POST /query/route: the full input bundle for a browsing agent run
//
// The OpenAPI spec is served at /openapi.json and interactive docs at
// /docs.
package api
