// ABOUTME: Page domain models for crawled website pages
// ABOUTME: Defines PageRecord, LinkRef and the per-domain crawl status machine

package domain

import "time"

// LinkRef is a single link discovered on a page.
type LinkRef struct {
	// Text is the human-readable link text (or image alt fallback)
	Text string `json:"text"`

	// URL is the absolute resolved target URL
	URL string `json:"url"`

	// Section names the navigation area the link was found in,
	// e.g. "Main Navigation", "Footer Links", "Content Section"
	Section string `json:"section"`

	// IsExternal is true when the link leaves the analyzed domain.
	// Derived once at extraction time from the target's host.
	IsExternal bool `json:"is_external"`
}

// PageRecord is the stored extraction result for one crawled page.
// Records are written atomically once a page is fully parsed and are
// only ever replaced wholesale by a re-crawl.
type PageRecord struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Links     []LinkRef `json:"links"`
	Keywords  []string  `json:"keywords"`
	Headings  []string  `json:"headings"`
	CrawledAt time.Time `json:"crawled_at"`
}

// CrawlStatus tracks the lifecycle of a domain's background crawl.
type CrawlStatus string

const (
	CrawlNotStarted CrawlStatus = "not_started"
	CrawlInProgress CrawlStatus = "in_progress"
	CrawlCompleted  CrawlStatus = "completed"
	CrawlError      CrawlStatus = "error"
)

// CrawlLimits bounds a single domain crawl.
type CrawlLimits struct {
	// MaxDepth is the maximum link depth from the seed URL
	MaxDepth int

	// MaxPages is the maximum number of pages to visit
	MaxPages int

	// RequestsPerMinute caps the fetch rate per domain
	RequestsPerMinute int
}

// DefaultCrawlLimits returns the crawl bounds used when a caller
// doesn't supply its own.
func DefaultCrawlLimits() CrawlLimits {
	return CrawlLimits{
		MaxDepth:          2,
		MaxPages:          30,
		RequestsPerMinute: 20,
	}
}
