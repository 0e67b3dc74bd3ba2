// ABOUTME: Per-domain site map store with crawl status gating
// ABOUTME: Maps grow monotonically during a crawl and are read concurrently

package sitemap

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
)

// SiteMap holds one domain's crawled pages. Entries are written whole and
// never retracted mid-crawl, so readers may iterate a snapshot at any time.
type SiteMap struct {
	mu sync.RWMutex

	baseURL    string
	hostname   string
	pages      map[string]domain.PageRecord
	status     domain.CrawlStatus
	errorCount int
}

// Hostname returns the domain this map belongs to.
func (m *SiteMap) Hostname() string {
	return m.hostname
}

// BaseURL returns the seed URL the crawl started from.
func (m *SiteMap) BaseURL() string {
	return m.baseURL
}

// Status returns the domain's current crawl state.
func (m *SiteMap) Status() domain.CrawlStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Len returns the number of mapped pages.
func (m *SiteMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

// Page returns the record for url, if mapped.
func (m *SiteMap) Page(url string) (domain.PageRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.pages[url]
	return record, ok
}

// Pages returns a snapshot copy of all mapped pages, sorted by URL so
// callers see a stable order.
func (m *SiteMap) Pages() []domain.PageRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pages := make([]domain.PageRecord, 0, len(m.pages))
	for _, record := range m.pages {
		pages = append(pages, record)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].URL < pages[j].URL })
	return pages
}

// put stores a fully parsed record. Same-key writes refresh the record.
func (m *SiteMap) put(record domain.PageRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[record.URL] = record
}

func (m *SiteMap) recordError() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount++
	return m.errorCount
}

func (m *SiteMap) finish(status domain.CrawlStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// Store shards site maps by hostname so unrelated crawls never contend.
type Store struct {
	mu      sync.RWMutex
	domains map[string]*SiteMap
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{domains: make(map[string]*SiteMap)}
}

// Lookup returns the site map for hostname, if one exists.
func (s *Store) Lookup(hostname string) (*SiteMap, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.domains[strings.ToLower(hostname)]
	return m, ok
}

// begin transitions a domain into in_progress and returns its map. The
// second return is false when a crawl for that domain is already running;
// a completed or failed crawl may be restarted, which replaces the old map.
func (s *Store) begin(hostname, baseURL string) (*SiteMap, bool) {
	hostname = strings.ToLower(hostname)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.domains[hostname]; ok && existing.Status() == domain.CrawlInProgress {
		return existing, false
	}

	m := &SiteMap{
		baseURL:  baseURL,
		hostname: hostname,
		pages:    make(map[string]domain.PageRecord),
		status:   domain.CrawlInProgress,
	}
	s.domains[hostname] = m
	return m, true
}

// NormalizeURL defaults the scheme to https and strips a trailing slash,
// so "example.com" and "https://example.com/" map to the same domain.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "URL must not be empty"}
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}
	if u.Hostname() == "" {
		return "", &coreerrors.ValidationError{Field: "url", Message: "URL has no host"}
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String(), nil
}
