// ABOUTME: Breadth-first site crawler populating per-domain site maps
// ABOUTME: Bounded by depth, page budget and an error ratio; runs in background

package sitemap

import (
	"context"
	"net/url"
	"strings"

	"navassist-api/core/domain"
	"navassist-api/core/extract"
	"navassist-api/core/interfaces"
)

// chromeSections name navigation areas whose links are enqueued after
// content links, so the page budget is spent on substantive pages first.
var chromeSections = map[string]bool{
	"main navigation":    true,
	"header navigation":  true,
	"primary navigation": true,
}

// SeedProvider supplies extra same-domain URLs to enqueue alongside the
// seed page, e.g. from a discovered RSS feed.
type SeedProvider interface {
	Seeds(ctx context.Context, baseURL string) []string
}

type queueItem struct {
	url   string
	depth int
}

// Crawler owns the traversal of one domain at a time per domain. At most
// one crawl per domain runs concurrently; unrelated domains crawl in
// parallel.
type Crawler struct {
	store   *Store
	fetcher interfaces.Fetcher
	logger  interfaces.Logger
	limits  domain.CrawlLimits
	seeds   SeedProvider
}

// NewCrawler creates a crawler over store. seeds may be nil.
func NewCrawler(store *Store, fetcher interfaces.Fetcher, logger interfaces.Logger, limits domain.CrawlLimits, seeds SeedProvider) *Crawler {
	if limits.MaxPages <= 0 {
		limits = domain.DefaultCrawlLimits()
	}
	return &Crawler{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		limits:  limits,
		seeds:   seeds,
	}
}

// StartCrawl begins a background crawl of baseURL's domain. It returns
// false without starting anything when a crawl for that domain is already
// in progress. The caller never blocks on crawl completion; it reads
// partial results from the store at any time.
func (c *Crawler) StartCrawl(ctx context.Context, baseURL string) (bool, error) {
	return c.StartCrawlWithLimits(ctx, baseURL, c.limits)
}

// StartCrawlWithLimits is StartCrawl with the configured bounds replaced
// for this one crawl. Zero or negative fields fall back to the configured
// values.
func (c *Crawler) StartCrawlWithLimits(ctx context.Context, baseURL string, limits domain.CrawlLimits) (bool, error) {
	if limits.MaxPages <= 0 {
		limits.MaxPages = c.limits.MaxPages
	}
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = c.limits.MaxDepth
	}
	if limits.RequestsPerMinute <= 0 {
		limits.RequestsPerMinute = c.limits.RequestsPerMinute
	}

	normalized, err := NormalizeURL(baseURL)
	if err != nil {
		return false, err
	}

	seed, err := url.Parse(normalized)
	if err != nil {
		return false, err
	}

	siteMap, ok := c.store.begin(seed.Hostname(), normalized)
	if !ok {
		c.logger.Debug("Crawl already in progress", map[string]interface{}{"domain": seed.Hostname()})
		return false, nil
	}

	// Applied on every start so an override left by an earlier crawl
	// of the same domain never outlives that crawl.
	if adjustable, ok := c.fetcher.(interfaces.RateAdjustableFetcher); ok {
		adjustable.SetDomainRate(seed.Hostname(), limits.RequestsPerMinute)
	}

	go c.crawl(ctx, siteMap, seed.Hostname(), normalized, limits)
	return true, nil
}

func (c *Crawler) crawl(ctx context.Context, siteMap *SiteMap, hostname, baseURL string, limits domain.CrawlLimits) {
	status := domain.CrawlCompleted
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Crawl aborted", map[string]interface{}{"domain": hostname, "panic": r})
			status = domain.CrawlError
		}
		siteMap.finish(status)
	}()

	queue := []queueItem{{url: baseURL, depth: 0}}
	for _, extra := range c.seedURLs(ctx, hostname, baseURL) {
		queue = append(queue, queueItem{url: extra, depth: 1})
	}

	visited := make(map[string]bool)
	errorBudget := float64(limits.MaxPages) * 0.5

	for len(queue) > 0 {
		if len(visited) >= limits.MaxPages {
			break
		}

		item := queue[0]
		queue = queue[1:]

		if visited[item.url] || item.depth > limits.MaxDepth {
			continue
		}
		if !sameHost(item.url, hostname) {
			continue
		}
		visited[item.url] = true

		html, err := c.fetcher.Fetch(ctx, item.url)
		if err != nil {
			c.logger.Warn("Fetch failed", map[string]interface{}{"url": item.url, "error": err.Error()})
			if float64(siteMap.recordError()) >= errorBudget {
				c.logger.Warn("Abandoning crawl, too many failures", map[string]interface{}{"domain": hostname})
				break
			}
			continue
		}

		record, err := extract.Record(html, item.url)
		if err != nil {
			c.logger.Warn("Page extraction failed", map[string]interface{}{"url": item.url, "error": err.Error()})
			if float64(siteMap.recordError()) >= errorBudget {
				break
			}
			continue
		}
		siteMap.put(*record)

		if item.depth < limits.MaxDepth {
			queue = append(queue, childItems(record, hostname, visited, item.depth+1)...)
		}
	}

	c.logger.Info("Crawl finished", map[string]interface{}{
		"domain": hostname,
		"pages":  siteMap.Len(),
	})
}

// childItems orders a page's same-domain links content-first, with chrome
// navigation links trailing.
func childItems(record *domain.PageRecord, hostname string, visited map[string]bool, depth int) []queueItem {
	var content, chrome []queueItem
	for _, link := range record.Links {
		if link.IsExternal || visited[link.URL] || !sameHost(link.URL, hostname) {
			continue
		}
		item := queueItem{url: link.URL, depth: depth}
		if chromeSections[strings.ToLower(link.Section)] {
			chrome = append(chrome, item)
		} else {
			content = append(content, item)
		}
	}
	return append(content, chrome...)
}

func (c *Crawler) seedURLs(ctx context.Context, hostname, baseURL string) []string {
	if c.seeds == nil {
		return nil
	}
	var urls []string
	for _, candidate := range c.seeds.Seeds(ctx, baseURL) {
		if sameHost(candidate, hostname) {
			urls = append(urls, candidate)
		}
	}
	return urls
}

func sameHost(rawURL, hostname string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), hostname)
}
