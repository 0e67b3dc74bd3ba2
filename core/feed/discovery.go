// ABOUTME: RSS/Atom feed discovery used to seed domain crawls with extra URLs
// ABOUTME: Locates feed links in page markup, parses the feed, and returns same-domain item URLs

package feed

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"navassist-api/core/interfaces"
)

const maxSeedURLs = 10

// fallbackFeedPaths are probed when the page markup carries no feed link.
var fallbackFeedPaths = []string{"/feed", "/rss", "/feed.xml", "/rss.xml"}

// Discovery finds a site's RSS or Atom feed and turns its entries into
// crawl seed URLs. Entries pointing off the site's domain are dropped.
// All probes go through the rate-limited fetcher, so they share the
// crawl's per-domain spacing and page cache.
type Discovery struct {
	fetcher interfaces.Fetcher
	logger  interfaces.Logger
	parser  *gofeed.Parser
}

// NewDiscovery creates a feed discovery seeded crawl helper.
func NewDiscovery(fetcher interfaces.Fetcher, logger interfaces.Logger) *Discovery {
	return &Discovery{
		fetcher: fetcher,
		logger:  logger,
		parser:  gofeed.NewParser(),
	}
}

// Seeds returns same-domain URLs pulled from the site's feed, or nil when
// no feed can be found. Discovery failures are logged, never surfaced;
// a crawl works fine without seeds.
func (d *Discovery) Seeds(ctx context.Context, baseURL string) []string {
	feedURL := d.locateFeed(ctx, baseURL)
	if feedURL == "" {
		return nil
	}

	parsed, err := d.fetchFeed(ctx, feedURL)
	if err != nil {
		d.logger.Debug("feed parse failed", map[string]interface{}{
			"feed_url": feedURL,
			"error":    err.Error(),
		})
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seeds := make([]string, 0, maxSeedURLs)
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		link, err := url.Parse(item.Link)
		if err != nil || !link.IsAbs() {
			continue
		}
		if !strings.EqualFold(link.Hostname(), base.Hostname()) {
			continue
		}
		seeds = append(seeds, item.Link)
		if len(seeds) == maxSeedURLs {
			break
		}
	}

	if len(seeds) > 0 {
		d.logger.Info("feed seeds discovered", map[string]interface{}{
			"feed_url": feedURL,
			"count":    len(seeds),
		})
	}
	return seeds
}

// locateFeed returns the site's feed URL, checking the entry page markup
// first and common feed paths second.
func (d *Discovery) locateFeed(ctx context.Context, baseURL string) string {
	if feedURL := d.feedFromMarkup(ctx, baseURL); feedURL != "" {
		return feedURL
	}

	for _, path := range fallbackFeedPaths {
		candidate := strings.TrimRight(baseURL, "/") + path
		if d.looksLikeFeed(ctx, candidate) {
			return candidate
		}
	}
	return ""
}

// feedFromMarkup scans the entry page for rel="alternate" feed links.
// The entry page is normally already in the fetch cache from analysis,
// so this costs no extra request.
func (d *Discovery) feedFromMarkup(ctx context.Context, baseURL string) string {
	body, err := d.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var feedURL string
	doc.Find(`link[type="application/rss+xml"], link[type="application/atom+xml"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return true
		}
		feedURL = absoluteURL(baseURL, href)
		return feedURL == ""
	})
	return feedURL
}

// looksLikeFeed probes a candidate path and checks that the body parses
// as a feed.
func (d *Discovery) looksLikeFeed(ctx context.Context, candidate string) bool {
	parsed, err := d.fetchFeed(ctx, candidate)
	return err == nil && parsed != nil
}

func (d *Discovery) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := d.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return d.parser.ParseString(body)
}

// absoluteURL resolves href against base, returning "" when either fails
// to parse.
func absoluteURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return b.ResolveReference(u).String()
}
