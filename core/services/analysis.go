// ABOUTME: Site analysis service assembling the structure snapshot for a URL
// ABOUTME: Fetches the entry page, extracts structure, enriches metadata, and kicks off the background crawl

package services

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
	"navassist-api/core/extract"
	"navassist-api/core/interfaces"
	"navassist-api/core/sitemap"
)

const analysisCacheTTL = time.Hour

// AnalysisService answers "what does this site look like" for a URL. The
// entry page is fetched and parsed synchronously; the rest of the domain
// is mapped by a background crawl whose progress shows up on subsequent
// calls.
type AnalysisService struct {
	fetcher   interfaces.Fetcher
	extractor *extract.Extractor
	store     *sitemap.Store
	crawler   *sitemap.Crawler
	metadata  *MetadataService
	cache     interfaces.Cache
	logger    interfaces.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	fetcher interfaces.Fetcher,
	extractor *extract.Extractor,
	store *sitemap.Store,
	crawler *sitemap.Crawler,
	metadata *MetadataService,
	cache interfaces.Cache,
	logger interfaces.Logger,
) *AnalysisService {
	return &AnalysisService{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		crawler:   crawler,
		metadata:  metadata,
		cache:     cache,
		logger:    logger,
	}
}

// Analyze builds a fresh structure snapshot for rawURL and starts the
// domain crawl if one isn't already running or finished.
func (s *AnalysisService) Analyze(ctx context.Context, rawURL string) (*domain.SiteStructure, error) {
	return s.AnalyzeWithLimits(ctx, rawURL, domain.CrawlLimits{})
}

// AnalyzeWithLimits is Analyze with per-request crawl bounds. Zero fields
// fall back to the crawler's configured limits.
func (s *AnalysisService) AnalyzeWithLimits(ctx context.Context, rawURL string, limits domain.CrawlLimits) (*domain.SiteStructure, error) {
	normalized, err := sitemap.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	hostname, err := hostnameOf(normalized)
	if err != nil {
		return nil, err
	}

	htmlContent, err := s.fetcher.Fetch(ctx, normalized)
	if err != nil {
		return nil, err
	}

	structure, err := s.extractor.Extract(htmlContent, normalized)
	if err != nil {
		return nil, err
	}

	if s.metadata != nil {
		structure.MetaInfo = s.metadata.Enrich(ctx, normalized, structure.MetaInfo)
	}

	for _, link := range structure.NavigationLinks {
		if link.IsExternal {
			structure.ExternalLinkCount++
		} else {
			structure.InternalLinkCount++
		}
	}

	// The crawl outlives the request that triggered it.
	started, err := s.crawler.StartCrawlWithLimits(context.Background(), normalized, limits)
	if err != nil {
		return nil, err
	}
	if started {
		s.logger.Info("background crawl started", map[string]interface{}{"domain": hostname})
	}

	s.attachCrawlState(structure, hostname)
	s.storeSnapshot(ctx, hostname, structure)

	return structure, nil
}

// Structure returns the snapshot for rawURL, from cache when one exists
// and via a fresh analysis otherwise. Query mapping and routing go
// through here so a site only needs analyzing once.
func (s *AnalysisService) Structure(ctx context.Context, rawURL string) (*domain.SiteStructure, error) {
	normalized, err := sitemap.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	hostname, err := hostnameOf(normalized)
	if err != nil {
		return nil, err
	}

	if cached := s.loadSnapshot(ctx, hostname); cached != nil {
		s.attachCrawlState(cached, hostname)
		return cached, nil
	}

	return s.Analyze(ctx, normalized)
}

// Sitemap returns the crawl map for a hostname, or a ValidationError when
// the domain was never analyzed.
func (s *AnalysisService) Sitemap(hostname string) (*sitemap.SiteMap, error) {
	m, ok := s.store.Lookup(hostname)
	if !ok {
		return nil, &coreerrors.ValidationError{
			Field:   "domain",
			Message: "domain has not been analyzed yet",
		}
	}
	return m, nil
}

// attachCrawlState overlays the background crawl's current progress onto
// a snapshot.
func (s *AnalysisService) attachCrawlState(structure *domain.SiteStructure, hostname string) {
	m, ok := s.store.Lookup(hostname)
	if !ok {
		structure.CrawlStatus = domain.CrawlNotStarted
		return
	}
	structure.CrawlStatus = m.Status()
	structure.SitemapStructure = sitemap.Structure(m)
}

func (s *AnalysisService) storeSnapshot(ctx context.Context, hostname string, structure *domain.SiteStructure) {
	if s.cache == nil {
		return
	}
	key := snapshotKey(hostname)

	if jsonCache, ok := s.cache.(interfaces.JSONCache); ok {
		if err := jsonCache.SetJSON(ctx, key, structure); err == nil {
			return
		}
	}

	data, err := json.Marshal(structure)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, analysisCacheTTL); err != nil {
		s.logger.Debug("snapshot cache write failed", map[string]interface{}{
			"domain": hostname,
			"error":  err.Error(),
		})
	}
}

func (s *AnalysisService) loadSnapshot(ctx context.Context, hostname string) *domain.SiteStructure {
	if s.cache == nil {
		return nil
	}
	key := snapshotKey(hostname)

	if jsonCache, ok := s.cache.(interfaces.JSONCache); ok {
		var structure domain.SiteStructure
		if err := jsonCache.GetJSON(ctx, key, &structure); err == nil && structure.URL != "" {
			return &structure
		}
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var structure domain.SiteStructure
	if err := json.Unmarshal(data, &structure); err != nil {
		return nil
	}
	return &structure
}

func snapshotKey(hostname string) string {
	return "analysis:" + hostname
}

func hostnameOf(normalized string) (string, error) {
	u, err := url.Parse(normalized)
	if err != nil {
		return "", &coreerrors.ValidationError{Field: "url", Message: err.Error()}
	}
	return u.Hostname(), nil
}
