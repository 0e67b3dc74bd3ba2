// ABOUTME: Metadata enrichment service for filling in missing page meta information
// ABOUTME: Uses colly to scrape Open Graph tags and favicons when static extraction comes up empty

package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"navassist-api/core/domain"
	"navassist-api/core/interfaces"
)

const (
	collyUserAgent   = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	metadataCacheTTL = 24 * time.Hour
	metadataTimeout  = 10 * time.Second
)

// PageMetadata is the enrichment result for one URL.
type PageMetadata struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	OGTitle       string `json:"og_title,omitempty"`
	OGDescription string `json:"og_description,omitempty"`
	OGImage       string `json:"og_image,omitempty"`
	Favicon       string `json:"favicon,omitempty"`
}

// MetadataService scrapes meta and Open Graph tags from a live page.
// Results are cached so repeated analyses of the same site stay cheap.
type MetadataService struct {
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewMetadataService creates a new metadata enrichment service
func NewMetadataService(cache interfaces.Cache, logger interfaces.Logger) *MetadataService {
	return &MetadataService{
		cache:  cache,
		logger: logger,
	}
}

// Enrich fills the empty fields of meta with values scraped from targetURL.
// Fields already populated are never overwritten.
func (s *MetadataService) Enrich(ctx context.Context, targetURL string, meta domain.MetaInfo) domain.MetaInfo {
	if meta.Description != "" && meta.OGTitle != "" && meta.OGImage != "" {
		return meta
	}

	scraped := s.extract(ctx, targetURL)
	if scraped == nil {
		return meta
	}

	if meta.Description == "" {
		meta.Description = scraped.Description
	}
	if meta.Keywords == "" {
		meta.Keywords = scraped.Keywords
	}
	if meta.OGTitle == "" {
		meta.OGTitle = scraped.OGTitle
	}
	if meta.OGDescription == "" {
		meta.OGDescription = scraped.OGDescription
	}
	if meta.OGImage == "" {
		meta.OGImage = scraped.OGImage
	}
	return meta
}

// extract returns the scraped metadata for targetURL, consulting the
// cache first.
func (s *MetadataService) extract(ctx context.Context, targetURL string) *PageMetadata {
	cacheKey := "metadata:" + targetURL
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached PageMetadata
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached
			}
		}
	}

	result := s.scrape(targetURL)
	if result == nil {
		return nil
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}
	return result
}

// scrape performs the actual page visit and tag extraction.
func (s *MetadataService) scrape(targetURL string) *PageMetadata {
	if targetURL == "" || targetURL == "about:blank" {
		return nil
	}

	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(5*1024*1024),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(metadataTimeout)

	result := &PageMetadata{}

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		content := e.Attr("content")
		if content == "" {
			return
		}

		switch e.Attr("name") {
		case "description":
			if result.Description == "" {
				result.Description = content
			}
		case "keywords":
			if result.Keywords == "" {
				result.Keywords = content
			}
		case "twitter:image":
			if result.OGImage == "" {
				result.OGImage = content
			}
		}

		switch e.Attr("property") {
		case "og:title":
			if result.OGTitle == "" {
				result.OGTitle = content
			}
		case "og:description":
			if result.OGDescription == "" {
				result.OGDescription = content
			}
		case "og:image":
			if result.OGImage == "" {
				result.OGImage = content
			}
		}
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		if result.Title == "" {
			if title := e.DOM.Find("title").First().Text(); title != "" {
				result.Title = strings.TrimSpace(title)
			}
		}

		e.DOM.Find("link[rel]").Each(func(_ int, sel *goquery.Selection) {
			if result.Favicon != "" {
				return
			}
			href := sel.AttrOr("href", "")
			if href == "" {
				return
			}
			for _, rel := range strings.Fields(sel.AttrOr("rel", "")) {
				if rel == "icon" || rel == "shortcut" || rel == "apple-touch-icon" {
					result.Favicon = e.Request.AbsoluteURL(href)
					return
				}
			}
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		s.logger.Debug("metadata scrape failed", map[string]interface{}{
			"url":    targetURL,
			"error":  err.Error(),
			"status": r.StatusCode,
		})
	})

	if err := c.Visit(targetURL); err != nil {
		s.logger.Debug("metadata visit failed", map[string]interface{}{
			"url":   targetURL,
			"error": err.Error(),
		})
		return result
	}

	return result
}
