// ABOUTME: HTML structure extractor producing SiteStructure records from raw pages
// ABOUTME: Pure function over HTML text plus a base URL, built on goquery

package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
	"navassist-api/core/interfaces"
)

// Extractor parses fetched pages into structured records.
type Extractor struct {
	logger interfaces.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(logger interfaces.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract parses HTML into a SiteStructure. Extraction never panics
// outward: any parse failure is returned as an ExtractionError and the
// caller must treat the page as unusable.
func (e *Extractor) Extract(htmlContent, baseURL string) (structure *domain.SiteStructure, err error) {
	defer func() {
		if r := recover(); r != nil {
			structure = nil
			err = &coreerrors.ExtractionError{URL: baseURL, Message: fmt.Sprintf("parse panic: %v", r)}
		}
	}()

	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if parseErr != nil {
		return nil, &coreerrors.ExtractionError{URL: baseURL, Message: parseErr.Error()}
	}

	base, parseErr := url.Parse(baseURL)
	if parseErr != nil {
		return nil, &coreerrors.ExtractionError{URL: baseURL, Message: "invalid base URL: " + parseErr.Error()}
	}

	structure = &domain.SiteStructure{
		URL:      baseURL,
		Title:    extractTitle(doc),
		MetaInfo: extractMetaInfo(doc),
	}

	navLinks := e.extractNavigationLinks(doc, base)
	navLinks = append(navLinks, e.extractAdditionalNavigation(doc, base)...)
	structure.NavigationLinks = dedupeLinks(navLinks, baseURL)

	structure.ContentSections = extractContentSections(doc, htmlContent, baseURL)
	structure.Forms = extractForms(doc)
	structure.SocialLinks = extractSocialLinks(doc, base)

	return structure, nil
}

// extractTitle returns the page <title>, falling back to the first <h1>,
// then to "Untitled".
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return "Untitled"
}

// extractMetaInfo collects description, keywords and Open Graph tags.
// Absent tags are simply omitted.
func extractMetaInfo(doc *goquery.Document) domain.MetaInfo {
	meta := domain.MetaInfo{}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.Description = content
	}
	if content, ok := doc.Find(`meta[name="keywords"]`).First().Attr("content"); ok {
		meta.Keywords = content
	}
	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		meta.OGTitle = content
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		meta.OGDescription = content
	}
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		meta.OGImage = content
	}

	return meta
}

// resolveHref resolves href against base. Returns "" for unusable schemes.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isExternal reports whether target leaves the base URL's host.
func isExternal(base *url.URL, target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Hostname() != "" && u.Hostname() != base.Hostname()
}

// dedupeLinks drops self-links and repeated URLs, first occurrence wins.
func dedupeLinks(links []domain.LinkRef, baseURL string) []domain.LinkRef {
	seen := make(map[string]bool, len(links))
	deduped := make([]domain.LinkRef, 0, len(links))

	for _, link := range links {
		if link.URL == "" || link.URL == baseURL || link.URL == baseURL+"/" {
			continue
		}
		if seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		deduped = append(deduped, link)
	}

	return deduped
}
