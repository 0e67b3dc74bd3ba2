// ABOUTME: Crawl report aggregation: link counts, keyword frequencies, link graph stats
// ABOUTME: Read-only projection over a completed or in-progress site map

package sitemap

import (
	"net/url"
	"sort"

	"navassist-api/core/domain"
)

const (
	reportTopKeywords = 20
	reportTopLinked   = 10
)

// KeywordCount pairs a keyword with how many pages carry it.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// LinkedPage pairs a page URL with how many mapped pages link to it.
type LinkedPage struct {
	URL     string `json:"url"`
	Inbound int    `json:"inbound"`
	Title   string `json:"title,omitempty"`
}

// CrawlReport summarizes one domain's mapping run.
type CrawlReport struct {
	Hostname          string             `json:"hostname"`
	Status            domain.CrawlStatus `json:"status"`
	TotalPages        int                `json:"total_pages"`
	InternalLinkCount int                `json:"internal_link_count"`
	ExternalLinkCount int                `json:"external_link_count"`
	MaxPathDepth      int                `json:"max_path_depth"`
	TopKeywords       []KeywordCount     `json:"top_keywords"`
	MostLinkedPages   []LinkedPage       `json:"most_linked_pages"`
	OrphanedPages     []string           `json:"orphaned_pages"`
}

// Report builds a CrawlReport over whatever the crawl has mapped so far.
func Report(m *SiteMap) CrawlReport {
	pages := m.Pages()

	report := CrawlReport{
		Hostname:   m.Hostname(),
		Status:     m.Status(),
		TotalPages: len(pages),
	}

	keywordPages := make(map[string]int)
	inbound := make(map[string]int)
	titles := make(map[string]string)

	for _, page := range pages {
		titles[page.URL] = page.Title

		if u, err := url.Parse(page.URL); err == nil {
			if depth := len(pathSegments(u.Path)); depth > report.MaxPathDepth {
				report.MaxPathDepth = depth
			}
		}

		seen := make(map[string]bool, len(page.Keywords))
		for _, keyword := range page.Keywords {
			if !seen[keyword] {
				seen[keyword] = true
				keywordPages[keyword]++
			}
		}

		for _, link := range page.Links {
			if link.IsExternal {
				report.ExternalLinkCount++
				continue
			}
			report.InternalLinkCount++
			if link.URL != page.URL {
				inbound[link.URL]++
			}
		}
	}

	report.TopKeywords = topKeywords(keywordPages)
	report.MostLinkedPages = mostLinked(inbound, titles)

	for _, page := range pages {
		if inbound[page.URL] == 0 && page.URL != m.BaseURL() {
			report.OrphanedPages = append(report.OrphanedPages, page.URL)
		}
	}
	sort.Strings(report.OrphanedPages)

	return report
}

func topKeywords(counts map[string]int) []KeywordCount {
	ranked := make([]KeywordCount, 0, len(counts))
	for keyword, count := range counts {
		ranked = append(ranked, KeywordCount{Keyword: keyword, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})
	if len(ranked) > reportTopKeywords {
		ranked = ranked[:reportTopKeywords]
	}
	return ranked
}

func mostLinked(inbound map[string]int, titles map[string]string) []LinkedPage {
	ranked := make([]LinkedPage, 0, len(inbound))
	for target, count := range inbound {
		ranked = append(ranked, LinkedPage{URL: target, Inbound: count, Title: titles[target]})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Inbound != ranked[j].Inbound {
			return ranked[i].Inbound > ranked[j].Inbound
		}
		return ranked[i].URL < ranked[j].URL
	})
	if len(ranked) > reportTopLinked {
		ranked = ranked[:reportTopLinked]
	}
	return ranked
}
