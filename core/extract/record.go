// ABOUTME: Lightweight per-page record extraction used by the site crawler
// ABOUTME: Captures title, links, headings and keywords without full structure parsing

package extract

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
)

const maxRecordHeadings = 10

// Record parses one crawled page into a PageRecord. It is cheaper than
// Extract and is what the crawler runs on every page it visits.
func Record(htmlContent, pageURL string) (*domain.PageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &coreerrors.ExtractionError{URL: pageURL, Message: err.Error()}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, &coreerrors.ExtractionError{URL: pageURL, Message: "invalid page URL: " + err.Error()}
	}

	record := &domain.PageRecord{
		URL:       pageURL,
		Title:     extractTitle(doc),
		Keywords:  Keywords(VisibleText(doc)),
		Headings:  recordHeadings(doc),
		CrawledAt: time.Now().UTC(),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveHref(base, href)
		if resolved == "" {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		record.Links = append(record.Links, domain.LinkRef{
			Text:       text,
			URL:        resolved,
			Section:    linkSection(sel),
			IsExternal: isExternal(base, resolved),
		})
	})

	return record, nil
}

// linkSection coarsely buckets an anchor by its nearest container so the
// crawler can enqueue content links ahead of site chrome.
func linkSection(sel *goquery.Selection) string {
	if sel.ParentsFiltered("nav, header").Length() > 0 {
		return "Main Navigation"
	}
	if sel.ParentsFiltered("footer").Length() > 0 {
		return "Footer Links"
	}
	return "Content Section"
}

func recordHeadings(doc *goquery.Document) []string {
	var headings []string
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headings = append(headings, text)
		}
		return len(headings) < maxRecordHeadings
	})
	return headings
}
