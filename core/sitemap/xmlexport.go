// ABOUTME: sitemap.xml export of a mapped domain
// ABOUTME: Emits the standard urlset schema with lastmod from crawl timestamps

package sitemap

import (
	"encoding/xml"
)

const xmlNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// ExportXML serializes the mapped pages as a sitemap.xml document, with
// lastmod taken from each page's crawl time.
func ExportXML(m *SiteMap) ([]byte, error) {
	set := urlSet{Xmlns: xmlNamespace}

	for _, page := range m.Pages() {
		entry := urlEntry{Loc: page.URL}
		if !page.CrawledAt.IsZero() {
			entry.LastMod = page.CrawledAt.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
