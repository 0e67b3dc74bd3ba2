// ABOUTME: SiteStructure domain model assembled from one page's extraction
// ABOUTME: Read-only projection combining navigation, content, forms and crawl stats

package domain

// MetaInfo holds the page-level meta and Open Graph tags that were present.
// Absent tags stay empty rather than erroring.
type MetaInfo struct {
	Description   string `json:"description,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	OGTitle       string `json:"og_title,omitempty"`
	OGDescription string `json:"og_description,omitempty"`
	OGImage       string `json:"og_image,omitempty"`
}

// ContentSection is a heading plus the text accumulated until the next heading.
type ContentSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Length  int    `json:"length"`
}

// FormField describes one non-submit input of a form.
type FormField struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// Form is a classified form found on the page. Purpose is one of
// search, login, registration, contact, newsletter or unknown.
type Form struct {
	Action  string      `json:"action"`
	Method  string      `json:"method"`
	Purpose string      `json:"purpose"`
	Fields  []FormField `json:"fields"`
}

// SocialLink is an anchor pointing at a known social platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Text     string `json:"text"`
}

// DepthLink summarizes one internal link bucketed by its path depth.
type DepthLink struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Text string `json:"text"`
}

// SitemapStructure aggregates crawl-derived link statistics.
type SitemapStructure struct {
	Hostname         string              `json:"hostname"`
	LinksByDepth     map[int][]DepthLink `json:"links_by_depth"`
	TotalUniqueLinks int                 `json:"total_unique_links"`
}

// SiteStructure is the query-time snapshot returned to callers. It is
// assembled on demand from the entry page's extraction plus whatever the
// background crawl has mapped so far; it is never persisted separately.
type SiteStructure struct {
	URL               string           `json:"url"`
	Title             string           `json:"title"`
	MetaInfo          MetaInfo         `json:"meta_info"`
	NavigationLinks   []LinkRef        `json:"navigation_links"`
	ContentSections   []ContentSection `json:"content_sections"`
	Forms             []Form           `json:"forms,omitempty"`
	SocialLinks       []SocialLink     `json:"social_links,omitempty"`
	SitemapStructure  SitemapStructure `json:"sitemap_structure"`
	InternalLinkCount int              `json:"internal_link_count"`
	ExternalLinkCount int              `json:"external_link_count"`
	CrawlStatus       CrawlStatus      `json:"crawl_status"`
}
