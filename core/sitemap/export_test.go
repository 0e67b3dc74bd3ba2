package sitemap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navassist-api/core/domain"
)

func builtSiteMap() *SiteMap {
	m := &SiteMap{
		baseURL:  "https://ex.com",
		hostname: "ex.com",
		pages:    make(map[string]domain.PageRecord),
		status:   domain.CrawlCompleted,
	}
	crawledAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	m.put(domain.PageRecord{
		URL:       "https://ex.com",
		Title:     "Acme Home",
		Keywords:  []string{"acme", "widgets"},
		Headings:  []string{"Welcome"},
		CrawledAt: crawledAt,
		Links: []domain.LinkRef{
			{URL: "https://ex.com/pricing", Text: "Pricing"},
			{URL: "https://ex.com/docs/install", Text: "Install"},
			{URL: "https://other.com/x", Text: "Other", IsExternal: true},
		},
	})
	m.put(domain.PageRecord{
		URL:       "https://ex.com/pricing",
		Title:     "Pricing Plans",
		Keywords:  []string{"pricing", "plans", "cost"},
		Headings:  []string{"Plans", "Enterprise"},
		CrawledAt: crawledAt,
		Links: []domain.LinkRef{
			{URL: "https://ex.com/docs/install", Text: "Install"},
		},
	})
	m.put(domain.PageRecord{
		URL:       "https://ex.com/docs/install",
		Title:     "Install Guide",
		Keywords:  []string{"install", "setup"},
		Headings:  []string{"Install"},
		CrawledAt: crawledAt,
	})
	m.put(domain.PageRecord{
		URL:       "https://ex.com/orphan",
		Title:     "Lonely",
		CrawledAt: crawledAt,
	})
	return m
}

func TestTree_RendersPathHierarchy(t *testing.T) {
	tree := Tree(builtSiteMap())

	assert.Contains(t, tree, "ex.com (Acme Home)")
	assert.Contains(t, tree, "pricing (Pricing Plans)")
	assert.Contains(t, tree, "docs")
	assert.Contains(t, tree, "install (Install Guide)")
}

func TestStructure_BucketsByPathDepth(t *testing.T) {
	structure := Structure(builtSiteMap())

	assert.Equal(t, "ex.com", structure.Hostname)
	assert.Equal(t, 4, structure.TotalUniqueLinks)
	assert.Len(t, structure.LinksByDepth[0], 1)
	assert.Len(t, structure.LinksByDepth[1], 2)
	require.Len(t, structure.LinksByDepth[2], 1)
	assert.Equal(t, "/docs/install", structure.LinksByDepth[2][0].Path)
}

func TestReport_Aggregates(t *testing.T) {
	report := Report(builtSiteMap())

	assert.Equal(t, "ex.com", report.Hostname)
	assert.Equal(t, domain.CrawlCompleted, report.Status)
	assert.Equal(t, 4, report.TotalPages)
	assert.Equal(t, 3, report.InternalLinkCount)
	assert.Equal(t, 1, report.ExternalLinkCount)
	assert.Equal(t, 2, report.MaxPathDepth)

	require.NotEmpty(t, report.MostLinkedPages)
	assert.Equal(t, "https://ex.com/docs/install", report.MostLinkedPages[0].URL)
	assert.Equal(t, 2, report.MostLinkedPages[0].Inbound)

	assert.Contains(t, report.OrphanedPages, "https://ex.com/orphan")
	assert.NotContains(t, report.OrphanedPages, "https://ex.com", "the seed page is never orphaned")
}

func TestExportXML_IncludesLocAndLastmod(t *testing.T) {
	body, err := ExportXML(builtSiteMap())

	require.NoError(t, err)
	xml := string(body)
	assert.Contains(t, xml, "<urlset")
	assert.Contains(t, xml, "<loc>https://ex.com/pricing</loc>")
	assert.Contains(t, xml, "<lastmod>2026-08-01</lastmod>")
}

func TestFindRelevantPages_RanksByTopicSignals(t *testing.T) {
	candidates := FindRelevantPages(builtSiteMap(), "pricing plans")

	require.NotEmpty(t, candidates)
	assert.Equal(t, "https://ex.com/pricing", candidates[0].URL)
	assert.Contains(t, candidates[0].MatchedTopics, "pricing")

	assert.Empty(t, FindRelevantPages(builtSiteMap(), "a an"), "short tokens never match")
}
