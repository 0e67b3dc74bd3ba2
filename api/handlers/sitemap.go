// ABOUTME: Sitemap handlers exposing the crawl map, report, sitemap.xml export, and topic search
// ABOUTME: All routes read the live store, so partial results show while a crawl runs

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"navassist-api/core/domain"
	"navassist-api/core/services"
	"navassist-api/core/sitemap"
)

// SitemapHandler handles crawl map queries
type SitemapHandler struct {
	analysis *services.AnalysisService
}

// NewSitemapHandler creates a new sitemap handler
func NewSitemapHandler(analysis *services.AnalysisService) *SitemapHandler {
	return &SitemapHandler{
		analysis: analysis,
	}
}

// RegisterRoutes registers sitemap routes
func (h *SitemapHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSitemap",
		Method:      http.MethodGet,
		Path:        "/sitemap/{domain}",
		Summary:     "Get the crawl map for a domain",
		Description: "Returns the pages mapped so far plus the crawl status; partial while the crawl is in progress",
		Tags:        []string{"Sitemap"},
	}, h.GetSitemap)

	huma.Register(api, huma.Operation{
		OperationID: "getSitemapReport",
		Method:      http.MethodGet,
		Path:        "/sitemap/{domain}/report",
		Summary:     "Get the crawl report for a domain",
		Tags:        []string{"Sitemap"},
	}, h.GetReport)

	huma.Register(api, huma.Operation{
		OperationID: "exportSitemapXML",
		Method:      http.MethodGet,
		Path:        "/sitemap/{domain}/export",
		Summary:     "Export a domain's crawl map as sitemap.xml",
		Tags:        []string{"Sitemap"},
	}, h.ExportXML)

	huma.Register(api, huma.Operation{
		OperationID: "searchSitemap",
		Method:      http.MethodGet,
		Path:        "/sitemap/{domain}/search",
		Summary:     "Find mapped pages relevant to a topic",
		Tags:        []string{"Sitemap"},
	}, h.SearchTopic)
}

// SitemapInput identifies a mapped domain
type SitemapInput struct {
	Domain string `path:"domain" doc:"Hostname of the analyzed site, e.g. example.com"`
}

// SitemapOutput is the live crawl map projection
type SitemapOutput struct {
	Body struct {
		Hostname  string                  `json:"hostname"`
		BaseURL   string                  `json:"base_url"`
		Status    domain.CrawlStatus      `json:"status"`
		PageCount int                     `json:"page_count"`
		Pages     []domain.PageRecord     `json:"pages"`
		Tree      string                  `json:"tree" doc:"Box-drawing rendering of the site's path tree"`
		Structure domain.SitemapStructure `json:"structure"`
	}
}

// GetSitemap handles the GET /sitemap/{domain} endpoint
func (h *SitemapHandler) GetSitemap(ctx context.Context, input *SitemapInput) (*SitemapOutput, error) {
	m, err := h.analysis.Sitemap(input.Domain)
	if err != nil {
		return nil, toHumaError(err)
	}

	output := &SitemapOutput{}
	output.Body.Hostname = m.Hostname()
	output.Body.BaseURL = m.BaseURL()
	output.Body.Status = m.Status()
	output.Body.Pages = m.Pages()
	output.Body.PageCount = len(output.Body.Pages)
	output.Body.Tree = sitemap.Tree(m)
	output.Body.Structure = sitemap.Structure(m)
	return output, nil
}

// ReportOutput wraps the crawl report
type ReportOutput struct {
	Body sitemap.CrawlReport
}

// GetReport handles the GET /sitemap/{domain}/report endpoint
func (h *SitemapHandler) GetReport(ctx context.Context, input *SitemapInput) (*ReportOutput, error) {
	m, err := h.analysis.Sitemap(input.Domain)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ReportOutput{Body: sitemap.Report(m)}, nil
}

// XMLExportOutput carries the raw sitemap.xml document
type XMLExportOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// ExportXML handles the GET /sitemap/{domain}/export endpoint
func (h *SitemapHandler) ExportXML(ctx context.Context, input *SitemapInput) (*XMLExportOutput, error) {
	m, err := h.analysis.Sitemap(input.Domain)
	if err != nil {
		return nil, toHumaError(err)
	}

	data, err := sitemap.ExportXML(m)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &XMLExportOutput{
		ContentType: "application/xml",
		Body:        data,
	}, nil
}

// TopicSearchInput identifies a domain and a topic to search for
type TopicSearchInput struct {
	Domain string `path:"domain" doc:"Hostname of the analyzed site"`
	Topic  string `query:"topic" doc:"Topic to search mapped pages for"`
}

// TopicSearchOutput lists mapped pages relevant to the topic
type TopicSearchOutput struct {
	Body struct {
		Topic   string                      `json:"topic"`
		Results []domain.RelevanceCandidate `json:"results"`
	}
}

// SearchTopic handles the GET /sitemap/{domain}/search endpoint
func (h *SitemapHandler) SearchTopic(ctx context.Context, input *TopicSearchInput) (*TopicSearchOutput, error) {
	if input.Topic == "" {
		return nil, huma.Error400BadRequest("No topic provided")
	}

	m, err := h.analysis.Sitemap(input.Domain)
	if err != nil {
		return nil, toHumaError(err)
	}

	output := &TopicSearchOutput{}
	output.Body.Topic = input.Topic
	output.Body.Results = sitemap.FindRelevantPages(m, input.Topic)
	return output, nil
}
