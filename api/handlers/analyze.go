// ABOUTME: Analyze handler for building the structure snapshot of a website
// ABOUTME: Triggers the background domain crawl alongside the synchronous entry-page analysis

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"navassist-api/core/domain"
	"navassist-api/core/navigation"
	"navassist-api/core/services"
)

// AnalyzeHandler handles website structure analysis
type AnalyzeHandler struct {
	analysis *services.AnalysisService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysis *services.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysis: analysis,
	}
}

// RegisterRoutes registers analysis routes
func (h *AnalyzeHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "analyzeSite",
		Method:      http.MethodPost,
		Path:        "/analyze",
		Summary:     "Analyze a website's structure",
		Description: "Fetches and parses the entry page, returns the structure snapshot, and starts a background crawl of the domain",
		Tags:        []string{"Analysis"},
	}, h.AnalyzeSite)
}

// AnalyzeInput defines the input for site analysis
type AnalyzeInput struct {
	Body struct {
		URL               string `json:"url" doc:"Website URL to analyze"`
		MaxDepth          int    `json:"max_depth,omitempty" doc:"Crawl depth limit, defaults to server configuration"`
		MaxPages          int    `json:"max_pages,omitempty" doc:"Crawl page budget, defaults to server configuration"`
		RequestsPerMinute int    `json:"requests_per_minute,omitempty" doc:"Per-domain fetch rate for this crawl, defaults to server configuration"`
	}
}

// AnalyzeOutput defines the output for site analysis
type AnalyzeOutput struct {
	Body struct {
		Structure *domain.SiteStructure `json:"structure" doc:"Entry-page structure with crawl state"`
		Summary   string                `json:"summary" doc:"Human-readable analysis summary"`
	}
}

// AnalyzeSite handles the POST /analyze endpoint
func (h *AnalyzeHandler) AnalyzeSite(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	if input.Body.URL == "" {
		return nil, huma.Error400BadRequest("No URL provided")
	}

	limits := domain.CrawlLimits{
		MaxDepth:          input.Body.MaxDepth,
		MaxPages:          input.Body.MaxPages,
		RequestsPerMinute: input.Body.RequestsPerMinute,
	}

	structure, err := h.analysis.AnalyzeWithLimits(ctx, input.Body.URL, limits)
	if err != nil {
		return nil, toHumaError(err)
	}

	output := &AnalyzeOutput{}
	output.Body.Structure = structure
	output.Body.Summary = navigation.AnalysisSummary(structure)
	return output, nil
}
