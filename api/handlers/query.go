// ABOUTME: Query handlers mapping user queries onto analyzed sites and routing agent runs
// ABOUTME: A detected security breach returns 403 and never leaks candidates or prompts

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"navassist-api/core/agent"
	"navassist-api/core/domain"
	"navassist-api/core/relevance"
	"navassist-api/core/services"
)

// QueryHandler maps queries to relevant pages and builds agent run inputs
type QueryHandler struct {
	analysis *services.AnalysisService
	engine   *relevance.Engine
	agents   *agent.Service
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(analysis *services.AnalysisService, engine *relevance.Engine, agents *agent.Service) *QueryHandler {
	return &QueryHandler{
		analysis: analysis,
		engine:   engine,
		agents:   agents,
	}
}

// RegisterRoutes registers query routes
func (h *QueryHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "mapQuery",
		Method:      http.MethodPost,
		Path:        "/query/map",
		Summary:     "Map a query to relevant pages",
		Description: "Scores the analyzed site's pages against the query; returns 403 when the query is flagged as a manipulation attempt",
		Tags:        []string{"Query"},
	}, h.MapQuery)

	huma.Register(api, huma.Operation{
		OperationID: "routeQuery",
		Method:      http.MethodPost,
		Path:        "/query/route",
		Summary:     "Build the agent run input for a query",
		Description: "Picks the starting URL and assembles the system and task prompts for a browsing agent",
		Tags:        []string{"Query"},
	}, h.RouteQuery)
}

// MapQueryInput defines the input for query mapping
type MapQueryInput struct {
	Body struct {
		Query  string `json:"query" doc:"The user's natural-language query"`
		Domain string `json:"domain" doc:"Hostname or URL of the analyzed site"`
	}
}

// MapQueryOutput lists the scored candidate pages
type MapQueryOutput struct {
	Body struct {
		Query      string                      `json:"query"`
		Candidates []domain.RelevanceCandidate `json:"candidates"`
	}
}

// MapQuery handles the POST /query/map endpoint
func (h *QueryHandler) MapQuery(ctx context.Context, input *MapQueryInput) (*MapQueryOutput, error) {
	if input.Body.Query == "" {
		return nil, huma.Error400BadRequest("No query provided")
	}
	if input.Body.Domain == "" {
		return nil, huma.Error400BadRequest("No domain provided")
	}

	candidates, _, err := h.mapQuery(ctx, input.Body.Query, input.Body.Domain)
	if err != nil {
		return nil, toHumaError(err)
	}

	output := &MapQueryOutput{}
	output.Body.Query = input.Body.Query
	output.Body.Candidates = candidates
	return output, nil
}

// RouteQueryInput defines the input for agent run routing
type RouteQueryInput struct {
	Body struct {
		Query   string `json:"query" doc:"The user's natural-language query"`
		Domain  string `json:"domain" doc:"Hostname or URL of the analyzed site"`
		BaseURL string `json:"base_url,omitempty" doc:"Entry URL override; defaults to the analyzed site's URL"`
	}
}

// RouteQueryOutput is the full input bundle for a browsing agent run
type RouteQueryOutput struct {
	Body struct {
		StartingURL  string                      `json:"starting_url"`
		SystemPrompt string                      `json:"system_prompt"`
		TaskPrompt   string                      `json:"task_prompt"`
		RelevantPage bool                        `json:"relevant_page" doc:"True when the run starts on a query-specific page rather than the site root"`
		Candidates   []domain.RelevanceCandidate `json:"candidates"`
	}
}

// RouteQuery handles the POST /query/route endpoint
func (h *QueryHandler) RouteQuery(ctx context.Context, input *RouteQueryInput) (*RouteQueryOutput, error) {
	if input.Body.Query == "" {
		return nil, huma.Error400BadRequest("No query provided")
	}
	if input.Body.Domain == "" {
		return nil, huma.Error400BadRequest("No domain provided")
	}

	candidates, site, err := h.mapQuery(ctx, input.Body.Query, input.Body.Domain)
	if err != nil {
		return nil, toHumaError(err)
	}

	baseURL := input.Body.BaseURL
	if baseURL == "" {
		baseURL = site.URL
	}

	task := h.agents.PrepareTask(site, candidates, input.Body.Query, baseURL)

	output := &RouteQueryOutput{}
	output.Body.StartingURL = task.StartingURL
	output.Body.SystemPrompt = task.SystemPrompt
	output.Body.TaskPrompt = task.Task
	output.Body.RelevantPage = task.StartingURL != baseURL
	output.Body.Candidates = candidates
	return output, nil
}

// mapQuery loads the site snapshot and scores its page inventory against
// the query.
func (h *QueryHandler) mapQuery(ctx context.Context, query, siteDomain string) ([]domain.RelevanceCandidate, *domain.SiteStructure, error) {
	site, err := h.analysis.Structure(ctx, siteDomain)
	if err != nil {
		return nil, nil, err
	}

	inventory := relevance.BuildInventory(site)
	candidates, err := h.engine.MapQuery(ctx, query, inventory)
	if err != nil {
		return nil, nil, err
	}

	return candidates, site, nil
}
