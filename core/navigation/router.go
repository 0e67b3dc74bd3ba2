// ABOUTME: Navigation router choosing the single starting URL for an agent run
// ABOUTME: Enforces the same-domain backstop independently of upstream ranking

package navigation

import (
	"net/url"
	"strings"

	"navassist-api/core/domain"
	"navassist-api/core/interfaces"
)

// Router picks a starting URL from ranked relevance candidates.
type Router struct {
	logger interfaces.Logger
}

// NewRouter creates a router.
func NewRouter(logger interfaces.Logger) *Router {
	return &Router{logger: logger}
}

// ChooseStart returns the URL an agent session should begin at. The top
// non-anchor candidate wins; relative URLs resolve against baseURL. A
// proposal whose domain differs from baseURL's is discarded in favor of
// baseURL itself: upstream rankings, especially model-sourced ones, are
// never trusted to keep the agent on-site. With no usable candidate the
// base URL is returned unchanged.
func (r *Router) ChooseStart(candidates []domain.RelevanceCandidate, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	proposal := ""
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate.URL, "#") {
			continue
		}
		proposal = candidate.URL
		break
	}
	if proposal == "" {
		return baseURL
	}

	ref, err := url.Parse(proposal)
	if err != nil {
		r.logger.Warn("Unparseable candidate URL, using base URL", map[string]interface{}{"url": proposal})
		return baseURL
	}
	resolved := base.ResolveReference(ref)

	if !sameDomain(base.Hostname(), resolved.Hostname()) {
		r.logger.Warn("Starting URL domain differs from base domain, falling back", map[string]interface{}{
			"proposed": resolved.String(),
			"base":     baseURL,
		})
		return baseURL
	}

	return resolved.String()
}

// sameDomain compares hostnames with the www prefix normalized away, so
// www.ex.com and ex.com count as the same site.
func sameDomain(base, proposed string) bool {
	trim := func(host string) string {
		return strings.TrimPrefix(strings.ToLower(host), "www.")
	}
	return trim(base) == trim(proposed)
}
