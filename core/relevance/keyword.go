// ABOUTME: Deterministic keyword relevance strategy over the site inventory
// ABOUTME: No external dependency; always available as the fallback ranking

package relevance

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"navassist-api/core/domain"
)

// Weights configures the keyword strategy's scoring signals.
type Weights struct {
	FullQueryMatch float64
	LinkText       float64
	URLPath        float64
	SectionName    float64
	ContentSnippet float64
	PrimaryNav     float64
	TopicMatch     float64
}

// DefaultWeights returns the historical scoring constants.
func DefaultWeights() Weights {
	return Weights{
		FullQueryMatch: 5,
		LinkText:       2,
		URLPath:        1,
		SectionName:    1,
		ContentSnippet: 0.5,
		PrimaryNav:     0.5,
		TopicMatch:     10,
	}
}

// primarySections get a flat bonus: links there tend to be the pages
// users actually ask for.
var primarySections = map[string]bool{
	"main navigation":    true,
	"header navigation":  true,
	"primary navigation": true,
}

var queryTokenPattern = regexp.MustCompile(`[a-z]+`)

var queryStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "about": {},
	"into": {}, "like": {}, "through": {}, "after": {}, "over": {}, "between": {},
	"out": {}, "against": {}, "during": {}, "before": {}, "because": {}, "that": {},
	"then": {}, "than": {}, "this": {}, "these": {}, "those": {}, "there": {},
	"here": {}, "when": {}, "where": {}, "which": {}, "who": {}, "what": {},
	"how": {}, "why": {}, "page": {}, "website": {}, "site": {}, "click": {},
	"view": {}, "read": {}, "more": {}, "find": {}, "information": {}, "look": {},
}

// KeywordStrategy ranks inventory pages by lexical overlap with the query
// plus a fixed topic-pattern table for common intents.
type KeywordStrategy struct {
	weights Weights
}

// NewKeywordStrategy creates the strategy with the given weights.
func NewKeywordStrategy(weights Weights) *KeywordStrategy {
	return &KeywordStrategy{weights: weights}
}

// Score ranks the inventory against query, highest first, capped at
// MaxCandidates. Ties keep inventory discovery order.
func (s *KeywordStrategy) Score(query string, inventory []domain.InventoryPage) []domain.RelevanceCandidate {
	keywords := QueryKeywords(query)
	lowered := strings.ToLower(query)

	var candidates []domain.RelevanceCandidate
	for _, page := range inventory {
		score, matched := s.scorePage(page, keywords, lowered)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, domain.RelevanceCandidate{
			URL:           page.URL,
			Title:         page.Title,
			Score:         score,
			MatchedTopics: matched,
			Section:       page.Section,
		})
	}

	candidates = append(candidates, s.topicCandidates(lowered, inventory)...)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return dedupeCandidates(candidates)
}

func (s *KeywordStrategy) scorePage(page domain.InventoryPage, keywords []string, loweredQuery string) (float64, []string) {
	title := strings.ToLower(page.Title)
	section := strings.ToLower(page.Section)
	content := strings.ToLower(page.Content)
	path := urlPath(page.URL)

	var score float64
	var matched []string

	if strings.Contains(title, loweredQuery) {
		score += s.weights.FullQueryMatch
		matched = append(matched, loweredQuery)
	}

	for _, keyword := range keywords {
		hit := false
		if strings.Contains(title, keyword) {
			score += s.weights.LinkText
			hit = true
		}
		if strings.Contains(path, keyword) {
			score += s.weights.URLPath
			hit = true
		}
		if strings.Contains(section, keyword) {
			score += s.weights.SectionName
			hit = true
		}
		if content != "" && strings.Contains(content, keyword) {
			score += s.weights.ContentSnippet
			hit = true
		}
		if hit && !contains(matched, keyword) {
			matched = append(matched, keyword)
		}
	}

	if primarySections[section] {
		score += s.weights.PrimaryNav
	}

	return score, matched
}

// topicCandidates injects high-confidence candidates for common intents
// (pricing, contact, login) even when literal keyword overlap is weak.
func (s *KeywordStrategy) topicCandidates(loweredQuery string, inventory []domain.InventoryPage) []domain.RelevanceCandidate {
	var candidates []domain.RelevanceCandidate

	for _, family := range topicFamilies {
		if !family.pattern.MatchString(loweredQuery) {
			continue
		}
		for _, page := range inventory {
			title := strings.ToLower(page.Title)
			pageURL := strings.ToLower(page.URL)

			for _, topic := range family.topics {
				if strings.Contains(title, topic) || strings.Contains(pageURL, topic) {
					candidates = append(candidates, domain.RelevanceCandidate{
						URL:           page.URL,
						Title:         page.Title,
						Score:         s.weights.TopicMatch,
						MatchedTopics: []string{topic},
						Section:       page.Section,
					})
					break
				}
			}
		}
	}

	return candidates
}

// QueryKeywords extracts lowercased alphabetic tokens of length >= 3,
// minus stop words.
func QueryKeywords(query string) []string {
	var keywords []string
	for _, token := range queryTokenPattern.FindAllString(strings.ToLower(query), -1) {
		if len(token) < 3 {
			continue
		}
		if _, stop := queryStopWords[token]; stop {
			continue
		}
		if !contains(keywords, token) {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

// dedupeCandidates keeps the highest-ranked entry per URL and caps the
// list at MaxCandidates. The input is already sorted descending.
func dedupeCandidates(candidates []domain.RelevanceCandidate) []domain.RelevanceCandidate {
	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, candidate := range candidates {
		if seen[candidate.URL] {
			continue
		}
		seen[candidate.URL] = true
		deduped = append(deduped, candidate)
		if len(deduped) == domain.MaxCandidates {
			break
		}
	}
	return deduped
}

func urlPath(raw string) string {
	u, err := url.Parse(strings.ToLower(raw))
	if err != nil {
		return strings.ToLower(raw)
	}
	return u.Path
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
