// ABOUTME: Topic search over a mapped domain, distinct from query-time link scoring
// ABOUTME: Ranks whole pages by title, URL, heading and keyword matches

package sitemap

import (
	"sort"
	"strings"

	"navassist-api/core/domain"
)

// Topic-match weights per signal.
const (
	topicTitleWordWeight    = 8.0
	topicTitleOverlapWeight = 5.0
	topicURLWeight          = 3.0
	topicHeadingWeight      = 6.0
	topicKeywordWeight      = 2.0
)

// FindRelevantPages ranks mapped pages against a topic phrase. Pages with
// zero score are omitted; results are capped at MaxCandidates.
func FindRelevantPages(m *SiteMap, topic string) []domain.RelevanceCandidate {
	words := topicWords(topic)
	if len(words) == 0 {
		return nil
	}

	var candidates []domain.RelevanceCandidate
	for _, page := range m.Pages() {
		score, matched := scorePage(page, words)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, domain.RelevanceCandidate{
			URL:           page.URL,
			Title:         page.Title,
			Score:         score,
			MatchedTopics: matched,
			Reasoning:     "site map topic match",
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > domain.MaxCandidates {
		candidates = candidates[:domain.MaxCandidates]
	}
	return candidates
}

func scorePage(page domain.PageRecord, words []string) (float64, []string) {
	title := strings.ToLower(page.Title)
	pageURL := strings.ToLower(page.URL)

	var score float64
	var matched []string

	for _, word := range words {
		hit := false

		if strings.Contains(title, word) {
			score += topicTitleWordWeight
			hit = true
		}
		if strings.Contains(pageURL, word) {
			score += topicURLWeight
			hit = true
		}
		for _, heading := range page.Headings {
			if strings.Contains(strings.ToLower(heading), word) {
				score += topicHeadingWeight
				hit = true
				break
			}
		}
		for _, keyword := range page.Keywords {
			if strings.Contains(keyword, word) {
				score += topicKeywordWeight
				hit = true
				break
			}
		}

		if hit {
			matched = append(matched, word)
		}
	}

	// Bonus when the page's own keywords overlap the title terms, a signal
	// that the page is actually about its title.
	for _, keyword := range page.Keywords {
		if strings.Contains(title, keyword) {
			score += topicTitleOverlapWeight
			break
		}
	}

	return score, matched
}

func topicWords(topic string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(topic)) {
		if len(word) >= 3 {
			words = append(words, word)
		}
	}
	return words
}
