// ABOUTME: Relevance domain models for query-to-page mapping results
// ABOUTME: Candidates are ephemeral, produced per query and ordered by score

package domain

// RelevanceCandidate is one ranked page proposal for a user query.
type RelevanceCandidate struct {
	// URL of the proposed page (or "#heading" anchor for content sections)
	URL string `json:"url"`

	// Title is the link text or section heading
	Title string `json:"title"`

	// Score is the relevance score in [0, 10]
	Score float64 `json:"score"`

	// MatchedTopics lists the query keywords or topics that matched
	MatchedTopics []string `json:"matched_topics"`

	// Section names where the page was found in the site structure
	Section string `json:"section,omitempty"`

	// Reasoning is a one-sentence justification (semantic strategy only)
	Reasoning string `json:"reasoning,omitempty"`
}

// MaxCandidates caps the candidate list returned per query.
const MaxCandidates = 5

// InventoryPage is one entry of the compact site inventory handed to the
// relevance strategies: a navigation link or a content section pseudo-link.
type InventoryPage struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Section string `json:"section"`

	// Content carries a short snippet for content-section entries
	Content string `json:"content,omitempty"`
}
