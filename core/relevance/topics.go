// ABOUTME: Fixed intent-pattern table mapping common query families to canonical page names
// ABOUTME: Used by the keyword strategy to boost pages matching the query's intent

package relevance

import "regexp"

type topicFamily struct {
	pattern *regexp.Regexp
	topics  []string
}

// topicFamilies resolve common intents to their conventional page names,
// so "how much does it cost" finds /pricing without sharing a single word.
var topicFamilies = []topicFamily{
	{regexp.MustCompile(`\b(?:contact|reach|email|phone|call)\b`), []string{"contact", "about us", "get in touch"}},
	{regexp.MustCompile(`\b(?:price|cost|plan|subscription|buy|purchase)\b`), []string{"pricing", "plans", "shop", "store"}},
	{regexp.MustCompile(`\b(?:about|who|company|team|staff|people)\b`), []string{"about", "company", "team", "our story"}},
	{regexp.MustCompile(`\b(?:help|support|faq|question|problem)\b`), []string{"help", "support", "faq", "knowledge base"}},
	{regexp.MustCompile(`\b(?:login|signin|log in|sign in|account)\b`), []string{"login", "sign in", "account", "my account"}},
	{regexp.MustCompile(`\b(?:product|service|offer|solution)\b`), []string{"products", "services", "solutions", "what we do"}},
}
