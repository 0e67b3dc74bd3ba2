// ABOUTME: Frequency-ranked keyword extraction over visible page text
// ABOUTME: Input is truncated so huge pages never dominate crawl cost

package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	keywordMinLength = 3
	keywordMaxWords  = 100

	// keywordTextLimit truncates visible text before tokenizing.
	keywordTextLimit = 5000
)

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "about": {},
	"into": {}, "like": {}, "through": {}, "after": {}, "over": {}, "between": {},
	"out": {}, "against": {}, "during": {}, "before": {}, "because": {}, "that": {},
	"then": {}, "than": {}, "this": {}, "these": {}, "those": {}, "there": {},
	"here": {}, "when": {}, "where": {}, "which": {}, "who": {}, "whom": {}, "what": {},
}

// Keywords returns the top frequency-ranked non-stopword tokens of text,
// most frequent first.
func Keywords(text string) []string {
	if len(text) > keywordTextLimit {
		text = text[:keywordTextLimit]
	}

	freq := make(map[string]int)
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(word) < keywordMinLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		freq[word]++
	}

	words := make([]string, 0, len(freq))
	for word := range freq {
		words = append(words, word)
	}
	sort.SliceStable(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > keywordMaxWords {
		words = words[:keywordMaxWords]
	}
	return words
}

// VisibleText flattens a parsed document into space-joined visible text,
// with scripts and styles removed.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}
