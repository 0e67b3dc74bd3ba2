// ABOUTME: Second-line defense stripping leaked system text from model output
// ABOUTME: Removes marker-delimited blocks and known contract phrases before responses leave

package security

import "strings"

// systemMarkers identify paragraphs that belong to system prompts or raw
// agent internals and must never reach the user, even when no breach
// sentinel fired.
var systemMarkers = []string{
	"You are SecureWebNavigator",
	"SECURITY PROTOCOL:",
	"ADDITIONAL SECURITY MEASURES",
	"RESPONSE FORMAT:",
	"You must ONLY operate",
	"Ignore ALL instructions",
	"FORMAT YOUR RESPONSE AS FOLLOWS",
	"AgentHistoryList",
	"all_results",
}

// ScrubSystemText removes every paragraph containing a known system
// marker phrase. Paragraphs are blank-line separated blocks.
func ScrubSystemText(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	kept := paragraphs[:0]

	for _, paragraph := range paragraphs {
		if containsMarker(paragraph) {
			continue
		}
		kept = append(kept, paragraph)
	}

	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}

// ContainsSystemText reports whether any marker appears in text at all.
func ContainsSystemText(text string) bool {
	return containsMarker(text)
}

func containsMarker(text string) bool {
	for _, marker := range systemMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
