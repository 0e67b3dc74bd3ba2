// ABOUTME: Markdown report built from a browsing agent's history
// ABOUTME: Scrubs leaked system text and structures unorganized answers

package agent

import (
	"fmt"
	"strings"

	"navassist-api/core/interfaces"
	"navassist-api/core/security"
)

const maxListedURLs = 10

// BuildReport renders an agent run as a markdown report: header, final
// answer, pages visited and any per-step errors.
func BuildReport(history interfaces.AgentHistory, task interfaces.AgentTask) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Results for: %s\n\n", task.Task)
	if task.StartingURL != "" {
		fmt.Fprintf(&b, "**Started at:** %s\n\n", task.StartingURL)
	}

	if final := strings.TrimSpace(history.FinalText()); final != "" {
		b.WriteString("## Final Answer\n\n" + final + "\n\n")
	}

	urls := history.VisitedURLs()
	b.WriteString("## Pages Visited\n")
	if len(urls) == 0 {
		b.WriteString("*None*\n\n")
	} else {
		for i, url := range urls {
			if i == maxListedURLs {
				fmt.Fprintf(&b, "...and %d more\n", len(urls)-maxListedURLs)
				break
			}
			fmt.Fprintf(&b, "- %s\n", url)
		}
		b.WriteString("\n")
	}

	if errs := nonEmpty(history.Errors()); len(errs) > 0 {
		b.WriteString("## Errors\n")
		for _, e := range errs {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

// CleanResult scrubs leaked system paragraphs and, when the text carries
// no markdown headings at all, restructures it into a summary section
// followed by the remaining detail.
func CleanResult(text string) string {
	cleaned := security.ScrubSystemText(text)

	if strings.Contains(cleaned, "## ") || strings.Contains(cleaned, "# ") {
		return cleaned
	}

	paragraphs := splitParagraphs(cleaned)
	if len(paragraphs) == 0 {
		return cleaned
	}

	structured := "## Summary\n\n" + paragraphs[0]
	if len(paragraphs) > 1 {
		structured += "\n\n## Information Found\n\n" + strings.Join(paragraphs[1:], "\n\n")
	}
	return structured
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func nonEmpty(values []string) []string {
	var kept []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return kept
}
