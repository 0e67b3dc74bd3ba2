// ABOUTME: Content section extraction: heading-delimited blocks with a paragraph fallback
// ABOUTME: Falls back to readability main-content isolation when no headings yield text

package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"navassist-api/core/domain"
)

const (
	// syntheticHeadingMax is the paragraph length below which the first
	// paragraph is treated as a heading in the fallback pass.
	syntheticHeadingMax = 100

	// sectionFlushLength flushes an accumulated fallback section.
	sectionFlushLength = 500
)

// extractContentSections walks heading-delimited blocks inside the main
// content container. If that yields nothing, it falls back to paragraph
// aggregation over the readability-isolated article body.
func extractContentSections(doc *goquery.Document, rawHTML, baseURL string) []domain.ContentSection {
	main := findMainContent(doc)

	var sections []domain.ContentSection
	main.Find("h1, h2, h3").Each(func(_ int, heading *goquery.Selection) {
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			return
		}

		content := collectUntilNextHeading(heading)
		if content != "" {
			sections = append(sections, domain.ContentSection{
				Heading: title,
				Content: content,
				Length:  len(content),
			})
		}
	})

	if len(sections) > 0 {
		return sections
	}

	return paragraphFallback(main, rawHTML, baseURL)
}

// findMainContent prefers a designated main/article/content container,
// else the whole body.
func findMainContent(doc *goquery.Document) *goquery.Selection {
	if main := doc.Find("main, article").First(); main.Length() > 0 {
		return main
	}
	var match *goquery.Selection
	doc.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		attrs := strings.ToLower(div.AttrOr("id", "") + " " + div.AttrOr("class", ""))
		if strings.Contains(attrs, "content") {
			match = div
			return false
		}
		return true
	})
	if match != nil {
		return match
	}
	return doc.Find("body").First()
}

// collectUntilNextHeading accumulates sibling text after a heading until
// the next h1-h3.
func collectUntilNextHeading(heading *goquery.Selection) string {
	if len(heading.Nodes) == 0 {
		return ""
	}

	var sb strings.Builder
	for node := heading.Nodes[0].NextSibling; node != nil; node = node.NextSibling {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "h1", "h2", "h3":
				return strings.TrimSpace(sb.String())
			case "p", "div", "span", "ul", "ol", "blockquote", "table":
				sb.WriteString(strings.TrimSpace(nodeText(node)))
				sb.WriteString(" ")
			}
		} else if node.Type == html.TextNode {
			if text := strings.TrimSpace(node.Data); text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// paragraphFallback aggregates paragraphs into synthetic sections: a first
// short paragraph becomes the heading, subsequent ones accumulate until
// the section grows past the flush length.
func paragraphFallback(main *goquery.Selection, rawHTML, baseURL string) []domain.ContentSection {
	paragraphs := fallbackParagraphs(main, rawHTML, baseURL)

	var sections []domain.ContentSection
	current := domain.ContentSection{}

	for _, text := range paragraphs {
		if text == "" {
			continue
		}
		if current.Content == "" {
			if current.Heading == "" && len(text) < syntheticHeadingMax {
				current.Heading = text
				continue
			}
			current.Content = text
			current.Length = len(text)
			continue
		}

		current.Content += " " + text
		current.Length += len(text)

		if current.Length > sectionFlushLength {
			sections = append(sections, current)
			current = domain.ContentSection{}
		}
	}

	if current.Content != "" {
		sections = append(sections, current)
	}
	return sections
}

// fallbackParagraphs returns paragraph texts to aggregate, preferring the
// readability-isolated article body over the raw container.
func fallbackParagraphs(main *goquery.Selection, rawHTML, baseURL string) []string {
	if parsed, err := url.Parse(baseURL); err == nil {
		article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
		if err == nil && article.Content != "" {
			articleDoc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
			if err == nil {
				texts := paragraphTexts(articleDoc.Selection)
				if len(texts) > 0 {
					return texts
				}
			}
		}
	}
	return paragraphTexts(main)
}

func paragraphTexts(sel *goquery.Selection) []string {
	var texts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}
