// ABOUTME: Navigation link collection and section naming heuristics
// ABOUTME: Finds nav containers by semantics, class hints, or anchor density

package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"navassist-api/core/domain"
)

// navContainerHints mark a container as navigation when found in its
// tag, class, or id.
var navContainerHints = []string{"nav", "menu", "topbar", "toolbar", "main-menu"}

// sectionTypeHints map class/id fragments to a section name.
var sectionTypeHints = []string{"main", "primary", "secondary", "footer", "sidebar", "utility", "social"}

// socialTextHints exclude anchors whose visible text is a social platform;
// those are collected separately as social links.
var socialTextHints = []string{
	"facebook", "twitter", "instagram", "linkedin", "youtube",
	"pinterest", "tiktok", "snapchat", "whatsapp", "telegram",
}

// minSiblingAnchors is the anchor density at which an unhinted container
// still counts as navigation.
const minSiblingAnchors = 3

// extractNavigationLinks walks every candidate navigation container and
// collects its usable anchors, tagged with a derived section name.
func (e *Extractor) extractNavigationLinks(doc *goquery.Document, base *url.URL) []domain.LinkRef {
	var links []domain.LinkRef

	doc.Find("nav, header, div, ul").Each(func(_ int, container *goquery.Selection) {
		if !isNavContainer(container) {
			return
		}

		section := determineSectionName(container)
		container.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
			if link, ok := buildLink(anchor, base, section); ok {
				links = append(links, link)
			}
		})
	})

	return links
}

// isNavContainer applies the navigation heuristics: semantic tag,
// class/id hint, or anchor density among direct children.
func isNavContainer(container *goquery.Selection) bool {
	tag := goquery.NodeName(container)
	if tag == "nav" || tag == "header" {
		return true
	}

	attrs := strings.ToLower(container.AttrOr("class", "") + " " + container.AttrOr("id", ""))
	for _, hint := range navContainerHints {
		if strings.Contains(attrs, hint) {
			return true
		}
	}

	return container.Children().Filter("a").Length() >= minSiblingAnchors
}

// determineSectionName derives a human-readable name for a navigation
// container, in priority order: aria-label, title attribute, nearest
// preceding heading, class/id type hint, positional fallback.
func determineSectionName(container *goquery.Selection) string {
	if label := strings.TrimSpace(container.AttrOr("aria-label", "")); label != "" {
		return label
	}
	if title := strings.TrimSpace(container.AttrOr("title", "")); title != "" {
		return title
	}

	if heading := precedingHeadingText(container); heading != "" {
		return heading
	}

	attrs := strings.ToLower(container.AttrOr("class", "") + " " + container.AttrOr("id", ""))
	for _, hint := range sectionTypeHints {
		if strings.Contains(attrs, hint) {
			return capitalize(hint) + " Navigation"
		}
	}

	if container.ParentsFiltered("header").Length() > 0 {
		return "Header Navigation"
	}
	if container.ParentsFiltered("footer").Length() > 0 {
		return "Footer Navigation"
	}
	if container.ParentsFiltered("aside").Length() > 0 {
		return "Sidebar Navigation"
	}

	return "Main Navigation"
}

// precedingHeadingText finds the closest heading element before the
// container in document order and returns its text.
func precedingHeadingText(container *goquery.Selection) string {
	if len(container.Nodes) == 0 {
		return ""
	}

	for node := container.Nodes[0]; node != nil; node = node.Parent {
		for sib := node.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if heading := lastHeadingIn(sib); heading != "" {
				return heading
			}
		}
	}
	return ""
}

// lastHeadingIn returns the text of the last h1-h6 within node (or node
// itself), searching in reverse document order.
func lastHeadingIn(node *html.Node) string {
	if node.Type == html.ElementNode && isHeadingTag(node.Data) {
		return strings.TrimSpace(nodeText(node))
	}
	for child := node.LastChild; child != nil; child = child.PrevSibling {
		if heading := lastHeadingIn(child); heading != "" {
			return heading
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// nodeText concatenates the text content of a node subtree.
func nodeText(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	var sb strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

// buildLink converts one anchor into a LinkRef, returning ok=false when
// the anchor should be skipped.
func buildLink(anchor *goquery.Selection, base *url.URL, section string) (domain.LinkRef, bool) {
	href := anchor.AttrOr("href", "")
	resolved := resolveHref(base, href)
	if resolved == "" {
		return domain.LinkRef{}, false
	}

	text := strings.TrimSpace(anchor.Text())
	if len(text) <= 1 {
		alt := strings.TrimSpace(anchor.Find("img").AttrOr("alt", ""))
		if len(alt) <= 1 {
			return domain.LinkRef{}, false
		}
		text = alt
	}

	// Social platform anchors are collected by the social extractor, not
	// as navigation.
	lowered := strings.ToLower(text)
	for _, hint := range socialTextHints {
		if strings.Contains(lowered, hint) {
			return domain.LinkRef{}, false
		}
	}

	return domain.LinkRef{
		Text:       text,
		URL:        resolved,
		Section:    section,
		IsExternal: isExternal(base, resolved),
	}, true
}

// extractAdditionalNavigation merges in footer links, sidebar links and
// any sitemap utility link not caught by the container heuristics.
func (e *Extractor) extractAdditionalNavigation(doc *goquery.Document, base *url.URL) []domain.LinkRef {
	var links []domain.LinkRef

	doc.Find("footer a[href]").Each(func(_ int, anchor *goquery.Selection) {
		if link, ok := buildLink(anchor, base, "Footer Links"); ok {
			links = append(links, link)
		}
	})

	doc.Find("aside, div").Each(func(_ int, container *goquery.Selection) {
		attrs := strings.ToLower(container.AttrOr("class", "") + " " + container.AttrOr("id", ""))
		if goquery.NodeName(container) != "aside" &&
			!strings.Contains(attrs, "sidebar") && !strings.Contains(attrs, "side-bar") &&
			!strings.Contains(attrs, "sidenav") && !strings.Contains(attrs, "side-nav") {
			return
		}
		container.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
			if link, ok := buildLink(anchor, base, "Sidebar Links"); ok {
				links = append(links, link)
			}
		})
	})

	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href := anchor.AttrOr("href", "")
		if !strings.Contains(strings.ToLower(href), "sitemap") {
			return true
		}
		if resolved := resolveHref(base, href); resolved != "" {
			links = append(links, domain.LinkRef{
				Text:       "Sitemap",
				URL:        resolved,
				Section:    "Site Utilities",
				IsExternal: isExternal(base, resolved),
			})
		}
		return false
	})

	return links
}
