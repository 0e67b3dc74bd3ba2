// ABOUTME: Builds the compact site inventory both relevance strategies score against
// ABOUTME: Flattens crawled pages into url/title/description/keyword rows

package relevance

import (
	"strings"

	"navassist-api/core/domain"
)

const snippetLength = 200

// BuildInventory flattens a site structure into inventory entries:
// every navigation link plus every content section as an anchor
// pseudo-link carrying a short snippet.
func BuildInventory(site *domain.SiteStructure) []domain.InventoryPage {
	inventory := make([]domain.InventoryPage, 0, len(site.NavigationLinks)+len(site.ContentSections))

	for _, link := range site.NavigationLinks {
		section := link.Section
		if section == "" {
			section = "Main Navigation"
		}
		inventory = append(inventory, domain.InventoryPage{
			Title:   link.Text,
			URL:     link.URL,
			Section: section,
		})
	}

	for _, section := range site.ContentSections {
		snippet := section.Content
		if len(snippet) > snippetLength {
			snippet = snippet[:snippetLength]
		}
		inventory = append(inventory, domain.InventoryPage{
			Title:   section.Heading,
			URL:     headingAnchor(section.Heading),
			Section: "Content Section",
			Content: snippet,
		})
	}

	return inventory
}

func headingAnchor(heading string) string {
	return "#" + strings.ReplaceAll(strings.ToLower(heading), " ", "-")
}
