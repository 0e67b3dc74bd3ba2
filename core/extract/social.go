// ABOUTME: Social media link detection by known platform domain substrings
// ABOUTME: Matches anchor hosts against a fixed platform table, one hit per platform

package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"navassist-api/core/domain"
)

var socialPlatforms = []struct {
	platform string
	patterns []string
}{
	{"facebook", []string{"facebook.com", "fb.com", "fb.me"}},
	{"twitter", []string{"twitter.com", "x.com", "t.co"}},
	{"instagram", []string{"instagram.com", "instagr.am"}},
	{"linkedin", []string{"linkedin.com", "lnkd.in"}},
	{"youtube", []string{"youtube.com", "youtu.be"}},
	{"pinterest", []string{"pinterest.com", "pin.it"}},
	{"tiktok", []string{"tiktok.com"}},
	{"github", []string{"github.com"}},
}

// extractSocialLinks matches anchor hrefs against known platform domains.
// Links without visible text get a synthesized "Follow on X" label.
func extractSocialLinks(doc *goquery.Document, base *url.URL) []domain.SocialLink {
	var social []domain.SocialLink

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		resolved := resolveHref(base, anchor.AttrOr("href", ""))
		if resolved == "" {
			return
		}
		lowered := strings.ToLower(resolved)

		for _, candidate := range socialPlatforms {
			for _, pattern := range candidate.patterns {
				if !strings.Contains(lowered, pattern) {
					continue
				}

				text := strings.TrimSpace(anchor.Text())
				if text == "" {
					text = "Follow on " + capitalize(candidate.platform)
				}

				social = append(social, domain.SocialLink{
					Platform: candidate.platform,
					URL:      resolved,
					Text:     text,
				})
				return
			}
		}
	})

	return social
}
