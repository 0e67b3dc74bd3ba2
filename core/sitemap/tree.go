// ABOUTME: Text tree rendering and depth-bucketed structure views of a site map
// ABOUTME: Pages group under their path prefixes; orphans attach at the root

package sitemap

import (
	"net/url"
	"sort"
	"strings"

	"navassist-api/core/domain"
)

// rootPaths are treated as the site root rather than as child nodes.
var rootPaths = map[string]bool{
	"":            true,
	"/":           true,
	"/index.html": true,
	"/home":       true,
}

type treeNode struct {
	name     string
	title    string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	if existing, ok := n.children[name]; ok {
		return existing
	}
	node := &treeNode{name: name}
	n.children[name] = node
	return node
}

// Tree renders the mapped site as an indented text tree rooted at the
// domain, one node per path segment.
func Tree(m *SiteMap) string {
	root := &treeNode{name: m.Hostname()}

	for _, page := range m.Pages() {
		u, err := url.Parse(page.URL)
		if err != nil {
			continue
		}
		if rootPaths[u.Path] {
			root.title = page.Title
			continue
		}

		node := root
		for _, segment := range pathSegments(u.Path) {
			node = node.child(segment)
		}
		node.title = page.Title
	}

	var b strings.Builder
	b.WriteString(root.name)
	if root.title != "" {
		b.WriteString(" (" + root.title + ")")
	}
	b.WriteString("\n")
	renderChildren(&b, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		child := node.children[name]
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(names)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}

		b.WriteString(prefix + connector + child.name)
		if child.title != "" {
			b.WriteString(" (" + child.title + ")")
		}
		b.WriteString("\n")
		renderChildren(b, child, childPrefix)
	}
}

// Structure buckets mapped pages by path depth for the query-time snapshot.
func Structure(m *SiteMap) domain.SitemapStructure {
	structure := domain.SitemapStructure{
		Hostname:     m.Hostname(),
		LinksByDepth: make(map[int][]domain.DepthLink),
	}

	for _, page := range m.Pages() {
		u, err := url.Parse(page.URL)
		if err != nil {
			continue
		}
		depth := len(pathSegments(u.Path))
		structure.LinksByDepth[depth] = append(structure.LinksByDepth[depth], domain.DepthLink{
			URL:  page.URL,
			Path: u.Path,
			Text: page.Title,
		})
		structure.TotalUniqueLinks++
	}

	return structure
}

func pathSegments(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
