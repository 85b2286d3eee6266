// Package goquery implements HTML structure parsing and seed-page link
// extraction using CSS selectors and document-order node traversal.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cdunford/claimharvest"
	"golang.org/x/net/html"
)

// stepBudget caps the document-order traversal of one section's content
// region. Regions are small in practice; the cap bounds work on pathological
// markup.
const stepBudget = 800

// rawTextLineCap caps the number of non-empty lines captured by the raw-text
// fallback block.
const rawTextLineCap = 200

// Ensure Parser implements claimharvest.StructureParser at compile time.
var _ claimharvest.StructureParser = (*Parser)(nil)

// Parser builds a section tree from raw HTML. Headings whose text equals the
// site brand are treated as boilerplate and excluded from titles and section
// paths.
type Parser struct {
	brand string
}

// NewParser creates a Parser that excludes headings matching the given brand
// string (case-insensitive).
func NewParser(brand string) *Parser {
	return &Parser{brand: strings.ToLower(strings.TrimSpace(brand))}
}

// Parse builds the section tree for one page. It never fails on malformed
// markup; pages without usable structure degrade to a single ROOT section.
func (p *Parser) Parse(rawHTML string) (*claimharvest.PageDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, claimharvest.Errorf(claimharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	title := normalize(doc.Find("title").First().Text())
	container := pickContainer(doc)

	return &claimharvest.PageDocument{
		Title:    title,
		H1:       p.pickBestTitle(container),
		Sections: p.parseSections(container),
	}, nil
}

// Title returns the normalized <title> text of a page, or "" when the page
// has none or cannot be parsed.
func Title(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	return normalize(doc.Find("title").First().Text())
}

// pickContainer selects the primary content region: main, then article, then
// body, then the whole document. First match wins.
func pickContainer(doc *goquery.Document) *goquery.Selection {
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// pickBestTitle returns the best page heading inside the container: the
// longest non-brand h1, falling back to the first h2 then h3 that isn't the
// brand. An empty result means no usable title, not an error.
func (p *Parser) pickBestTitle(container *goquery.Selection) string {
	var best string
	container.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		t := normalize(nodesText(sel.Nodes))
		if t == "" || strings.ToLower(t) == p.brand {
			return
		}
		if len(t) > len(best) {
			best = t
		}
	})
	if best != "" {
		return best
	}

	for _, tag := range []string{"h2", "h3"} {
		first := container.Find(tag).First()
		if first.Length() == 0 {
			continue
		}
		t := normalize(nodesText(first.Nodes))
		if t != "" && strings.ToLower(t) != p.brand {
			return t
		}
	}
	return ""
}

// heading is one recognized heading in document order.
type heading struct {
	node  *html.Node
	level int
	text  string
}

// levelText is one open ancestor on the heading stack.
type levelText struct {
	level int
	text  string
}

func (p *Parser) parseSections(container *goquery.Selection) []claimharvest.Section {
	var headings []heading
	container.Find("h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		t := normalize(nodesText(sel.Nodes))
		if t == "" || strings.ToLower(t) == p.brand {
			return
		}
		n := sel.Nodes[0]
		headings = append(headings, heading{node: n, level: headingLevel(n), text: t})
	})

	// Whole-container fallback when the page exposes no usable headings.
	if len(headings) == 0 {
		section := claimharvest.Section{Path: claimharvest.RootSectionPath}
		if txt := flattenedText(containerNode(container)); txt != "" {
			section.Blocks = []claimharvest.Block{{Type: claimharvest.BlockRawText, Text: txt}}
		}
		return []claimharvest.Section{section}
	}

	index := indexNodes(documentRoot(headings[0].node))

	sections := make([]claimharvest.Section, 0, len(headings))
	var stack []levelText

	for i, h := range headings {
		// A heading closes every open heading at its own level or deeper.
		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, levelText{level: h.level, text: h.text})

		path := make([]string, len(stack))
		for j, entry := range stack {
			path[j] = entry.text
		}

		// The region ends at the next heading of same or higher level.
		var end *html.Node
		for j := i + 1; j < len(headings); j++ {
			if headings[j].level <= h.level {
				end = headings[j].node
				break
			}
		}

		sections = append(sections, claimharvest.Section{
			Path:   path,
			Blocks: collectBlocks(h.node, end, index),
		})
	}

	return sections
}

// headingLevel returns the numeric level of an h1-h4 element, or 9 for
// anything else so non-headings never win a boundary comparison.
func headingLevel(n *html.Node) int {
	name := strings.ToLower(n.Data)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '9' {
		return int(name[1] - '0')
	}
	return 9
}

func containerNode(sel *goquery.Selection) *html.Node {
	if len(sel.Nodes) > 0 {
		return sel.Nodes[0]
	}
	return nil
}

func documentRoot(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
