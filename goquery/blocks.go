package goquery

import (
	"strings"

	"github.com/cdunford/claimharvest"
	"golang.org/x/net/html"
)

// nodeIndex assigns a stable document-order index to every node in one
// parsed tree. Indices identify nodes during region traversal; ownership of
// the nodes themselves is scoped to a single Parse call.
type nodeIndex map[*html.Node]int

func indexNodes(root *html.Node) nodeIndex {
	index := make(nodeIndex)
	next := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		index[n] = next
		next++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return index
}

// collectBlocks walks the document-order region between a section's heading
// and its exclusive end boundary (nil means end of document), classifying
// paragraph, list, and table elements into blocks. If the region yields no
// blocks, a raw-text block is captured from the heading's parent so a
// non-empty region always produces at least one block.
func collectBlocks(start, end *html.Node, index nodeIndex) []claimharvest.Block {
	var blocks []claimharvest.Block
	seenLists := make(map[int]bool)

	steps := 0
	for n := following(start); n != nil && steps < stepBudget; n = following(n) {
		steps++
		if n == end {
			break
		}
		if n.Type != html.ElementNode {
			continue
		}

		switch strings.ToLower(n.Data) {
		case "p":
			if txt := normalize(nodeText(n)); txt != "" {
				blocks = append(blocks, claimharvest.Block{Type: claimharvest.BlockParagraph, Text: txt})
			}

		case "ul", "ol":
			if seenLists[index[n]] {
				continue
			}
			seenLists[index[n]] = true
			// A nested list's items are already part of its parent item's
			// text; mark descendants so they are not emitted twice.
			eachDescendant(n, func(d *html.Node) {
				if d.Type == html.ElementNode && (d.Data == "ul" || d.Data == "ol") {
					seenLists[index[d]] = true
				}
			})
			if block, ok := listBlock(n); ok {
				blocks = append(blocks, block)
			}

		case "table":
			if block, ok := tableBlock(n); ok {
				blocks = append(blocks, block)
			}
		}
	}

	// A region that holds only inline text yields no structured blocks;
	// capture the heading's parent as raw text instead. Truly empty regions
	// (nothing between two headings) stay empty.
	if len(blocks) == 0 && start.Parent != nil && regionHasText(start, end) {
		if txt := flattenedText(start.Parent); txt != "" {
			blocks = append(blocks, claimharvest.Block{Type: claimharvest.BlockRawText, Text: txt})
		}
	}

	return blocks
}

// regionHasText reports whether any non-empty text node exists between start
// and the exclusive end boundary.
func regionHasText(start, end *html.Node) bool {
	steps := 0
	for n := following(start); n != nil && steps < stepBudget; n = following(n) {
		steps++
		if n == end {
			return false
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			return true
		}
	}
	return false
}

func listBlock(list *html.Node) (claimharvest.Block, bool) {
	var items []string
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		if txt := normalize(nodeText(c)); txt != "" {
			items = append(items, txt)
		}
	}
	if len(items) == 0 {
		return claimharvest.Block{}, false
	}
	return claimharvest.Block{
		Type:    claimharvest.BlockList,
		Ordered: list.Data == "ol",
		Items:   items,
	}, true
}

func tableBlock(table *html.Node) (claimharvest.Block, bool) {
	var rows [][]string
	eachDescendant(table, func(tr *html.Node) {
		if tr.Type != html.ElementNode || tr.Data != "tr" {
			return
		}
		var cells []string
		eachDescendant(tr, func(cell *html.Node) {
			if cell.Type != html.ElementNode {
				return
			}
			if cell.Data != "th" && cell.Data != "td" {
				return
			}
			if txt := normalize(nodeText(cell)); txt != "" {
				cells = append(cells, txt)
			}
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) == 0 {
		return claimharvest.Block{}, false
	}
	return claimharvest.Block{Type: claimharvest.BlockTable, Rows: rows}, true
}

// following returns the next node in document order: first child, then next
// sibling, then the nearest ancestor's next sibling.
func following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// eachDescendant visits every node below n in document order.
func eachDescendant(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fn(c)
		eachDescendant(c, fn)
	}
}

// normalize converts non-breaking spaces to regular spaces, collapses
// whitespace runs, and trims.
func normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// nodeText concatenates the text nodes below n, separating each with a
// single space.
func nodeText(n *html.Node) string {
	var b strings.Builder
	eachDescendant(n, func(d *html.Node) {
		if d.Type != html.TextNode {
			return
		}
		if t := strings.TrimSpace(d.Data); t != "" {
			b.WriteString(t)
			b.WriteString(" ")
		}
	})
	return strings.TrimSpace(b.String())
}

// nodesText concatenates nodeText over a node list.
func nodesText(nodes []*html.Node) string {
	var parts []string
	for _, n := range nodes {
		if t := nodeText(n); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// flattenedText captures the subtree's line-based text: one entry per
// non-empty line, capped at rawTextLineCap lines, joined with newlines.
func flattenedText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var lines []string
	eachDescendant(n, func(d *html.Node) {
		if d.Type != html.TextNode || len(lines) >= rawTextLineCap {
			return
		}
		for _, line := range strings.Split(d.Data, "\n") {
			if len(lines) >= rawTextLineCap {
				return
			}
			if t := normalize(line); t != "" {
				lines = append(lines, t)
			}
		}
	})
	return strings.Join(lines, "\n")
}
