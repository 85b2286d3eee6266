package claimharvest

import (
	"context"
	"strings"
)

// Block type identifiers.
const (
	BlockParagraph = "paragraph"
	BlockList      = "list"
	BlockTable     = "table"
	BlockRawText   = "raw_text"
)

// RootSectionPath is the path assigned to the single section emitted for a
// page with no recognized headings.
var RootSectionPath = []string{"ROOT"}

// Block is one typed unit of page content. Exactly one shape is populated,
// indicated by Type. A block always contains at least one non-empty text
// unit; extraction drops empty candidates before emitting a block.
type Block struct {
	Type    string     `json:"type"`
	Text    string     `json:"text,omitempty"`
	Ordered bool       `json:"ordered,omitempty"`
	Items   []string   `json:"items,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// TextUnits returns the atomic text units a block contributes to claim
// extraction: the paragraph or raw text, each list item, or each table row
// joined with " | ".
func (b *Block) TextUnits() []string {
	switch b.Type {
	case BlockParagraph, BlockRawText:
		return []string{b.Text}
	case BlockList:
		return b.Items
	case BlockTable:
		units := make([]string, 0, len(b.Rows))
		for _, row := range b.Rows {
			units = append(units, strings.Join(row, " | "))
		}
		return units
	}
	return nil
}

// Section is one content region owned by a heading. Path holds the heading
// texts from the document root down to the owning heading; its length equals
// the nesting depth at the matching heading level, not the raw HTML depth.
type Section struct {
	Path   []string `json:"path"`
	Blocks []Block  `json:"blocks"`
}

// PageDocument is the parsed representation of one fetched page.
// It is written once per page and never mutated afterwards.
type PageDocument struct {
	Slug     string    `json:"slug"`
	URL      string    `json:"url"`
	SHA256   string    `json:"sha256"`
	Title    string    `json:"title"`
	H1       string    `json:"h1"`
	Sections []Section `json:"sections"`
}

// Validate returns an error if the document contains invalid fields.
func (d *PageDocument) Validate() error {
	if d.Slug == "" {
		return Errorf(EINVALID, "page slug required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// BlockCount returns the total number of blocks across all sections.
func (d *PageDocument) BlockCount() int {
	var n int
	for _, sec := range d.Sections {
		n += len(sec.Blocks)
	}
	return n
}

// StructureParser converts raw HTML into a section tree.
// Implementations must never fail on malformed markup; unresolvable
// structure degrades to a single ROOT section or raw-text blocks instead.
type StructureParser interface {
	// Parse builds the section tree for one page. The returned document has
	// Title, H1, and Sections populated; the caller fills in identity fields
	// (Slug, URL, SHA256) from the manifest.
	Parse(html string) (*PageDocument, error)
}

// PageFilter selects indexed pages. Nil fields match everything.
type PageFilter struct {
	RunID *string
	Slug  *string

	Limit  int
	Offset int
}

// PageIndex stores parsed pages in a queryable run index.
type PageIndex interface {
	// CreatePage indexes one page document under a run.
	CreatePage(ctx context.Context, runID string, doc *PageDocument) error

	// FindPages returns indexed pages matching the filter, ordered by slug.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageDocument, error)
}

// PageStore persists parsed page documents.
type PageStore interface {
	// WritePage writes one page document, keyed by slug.
	// Writing an identical document twice must not modify the stored copy.
	WritePage(doc *PageDocument) error

	// ReadPages returns all stored page documents ordered by slug.
	ReadPages() ([]*PageDocument, error)
}
