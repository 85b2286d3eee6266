// Package readability implements text extraction using go-readability.
// It is the fallback extractor used when trafilatura yields no text for a
// snapshot.
package readability

import (
	"strings"

	"github.com/cdunford/claimharvest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements claimharvest.TextExtractor at compile time.
var _ claimharvest.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the boilerplate-free text of a page. Pages where
// readability finds no article yield an empty string, not an error; triage
// falls through to the raw text snapshot.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", nil
	}

	return strings.TrimSpace(article.TextContent), nil
}
