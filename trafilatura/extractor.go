// Package trafilatura implements claimharvest.TextExtractor on top of
// go-trafilatura's boilerplate-removing content extraction.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"github.com/cdunford/claimharvest"
)

// Ensure Extractor implements claimharvest.TextExtractor at compile time.
var _ claimharvest.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the readable text of a page,
// with navigation, footers, and ads removed.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the page's main content as plain text. Empty input and
// pages with no extractable content both yield an empty string, not an error:
// triage scores them as SHELL.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", nil
	}

	return result.ContentText, nil
}
