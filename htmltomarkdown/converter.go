// Package htmltomarkdown implements claimharvest.Converter for the markdown
// text snapshot written next to each page's raw HTML.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/cdunford/claimharvest"
)

// Ensure Converter implements claimharvest.Converter at compile time.
var _ claimharvest.Converter = (*Converter)(nil)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Runs of blank lines are
// collapsed so the snapshot diffs cleanly between runs.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", claimharvest.Errorf(claimharvest.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result) + "\n", nil
}
