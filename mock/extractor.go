package mock

import "github.com/cdunford/claimharvest"

var _ claimharvest.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of claimharvest.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}

var _ claimharvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of claimharvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
