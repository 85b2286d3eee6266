package mock

import "github.com/cdunford/claimharvest"

var _ claimharvest.StructureParser = (*StructureParser)(nil)

// StructureParser is a mock implementation of claimharvest.StructureParser.
type StructureParser struct {
	ParseFn func(html string) (*claimharvest.PageDocument, error)
}

func (p *StructureParser) Parse(html string) (*claimharvest.PageDocument, error) {
	return p.ParseFn(html)
}
