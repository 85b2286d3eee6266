package slog

import (
	"log/slog"
	"time"

	"github.com/cdunford/claimharvest"
)

// Ensure LoggingParser implements claimharvest.StructureParser.
var _ claimharvest.StructureParser = (*LoggingParser)(nil)

// LoggingParser wraps a StructureParser with per-page logging.
type LoggingParser struct {
	next   claimharvest.StructureParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next claimharvest.StructureParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs section and block counts.
func (p *LoggingParser) Parse(html string) (doc *claimharvest.PageDocument, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"duration", time.Since(begin),
			"err", err,
		}
		if doc != nil {
			attrs = append(attrs, "sections", len(doc.Sections), "blocks", doc.BlockCount())
		}
		p.logger.Info("parse structure", attrs...)
	}(time.Now())
	return p.next.Parse(html)
}
