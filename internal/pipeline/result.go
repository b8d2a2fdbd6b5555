package pipeline

import (
	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/analysis"
)

// Result is the aggregate analysis record handed to the caller. Every field
// beyond MarkdownContent is best-effort: present only when its feature was
// selected and succeeded. Consumers must key off field presence and never
// assume an optional field is populated.
type Result struct {
	Filename string           `json:"filename"`
	Format   constants.Format `json:"format"`

	MarkdownContent string `json:"markdown_content,omitempty"`
	UsedOCR         bool   `json:"used_ocr"`
	Pages           int    `json:"pages,omitempty"`

	PredictedTitle   string                    `json:"predicted_title,omitempty"`
	Categories       []analysis.CategoryResult `json:"categories,omitempty"`
	Keywords         []string                  `json:"keywords,omitempty"`
	Severity         *analysis.SeverityResult  `json:"severity,omitempty"`
	SummaryContent   string                    `json:"summary_content,omitempty"`
	CorrectedContent string                    `json:"corrected_content,omitempty"`
	Statistics       *analysis.TextStatistics  `json:"statistics,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}
