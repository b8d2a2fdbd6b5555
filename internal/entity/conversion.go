package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversion represents one stored conversion for data transfer between layers.
type Conversion struct {
	ID               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	Format           string    `json:"format"`
	FileSize         int64     `json:"file_size"`
	UsedOCR          bool      `json:"used_ocr"`
	Pages            int       `json:"pages,omitempty"`
	PredictedTitle   string    `json:"predicted_title,omitempty"`
	MarkdownContent  string    `json:"markdown_content,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	Keywords         []string  `json:"keywords,omitempty"`
	Severity         string    `json:"severity,omitempty"`
	SummaryContent   string    `json:"summary_content,omitempty"`
	CorrectedContent string    `json:"corrected_content,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
