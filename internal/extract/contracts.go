package extract

import (
	"context"
	"time"

	"github.com/docmdio/docmd/constants"
)

// Document is one uploaded payload: raw bytes plus the declared filename.
// The pipeline owns it only for the duration of a request and never
// persists it itself.
type Document struct {
	Filename string
	Data     []byte
}

// Result is the outcome of text extraction.
type Result struct {
	// Markdown is the extracted content. May be empty: a document whose
	// every OCR page failed still yields a Result, not an error.
	Markdown string
	Title    string
	Format   constants.Format
	Method   string // "pdf-text" | "pdf-ocr" | "image-ocr" | "native"
	Pages    int
	UsedOCR  bool
	Language string
	Duration time.Duration
	Warnings []string
}

// TextExtractor turns document bytes into markdown text.
type TextExtractor interface {
	Extract(ctx context.Context, doc Document) (Result, error)
}
