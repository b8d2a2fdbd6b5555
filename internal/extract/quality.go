package extract

import (
	"unicode"
)

// Quality captures metrics about a direct PDF text extraction, used to
// decide whether the document is scanned and needs the OCR fallback.
type Quality struct {
	PageCount       int     `json:"page_count"`
	TextChars       int     `json:"text_chars"` // non-whitespace characters
	CharsPerPage    float64 `json:"chars_per_page"`
	PrintableRatio  float64 `json:"printable_ratio"`
	HasImageStreams bool    `json:"has_image_streams"`
}

// NeedsOCR reports whether direct extraction produced too little text to
// trust. minTextChars is the tunable threshold: below it the document is
// treated as scanned. A page-less garbage extraction (unprintable glyphs
// from CIDFonts without ToUnicode) also triggers the fallback when the PDF
// carries image streams.
func (q Quality) NeedsOCR(minTextChars int) bool {
	if q.TextChars < minTextChars {
		return true
	}
	if q.HasImageStreams && q.CharsPerPage < 1 {
		return true
	}
	if q.HasImageStreams && q.PrintableRatio < 0.5 {
		return true
	}
	return false
}

// measureQuality computes extraction metrics for the direct-pass text.
func measureQuality(text string, pageCount int, hasImages bool) Quality {
	q := Quality{
		PageCount:       pageCount,
		TextChars:       countNonWhitespace(text),
		PrintableRatio:  printableRatio(text),
		HasImageStreams: hasImages,
	}
	if pageCount > 0 {
		q.CharsPerPage = float64(q.TextChars) / float64(pageCount)
	}
	return q
}

func countNonWhitespace(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// printableRatio returns the ratio of printable characters in text.
// Excludes PUA U+E000-U+F8FF, control chars < U+0020 (except \n\r\t), U+FFFD.
func printableRatio(text string) float64 {
	if len(text) == 0 {
		return 1.0
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	// Private Use Area
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	// Replacement character
	if r == 0xFFFD {
		return true
	}
	// Control chars except whitespace
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}
