package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlainText handles .txt and .md payloads. Markdown passes through
// with whitespace normalization; the first heading becomes the title.
func extractPlainText(data []byte) (Result, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	text = Normalize(text)

	return Result{
		Markdown: text,
		Title:    firstMarkdownHeading(text),
		Method:   "native",
		Pages:    1,
	}, nil
}
