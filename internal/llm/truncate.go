package llm

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/textsplitter"
)

const truncationNotice = "\n\n[Content truncated...]"

// truncateInput enforces the prompt-input character budget. Oversized
// documents are cut at a paragraph or sentence boundary where possible;
// losing the tail of a very long document is an accepted trade-off.
func (e *Engine) truncateInput(text string) string {
	return TruncateAtBoundary(text, e.cfg.MaxInputChars)
}

// TruncateAtBoundary returns text unchanged when it fits maxChars, else the
// first boundary-aligned chunk plus an explicit truncation notice.
func TruncateAtBoundary(text string, maxChars int) string {
	if len([]rune(text)) <= maxChars {
		return text
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(maxChars),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " "}),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil || len(chunks) == 0 {
		return truncateRunes(text, maxChars) + truncationNotice
	}
	return strings.TrimSpace(chunks[0]) + truncationNotice
}

// CountTokens measures text with the cl100k_base encoding. Returns 0 when
// the encoding is unavailable; the count is informational only.
func CountTokens(text string) int {
	tk, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0
	}
	return len(tk.Encode(text, nil, nil))
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
