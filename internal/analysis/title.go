package analysis

import (
	"regexp"
	"strings"
)

// DefaultMaxTitleLength bounds heuristic titles.
const DefaultMaxTitleLength = 100

var (
	headingRe     = regexp.MustCompile(`^#+\s*`)
	labelRe       = regexp.MustCompile(`(?i)^(title|subject|judul|re|topic|document):\s*(.+)$`)
	titleNoiseRe  = regexp.MustCompile(`[^\p{L}\p{N}\s\-,.:()]`)
	sentenceSplit = regexp.MustCompile(`[.!?]\s+`)
)

// PredictTitle derives a title from the text without any model help, so it
// always produces something for non-empty input. Strategies, in order:
// a markdown heading near the top, a "Subject:"/"Judul:"-style label line,
// the first meaningful line, the first sentence truncated with an ellipsis.
func PredictTitle(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxTitleLength
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")

	// Strategy 1: markdown heading within the first lines.
	for _, line := range head(lines, 10) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			title := strings.TrimSpace(headingRe.ReplaceAllString(line, ""))
			if title != "" && len(title) <= maxLength {
				return title
			}
		}
	}

	// Strategy 2: "Title:", "Subject:", "Judul:" style label lines.
	for _, line := range head(lines, 10) {
		if m := labelRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			title := strings.TrimSpace(m[2])
			if title != "" && len(title) <= maxLength {
				return title
			}
		}
	}

	// Strategy 3: first non-empty line, cleaned of symbol noise.
	for _, line := range head(lines, 5) {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= maxLength {
			title := strings.TrimSpace(titleNoiseRe.ReplaceAllString(line, ""))
			if len(title) > 10 {
				return truncateRunes(title, maxLength, false)
			}
		}
	}

	// Strategy 4: first sentence of the leading text.
	first := strings.Join(head(lines, 3), " ")
	if sentences := sentenceSplit.Split(first, 2); len(sentences) > 0 {
		title := strings.TrimSpace(sentences[0])
		if len(title) > 10 {
			return truncateRunes(title, maxLength, true)
		}
	}

	return ""
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

func truncateRunes(s string, max int, ellipsis bool) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if ellipsis && max > 1 {
		return string(runes[:max-1]) + "…"
	}
	return string(runes[:max])
}
