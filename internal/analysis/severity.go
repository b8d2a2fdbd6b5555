package analysis

import (
	"strings"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/lexicon"
)

// SeverityResult is the single importance level assigned to a document.
type SeverityResult struct {
	Severity   constants.Severity `json:"severity"`
	Confidence float64            `json:"confidence"`
	Matches    []string           `json:"matches,omitempty"`
}

const maxSeverityMatches = 3

// ClassifySeverity assigns exactly one severity level. With no keyword
// evidence at all the answer is Normal. When several levels score the same,
// the more severe one wins: under-escalating a critical document costs more
// than over-escalating a routine one.
func ClassifySeverity(text string) SeverityResult {
	lower := strings.ToLower(text)

	type bucket struct {
		level   constants.Severity
		score   int
		matches []string
	}

	buckets := make([]bucket, 0, 4)
	total := 0
	for _, level := range constants.AllSeverities() {
		b := bucket{level: level}
		for _, kw := range lexicon.SeverityKeywords(level) {
			n := strings.Count(lower, kw)
			if n > 0 {
				b.score += n
				b.matches = append(b.matches, kw)
			}
		}
		total += b.score
		buckets = append(buckets, b)
	}

	if total == 0 {
		return SeverityResult{Severity: constants.SeverityNormal, Confidence: 0.5}
	}

	// AllSeverities is ordered most severe first, so strict > keeps the
	// more severe bucket on ties.
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.score > best.score {
			best = b
		}
	}

	conf := float64(best.score) / float64(total)
	if conf > 1.0 {
		conf = 1.0
	}
	if len(best.matches) > maxSeverityMatches {
		best.matches = best.matches[:maxSeverityMatches]
	}
	return SeverityResult{
		Severity:   best.level,
		Confidence: conf,
		Matches:    best.matches,
	}
}
