// Package analysis holds the rule-based document analyzers: keyword
// extraction, multi-label category classification, severity classification,
// the title heuristic, and text statistics.
//
// Every function is pure and deterministic over its input text; the only
// shared state is the immutable lexicon.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docmdio/docmd/internal/lexicon"
)

// DefaultMaxKeywords bounds keyword extraction when the caller passes 0.
const DefaultMaxKeywords = 10

// wordRe matches lower-case tokens of at least 3 letters.
var wordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

// ExtractKeywords returns up to topN keywords by descending frequency.
// Tokens are lower-cased, short tokens and stop words are dropped, and
// equal frequencies resolve by first appearance, so repeated calls on the
// same text return the same order.
func ExtractKeywords(text string, topN int) []string {
	if topN <= 0 {
		topN = DefaultMaxKeywords
	}

	words := wordRe.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if lexicon.IsStopWord(w) {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	if len(order) == 0 {
		return nil
	}

	// Insertion order already encodes the first-appearance tie-break, so a
	// stable sort by frequency alone is enough.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}
	return order
}
