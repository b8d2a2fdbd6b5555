package analysis

import (
	"sort"
	"strings"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/lexicon"
)

// CategoryResult is one multi-label classification hit.
type CategoryResult struct {
	Category   constants.Category `json:"category"`
	Confidence float64            `json:"confidence"`
	Matches    []string           `json:"matches,omitempty"`
}

const (
	// DefaultMaxCategories bounds how many labels one document can carry.
	DefaultMaxCategories = 3
	// categoryThreshold is the minimum confidence to include a label.
	categoryThreshold = 0.1
	// saturationK shapes the saturating confidence curve
	// matches/(matches+k): one hit ≈ 0.33, five hits ≈ 0.71.
	saturationK = 2.0
	// maxMatchTerms caps the evidence terms reported per label.
	maxMatchTerms = 5
)

// ClassifyCategories assigns zero or more taxonomy labels to the text.
// Confidence grows monotonically with matched-keyword count and saturates
// at 1.0. Results are ordered by descending confidence, ties broken by
// taxonomy declaration order. Non-empty text with no keyword evidence falls
// back to a single low-confidence Other; empty text yields nothing.
func ClassifyCategories(text string) []CategoryResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var results []CategoryResult
	for _, cat := range constants.AllCategories() {
		keywords := lexicon.CategoryKeywords(cat)
		if len(keywords) == 0 {
			continue // Other has no evidence terms
		}
		count := 0
		var matches []string
		for _, kw := range keywords {
			n := strings.Count(lower, kw)
			if n > 0 {
				count += n
				if len(matches) < maxMatchTerms {
					matches = append(matches, kw)
				}
			}
		}
		if count == 0 {
			continue
		}
		conf := float64(count) / (float64(count) + saturationK)
		if conf > 1.0 {
			conf = 1.0
		}
		if conf < categoryThreshold {
			continue
		}
		results = append(results, CategoryResult{
			Category:   cat,
			Confidence: conf,
			Matches:    matches,
		})
	}

	if len(results) == 0 {
		return []CategoryResult{{Category: constants.Other, Confidence: 0.5}}
	}

	// Stable sort preserves taxonomy order on equal confidence.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > DefaultMaxCategories {
		results = results[:DefaultMaxCategories]
	}
	return results
}
