// Package lexicon holds the static word lists backing the rule-based
// analyzers: a combined English + Bahasa Indonesia stop-word set and the
// keyword dictionaries for category and severity classification.
//
// All data is package-level and immutable; accessors hand out the shared
// read-only structures, never copies callers could be expected to mutate.
package lexicon

import (
	"github.com/docmdio/docmd/constants"
)

// stopWords combines high-frequency English and Bahasa Indonesia words.
var stopWords = map[string]struct{}{}

var stopWordList = []string{
	// English
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "were", "been",
	"be", "have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "can", "this", "that", "these", "those",
	"i", "you", "he", "she", "it", "we", "they", "what", "which", "who",
	"when", "where", "why", "how", "all", "each", "every", "both", "few",
	"more", "most", "other", "some", "such", "no", "nor", "not", "only",
	"own", "same", "so", "than", "too", "very", "s", "t", "just", "don",
	"now", "covers", "contains", "includes", "regarding",
	// Bahasa Indonesia
	"yang", "dan", "di", "ke", "dari", "untuk", "dengan", "pada",
	"adalah", "ini", "itu", "akan", "telah", "dapat", "juga", "ada",
}

func init() {
	for _, w := range stopWordList {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the lower-cased token is a stop word.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// categoryKeywords maps each taxonomy label to its evidence terms.
// Matching is case-insensitive substring search over the document text.
var categoryKeywords = map[constants.Category][]string{
	constants.Business:       {"business", "strategy", "management", "marketing", "sales", "revenue", "profit"},
	constants.Technical:      {"technical", "software", "hardware", "system", "code", "programming", "development", "api"},
	constants.Legal:          {"legal", "contract", "agreement", "law", "compliance", "regulation", "clause", "liability"},
	constants.Financial:      {"financial", "invoice", "payment", "budget", "cost", "expense", "accounting", "tax"},
	constants.Educational:    {"education", "learning", "course", "training", "student", "teacher", "curriculum"},
	constants.Medical:        {"medical", "health", "patient", "diagnosis", "treatment", "clinical", "hospital"},
	constants.Report:         {"report", "summary", "analysis", "findings", "conclusion", "results", "data"},
	constants.Proposal:       {"proposal", "plan", "recommendation", "suggest", "objective", "goal"},
	constants.Invoice:        {"invoice", "bill", "payment due", "total amount", "items", "quantity"},
	constants.Contract:       {"contract", "agreement", "parties", "terms", "conditions", "effective date"},
	constants.Research:       {"research", "study", "experiment", "hypothesis", "methodology", "literature"},
	constants.Manual:         {"manual", "guide", "instructions", "how to", "steps", "procedure"},
	constants.Correspondence: {"dear", "sincerely", "regards", "letter", "memo", "email"},
}

// CategoryKeywords returns the evidence terms for a category. The returned
// slice is shared; callers must not modify it.
func CategoryKeywords(cat constants.Category) []string {
	return categoryKeywords[cat]
}

// severityKeywords maps each severity level to its evidence terms.
var severityKeywords = map[constants.Severity][]string{
	constants.SeverityCritical:    {"urgent", "critical", "emergency", "immediate", "asap", "deadline", "priority high"},
	constants.SeverityImportant:   {"important", "significant", "priority", "attention", "required", "action needed"},
	constants.SeverityNormal:      {"normal", "standard", "regular", "routine"},
	constants.SeverityLowPriority: {"low priority", "optional", "fyi", "for your information", "non-urgent"},
}

// SeverityKeywords returns the evidence terms for a severity level. The
// returned slice is shared; callers must not modify it.
func SeverityKeywords(s constants.Severity) []string {
	return severityKeywords[s]
}
