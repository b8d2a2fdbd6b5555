package constants

import (
	"strings"
)

// Category is one label from the closed document taxonomy.
type Category string

const (
	Business       Category = "Business"
	Technical      Category = "Technical"
	Legal          Category = "Legal"
	Financial      Category = "Financial"
	Educational    Category = "Educational"
	Medical        Category = "Medical"
	Report         Category = "Report"
	Proposal       Category = "Proposal"
	Invoice        Category = "Invoice"
	Contract       Category = "Contract"
	Research       Category = "Research"
	Manual         Category = "Manual"
	Correspondence Category = "Correspondence"
	Other          Category = "Other"
)

var allCategories = []Category{
	Business,
	Technical,
	Legal,
	Financial,
	Educational,
	Medical,
	Report,
	Proposal,
	Invoice,
	Contract,
	Research,
	Manual,
	Correspondence,
	Other,
}

// AllCategories returns the taxonomy in declaration order. The order is the
// stable tie-break for equal classification scores.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps free-form input to a taxonomy label.
func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}
	return Other, false
}
