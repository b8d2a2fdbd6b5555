package constants

// Feature is one selectable analysis capability.
type Feature string

const (
	FeatureTitlePrediction    Feature = "title_prediction"
	FeatureMarkdownExtraction Feature = "markdown_extraction"
	FeatureCategorization     Feature = "document_categorization"
	FeatureKeywordExtraction  Feature = "keyword_extraction"
	FeatureSeverity           Feature = "severity_classification"
	FeatureSummarization      Feature = "summarization"
	FeatureCorrection         Feature = "correction"
)

var allFeatures = []Feature{
	FeatureTitlePrediction,
	FeatureMarkdownExtraction,
	FeatureCategorization,
	FeatureKeywordExtraction,
	FeatureSeverity,
	FeatureSummarization,
	FeatureCorrection,
}

// AllFeatures returns every known feature in declaration order.
func AllFeatures() []Feature {
	out := make([]Feature, len(allFeatures))
	copy(out, allFeatures)
	return out
}

// FeatureNames returns the wire names of all features.
func FeatureNames() []string {
	out := make([]string, len(allFeatures))
	for i, f := range allFeatures {
		out[i] = string(f)
	}
	return out
}

// FeatureSet is a resolved selection of features.
type FeatureSet map[Feature]struct{}

// ParseFeatures resolves wire names against the known enum.
// Unknown names are ignored; an empty selection means "all features".
func ParseFeatures(names []string) FeatureSet {
	set := make(FeatureSet, len(allFeatures))
	for _, n := range names {
		f := Feature(n)
		if isKnownFeature(f) {
			set[f] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, f := range allFeatures {
			set[f] = struct{}{}
		}
	}
	return set
}

func (s FeatureSet) Has(f Feature) bool {
	_, ok := s[f]
	return ok
}

func isKnownFeature(f Feature) bool {
	for _, k := range allFeatures {
		if k == f {
			return true
		}
	}
	return false
}
