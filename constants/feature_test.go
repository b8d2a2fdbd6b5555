package constants

import "testing"

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []Feature
	}{
		{
			name:  "empty selection means all",
			names: nil,
			want:  AllFeatures(),
		},
		{
			name:  "explicit selection",
			names: []string{"summarization", "keyword_extraction"},
			want:  []Feature{FeatureSummarization, FeatureKeywordExtraction},
		},
		{
			name:  "unknown names are ignored",
			names: []string{"keyword_extraction", "telepathy"},
			want:  []Feature{FeatureKeywordExtraction},
		},
		{
			name:  "only unknown names falls back to all",
			names: []string{"telepathy", "levitation"},
			want:  AllFeatures(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ParseFeatures(tt.names)
			if len(set) != len(tt.want) {
				t.Fatalf("got %d features, want %d", len(set), len(tt.want))
			}
			for _, f := range tt.want {
				if !set.Has(f) {
					t.Errorf("missing feature %q", f)
				}
			}
		})
	}
}

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{"pdf", PDF},
		{"png", IMAGE},
		{"jpg", IMAGE},
		{"md", MARKDOWN},
		{"txt", TEXT},
		{"docx", DOCX},
		{"odt", ODT},
		{"html", HTML},
		{"exe", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MapExtToFormat(tt.ext); got != tt.want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
