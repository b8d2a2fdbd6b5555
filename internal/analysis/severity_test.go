package analysis

import (
	"testing"

	"github.com/docmdio/docmd/constants"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.Severity
	}{
		{
			name: "critical keywords",
			text: "URGENT: critical emergency, respond immediately",
			want: constants.SeverityCritical,
		},
		{
			name: "important keywords",
			text: "important update, your attention is required",
			want: constants.SeverityImportant,
		},
		{
			name: "no evidence defaults to normal",
			text: "lorem ipsum dolor sit amet",
			want: constants.SeverityNormal,
		},
		{
			name: "tie escalates to the more severe level",
			text: "important deadline",
			want: constants.SeverityCritical,
		},
		{
			name: "low priority",
			text: "fyi, this is optional reading",
			want: constants.SeverityLowPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySeverity(tt.text)
			if got.Severity != tt.want {
				t.Errorf("ClassifySeverity(%q) = %s, want %s", tt.text, got.Severity, tt.want)
			}
		})
	}
}

func TestClassifySeverityConfidence(t *testing.T) {
	got := ClassifySeverity("urgent urgent urgent")
	if got.Severity != constants.SeverityCritical {
		t.Fatalf("severity = %s, want Critical", got.Severity)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}

	got = ClassifySeverity("lorem ipsum")
	if got.Confidence != 0.5 {
		t.Errorf("default confidence = %v, want 0.5", got.Confidence)
	}
	if got.Matches != nil {
		t.Errorf("default matches = %v, want none", got.Matches)
	}
}
