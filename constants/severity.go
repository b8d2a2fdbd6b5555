package constants

// Severity is one level from the ordered importance scale.
type Severity string

const (
	SeverityCritical    Severity = "Critical"
	SeverityImportant   Severity = "Important"
	SeverityNormal      Severity = "Normal"
	SeverityLowPriority Severity = "Low Priority"
)

// allSeverities is ordered most severe first.
var allSeverities = []Severity{
	SeverityCritical,
	SeverityImportant,
	SeverityNormal,
	SeverityLowPriority,
}

// AllSeverities returns the levels ordered most severe first.
func AllSeverities() []Severity {
	out := make([]Severity, len(allSeverities))
	copy(out, allSeverities)
	return out
}

// Rank returns the position in the severity order: 0 for Critical up to 3
// for Low Priority. Unknown levels rank below Low Priority.
func (s Severity) Rank() int {
	for i, lvl := range allSeverities {
		if lvl == s {
			return i
		}
	}
	return len(allSeverities)
}

// MoreSevere reports whether s outranks other. Equal scores resolve to the
// more severe level, so under-escalation loses ties.
func (s Severity) MoreSevere(other Severity) bool {
	return s.Rank() < other.Rank()
}
