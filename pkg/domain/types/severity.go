package types

import "github.com/m-mizutani/goerr/v2"

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// SeverityAll is the filter value that matches every severity.
const SeverityAll Severity = "ALL"

var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

var severityLabels = map[Severity]string{
	SeverityCritical: "🔥 Critical",
	SeverityHigh:     "⚠️ High",
	SeverityMedium:   "🟡 Medium",
	SeverityLow:      "🟢 Low",
}

func (x Severity) String() string {
	return string(x)
}

func (x Severity) Label() string {
	if label, ok := severityLabels[x]; ok {
		return label
	}
	return string(x)
}

// Rank orders severities by urgency, lower is more urgent. Unknown values
// sort after LOW.
func (x Severity) Rank() int {
	if rank, ok := severityRanks[x]; ok {
		return rank
	}
	return len(severityRanks)
}

func (x Severity) Validate() error {
	if _, ok := severityRanks[x]; !ok {
		return goerr.New("invalid severity", goerr.V("severity", x))
	}
	return nil
}

// AllSeverities returns severities from the most urgent to the least.
func AllSeverities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}
