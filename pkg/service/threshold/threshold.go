// Package threshold maps a sentiment score to an alert severity.
package threshold

import (
	"github.com/secmon-lab/sentiq/pkg/domain/model/config"
	"github.com/secmon-lab/sentiq/pkg/domain/types"
)

// Result is the severity a score falls into together with the threshold
// that was crossed.
type Result struct {
	Severity  types.Severity
	Threshold float64
}

// Classify returns the severity tier of score, or false when the score is
// above the warning threshold. Warning crossings surface as HIGH, MEDIUM and
// LOW are never produced from a score.
func Classify(score float64, th config.Thresholds) (Result, bool) {
	switch {
	case score <= th.Critical:
		return Result{Severity: types.SeverityCritical, Threshold: th.Critical}, true
	case score <= th.Warning:
		return Result{Severity: types.SeverityHigh, Threshold: th.Warning}, true
	}
	return Result{}, false
}
