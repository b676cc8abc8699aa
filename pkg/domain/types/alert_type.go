package types

import "github.com/m-mizutani/goerr/v2"

// AlertType is the category of an alert. It is an open set, the constants
// below are the categories known to the backend.
type AlertType string

const (
	AlertTypeLowSentimentScore           AlertType = "LOW_SENTIMENT_SCORE"
	AlertTypeSuddenScoreDrop             AlertType = "SUDDEN_SCORE_DROP"
	AlertTypeConsecutiveNegativeFeedback AlertType = "CONSECUTIVE_NEGATIVE_FEEDBACK"
	AlertTypeHighNegativePercentage      AlertType = "HIGH_NEGATIVE_PERCENTAGE"
	AlertTypeVeryNegativeFeedback        AlertType = "VERY_NEGATIVE_FEEDBACK"
	AlertTypeRepeatedComplaints          AlertType = "REPEATED_COMPLAINTS"
	AlertTypeLowRatingTrend              AlertType = "LOW_RATING_TREND"
)

func (x AlertType) String() string {
	return string(x)
}

func (x AlertType) Validate() error {
	if x == "" {
		return goerr.New("empty alert type")
	}
	return nil
}

type RecommendedAction string

const (
	RecommendedActionImmediateIntervention RecommendedAction = "IMMEDIATE_INTERVENTION"
	RecommendedActionScheduleMeeting       RecommendedAction = "SCHEDULE_MEETING"
	RecommendedActionAdditionalTraining    RecommendedAction = "ADDITIONAL_TRAINING"
	RecommendedActionMonitorClosely        RecommendedAction = "MONITOR_CLOSELY"
	RecommendedActionNoAction              RecommendedAction = "NO_ACTION"
)

func (x RecommendedAction) String() string {
	return string(x)
}

// RecommendedActionFor returns the follow-up suggested for a score-driven
// alert of the given severity.
func RecommendedActionFor(severity Severity) RecommendedAction {
	switch severity {
	case SeverityCritical:
		return RecommendedActionImmediateIntervention
	case SeverityHigh:
		return RecommendedActionScheduleMeeting
	case SeverityMedium:
		return RecommendedActionMonitorClosely
	default:
		return RecommendedActionNoAction
	}
}
