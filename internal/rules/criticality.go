package rules

import (
	"math"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

// Level is a discrete criticality tier.
type Level string

const (
	LevelVeryLow  Level = "very-low"
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// ScoreToLevel buckets a combined criticality score into a tier.
func ScoreToLevel(total int) Level {
	switch {
	case total <= 0:
		return LevelVeryLow
	case total <= 5:
		return LevelLow
	case total <= 9:
		return LevelMedium
	case total <= 12:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// CombinedScore computes the persisted criticality score of an anomaly:
// each severity sub-score is rounded up to the nearest integer, then the
// three are summed. The user-confirmed value for a metric is used only
// when user feedback is set AND that metric was actually confirmed; the
// selection is per-metric, so confirmed and predicted values can mix.
func CombinedScore(a model.Anomaly) int {
	return ceil(pick(a, a.FinalDisponibility, a.PredictedDisponibility)) +
		ceil(pick(a, a.FinalIntegrity, a.PredictedIntegrity)) +
		ceil(pick(a, a.FinalProcessSafety, a.PredictedProcessSafety))
}

// CombinedLevel is the tier of CombinedScore.
func CombinedLevel(a model.Anomaly) Level {
	return ScoreToLevel(CombinedScore(a))
}

func pick(a model.Anomaly, final, predicted *float64) float64 {
	if a.UserFeedback && final != nil {
		return *final
	}
	if predicted != nil {
		return *predicted
	}
	return 0
}

func ceil(v float64) int {
	return int(math.Ceil(v))
}

// assessmentLevels is the fixed safety x availability lookup table used by
// structured criticality assessments.
var assessmentLevels = map[int]Level{
	1: LevelVeryLow,
	2: LevelLow,
	3: LevelMedium,
	4: LevelMedium,
	6: LevelHigh,
	9: LevelCritical,
}

// AssessmentLevel computes the discrete safety x availability score and its
// tier. Scores outside the table default to low rather than failing.
func AssessmentLevel(safety, availability int) (int, Level) {
	score := safety * availability
	if level, ok := assessmentLevels[score]; ok {
		return score, level
	}
	return score, LevelLow
}
