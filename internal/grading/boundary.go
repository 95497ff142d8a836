package grading

import (
	"sort"

	"github.com/noah-isme/grading-engine/internal/models"
)

// GradeBand is a resolved letter grade and its point value.
type GradeBand struct {
	LetterGrade string  `json:"letter_grade"`
	GradePoint  float64 `json:"grade_point"`
}

// FailingBand is returned when a mark falls outside every band.
var FailingBand = GradeBand{LetterGrade: "F", GradePoint: 0}

// DefaultGradingRules returns a fresh copy of the fallback boundary table,
// ordered by descending minimum percentage.
func DefaultGradingRules() []models.GradingRule {
	return []models.GradingRule{
		{MinPercentage: 80, MaxPercentage: 100, LetterGrade: "A", GradePoint: 5.0},
		{MinPercentage: 75, MaxPercentage: 79.99, LetterGrade: "B+", GradePoint: 4.5},
		{MinPercentage: 70, MaxPercentage: 74.99, LetterGrade: "B", GradePoint: 4.0},
		{MinPercentage: 65, MaxPercentage: 69.99, LetterGrade: "C+", GradePoint: 3.5},
		{MinPercentage: 60, MaxPercentage: 64.99, LetterGrade: "C", GradePoint: 3.0},
		{MinPercentage: 55, MaxPercentage: 59.99, LetterGrade: "D+", GradePoint: 2.5},
		{MinPercentage: 50, MaxPercentage: 54.99, LetterGrade: "D", GradePoint: 2.0},
		{MinPercentage: 0, MaxPercentage: 49.99, LetterGrade: "F", GradePoint: 0.0},
	}
}

// ResolveBoundary maps a percentage mark to a grade band using the configured
// rules of a program level, or the default table when none are configured.
// Marks are compared at two-decimal precision.
func ResolveBoundary(mark float64, rules []models.GradingRule) GradeBand {
	if len(rules) == 0 {
		rules = DefaultGradingRules()
	} else {
		rules = SortRules(rules)
	}
	mark = Round2(mark)
	for _, rule := range rules {
		if rule.MinPercentage <= mark && mark <= rule.MaxPercentage {
			return GradeBand{LetterGrade: rule.LetterGrade, GradePoint: rule.GradePoint}
		}
	}
	return FailingBand
}

// SortRules returns a copy of rules ordered by descending minimum percentage.
func SortRules(rules []models.GradingRule) []models.GradingRule {
	sorted := make([]models.GradingRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinPercentage > sorted[j].MinPercentage
	})
	return sorted
}
