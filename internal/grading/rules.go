package grading

import (
	"fmt"
	"math"

	"github.com/noah-isme/grading-engine/internal/models"
)

// bandGap is the largest allowed distance between two adjacent bands.
const bandGap = 0.01

// ValidateRuleTable checks that a boundary table is well formed: every band
// lies within 0-100, bands do not overlap, adjacent bands leave no gap wider
// than one hundredth, and the table covers both 0 and 100.
func ValidateRuleTable(rules []models.GradingRule) []string {
	if len(rules) == 0 {
		return []string{"at least one grading band is required"}
	}
	var problems []string
	sorted := SortRules(rules)
	for i, rule := range sorted {
		if rule.MinPercentage < 0 || rule.MaxPercentage > 100 {
			problems = append(problems, fmt.Sprintf("band %s must lie within 0-100", rule.LetterGrade))
		}
		if rule.MinPercentage > rule.MaxPercentage {
			problems = append(problems, fmt.Sprintf("band %s has min %.2f above max %.2f", rule.LetterGrade, rule.MinPercentage, rule.MaxPercentage))
		}
		if rule.GradePoint < 0 || rule.GradePoint > MaxGradePoint {
			problems = append(problems, fmt.Sprintf("band %s grade point %.2f outside 0-%.1f", rule.LetterGrade, rule.GradePoint, MaxGradePoint))
		}
		if i == 0 {
			continue
		}
		upper := sorted[i-1]
		if rule.MaxPercentage >= upper.MinPercentage {
			problems = append(problems, fmt.Sprintf("band %s overlaps band %s", rule.LetterGrade, upper.LetterGrade))
			continue
		}
		if gap := upper.MinPercentage - rule.MaxPercentage; gap > bandGap+1e-9 {
			problems = append(problems, fmt.Sprintf("gap of %.2f between band %s and band %s", gap, rule.LetterGrade, upper.LetterGrade))
		}
	}
	if top := sorted[0]; math.Abs(top.MaxPercentage-100) > 1e-9 {
		problems = append(problems, "grading bands must reach 100")
	}
	if bottom := sorted[len(sorted)-1]; bottom.MinPercentage != 0 {
		problems = append(problems, "grading bands must start at 0")
	}
	return problems
}

// ValidateClassificationTable checks configured classification bands.
func ValidateClassificationTable(bands []models.AcademicClassification) []string {
	var problems []string
	seen := make(map[float64]struct{}, len(bands))
	for _, band := range bands {
		if band.MinCGPA < 0 || band.MaxCGPA > MaxGradePoint || band.MinCGPA > band.MaxCGPA {
			problems = append(problems, fmt.Sprintf("classification %s has an invalid CGPA range", band.ClassificationLabel))
		}
		if _, ok := seen[band.MinCGPA]; ok {
			problems = append(problems, fmt.Sprintf("duplicate classification threshold %.2f", band.MinCGPA))
		}
		seen[band.MinCGPA] = struct{}{}
	}
	return problems
}
