package grading

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/grading-engine/internal/models"
)

// Totals are the raw sums behind a grade point average.
type Totals struct {
	CreditUnits  float64 `json:"total_credit_units"`
	GradePoints  float64 `json:"total_grade_points"`
	CountedCount int     `json:"counted_results"`
}

// Sum adds up credit units and earned points of every result with a grade
// point. Failing results carry zero points but still count their units.
func Sum(results []models.StudentCourseResult) Totals {
	units, points, counted := sum(results)
	u, _ := units.Float64()
	p, _ := points.Float64()
	return Totals{CreditUnits: u, GradePoints: p, CountedCount: counted}
}

// GPA is the credit-weighted average grade point of results, rounded to two
// decimals and bounded to [0, 5]. An empty set yields 0.
func GPA(results []models.StudentCourseResult) float64 {
	units, points, _ := sum(results)
	if !units.IsPositive() {
		return 0
	}
	avg, _ := points.DivRound(units, 8).Round(2).Float64()
	return Clamp(avg, 0, MaxGradePoint)
}

func sum(results []models.StudentCourseResult) (decimal.Decimal, decimal.Decimal, int) {
	units := decimal.Zero
	points := decimal.Zero
	counted := 0
	for _, result := range results {
		if result.GradePoint == nil {
			continue
		}
		units = units.Add(decimal.NewFromFloat(result.CreditUnits))
		points = points.Add(decimal.NewFromFloat(result.GradePointsEarned))
		counted++
	}
	return units, points, counted
}

// SemesterGPA restricts GPA to results of one semester.
func SemesterGPA(results []models.StudentCourseResult, semester string) float64 {
	return GPA(FilterSemester(results, semester))
}

// CGPA is the GPA over every result a student holds across enrollments.
func CGPA(results []models.StudentCourseResult) float64 {
	return GPA(results)
}

// FilterSemester returns the results recorded for semester.
func FilterSemester(results []models.StudentCourseResult, semester string) []models.StudentCourseResult {
	filtered := make([]models.StudentCourseResult, 0, len(results))
	for _, result := range results {
		if result.Semester == semester {
			filtered = append(filtered, result)
		}
	}
	return filtered
}
