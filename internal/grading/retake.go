package grading

import "github.com/shopspring/decimal"

// RetakeCap limits the grade awarded for a repeated course.
type RetakeCap struct {
	Points float64
	Grade  string
}

// CapResult is the outcome of applying the retake cap.
type CapResult struct {
	LetterGrade       string  `json:"letter_grade"`
	GradePoint        float64 `json:"grade_point"`
	GradePointsEarned float64 `json:"grade_points_earned"`
	WasCapped         bool    `json:"was_capped"`
}

// Apply caps a grade at the configured point value. Applying it to its own
// output is a no-op.
func (c RetakeCap) Apply(letterGrade string, gradePoint, creditUnits float64) CapResult {
	result := CapResult{LetterGrade: letterGrade, GradePoint: gradePoint}
	if gradePoint > c.Points {
		result.LetterGrade = c.Grade
		result.GradePoint = c.Points
		result.WasCapped = true
	}
	result.GradePointsEarned = PointsEarned(result.GradePoint, creditUnits)
	return result
}

// PointsEarned multiplies a grade point by the course credit units.
func PointsEarned(gradePoint, creditUnits float64) float64 {
	earned, _ := decimal.NewFromFloat(gradePoint).Mul(decimal.NewFromFloat(creditUnits)).Float64()
	return earned
}
