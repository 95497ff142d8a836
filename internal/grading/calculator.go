package grading

import "github.com/noah-isme/grading-engine/internal/models"

// GradeResult is the full per-course grade outcome.
type GradeResult struct {
	FinalMark         float64 `json:"final_mark"`
	LetterGrade       string  `json:"letter_grade"`
	GradePoint        float64 `json:"grade_point"`
	GradePointsEarned float64 `json:"grade_points_earned"`
	CreditUnits       float64 `json:"credit_units"`
	IsRetake          bool    `json:"is_retake"`
	WasCapped         bool    `json:"was_capped"`
	OriginalGrade     *string `json:"original_grade,omitempty"`
	CappedGrade       *string `json:"capped_grade,omitempty"`
}

// Calculator composes boundary resolution and retake capping.
type Calculator struct {
	retake RetakeCap
}

// NewCalculator builds a calculator applying the given retake cap.
func NewCalculator(retake RetakeCap) *Calculator {
	if retake.Points <= 0 {
		retake.Points = DefaultRetakeCapPoints
	}
	if retake.Grade == "" {
		retake.Grade = DefaultRetakeCapGrade
	}
	return &Calculator{retake: retake}
}

// Calculate grades a percentage mark under the given rule set.
func (c *Calculator) Calculate(mark float64, rules []models.GradingRule, creditUnits float64, isRetake bool) GradeResult {
	mark = Round2(ClampPercentage(mark))
	band := ResolveBoundary(mark, rules)

	result := GradeResult{
		FinalMark:         mark,
		LetterGrade:       band.LetterGrade,
		GradePoint:        band.GradePoint,
		GradePointsEarned: PointsEarned(band.GradePoint, creditUnits),
		CreditUnits:       creditUnits,
		IsRetake:          isRetake,
	}
	if !isRetake {
		return result
	}

	capped := c.retake.Apply(band.LetterGrade, band.GradePoint, creditUnits)
	result.LetterGrade = capped.LetterGrade
	result.GradePoint = capped.GradePoint
	result.GradePointsEarned = capped.GradePointsEarned
	result.WasCapped = capped.WasCapped
	if capped.WasCapped {
		original := band.LetterGrade
		cappedGrade := capped.LetterGrade
		result.OriginalGrade = &original
		result.CappedGrade = &cappedGrade
	}
	return result
}
