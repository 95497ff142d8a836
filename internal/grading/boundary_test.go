package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/models"
)

func TestResolveBoundaryDefaultTable(t *testing.T) {
	cases := []struct {
		mark   float64
		letter string
		point  float64
	}{
		{85, "A", 5.0},
		{100, "A", 5.0},
		{80, "A", 5.0},
		{79.99, "B+", 4.5},
		{72, "B", 4.0},
		{60, "C", 3.0},
		{50.00, "D", 2.0},
		{49.99, "F", 0.0},
		{0, "F", 0.0},
	}
	for _, tc := range cases {
		band := ResolveBoundary(tc.mark, nil)
		assert.Equal(t, tc.letter, band.LetterGrade, "mark %.2f", tc.mark)
		assert.Equal(t, tc.point, band.GradePoint, "mark %.2f", tc.mark)
	}
}

func TestResolveBoundaryOutsideBandsFallsBackToF(t *testing.T) {
	rules := []models.GradingRule{{MinPercentage: 50, MaxPercentage: 100, LetterGrade: "P", GradePoint: 3}}
	assert.Equal(t, FailingBand, ResolveBoundary(20, rules))
	assert.Equal(t, FailingBand, ResolveBoundary(120, nil))
}

func TestResolveBoundaryCustomRulesUnordered(t *testing.T) {
	rules := []models.GradingRule{
		{MinPercentage: 0, MaxPercentage: 39.99, LetterGrade: "E", GradePoint: 0},
		{MinPercentage: 70, MaxPercentage: 100, LetterGrade: "A", GradePoint: 5},
		{MinPercentage: 40, MaxPercentage: 69.99, LetterGrade: "C", GradePoint: 3},
	}
	assert.Equal(t, GradeBand{LetterGrade: "A", GradePoint: 5}, ResolveBoundary(70, rules))
	assert.Equal(t, GradeBand{LetterGrade: "C", GradePoint: 3}, ResolveBoundary(40, rules))
	assert.Equal(t, GradeBand{LetterGrade: "E", GradePoint: 0}, ResolveBoundary(39.99, rules))
}

func TestResolveBoundaryIsMonotonic(t *testing.T) {
	custom := []models.GradingRule{
		{MinPercentage: 70, MaxPercentage: 100, LetterGrade: "A", GradePoint: 5},
		{MinPercentage: 40, MaxPercentage: 69.99, LetterGrade: "C", GradePoint: 3},
		{MinPercentage: 0, MaxPercentage: 39.99, LetterGrade: "E", GradePoint: 0},
	}
	for _, rules := range [][]models.GradingRule{nil, custom} {
		previous := -1.0
		for mark := 0.0; mark <= 100; mark += 0.25 {
			point := ResolveBoundary(mark, rules).GradePoint
			require.GreaterOrEqual(t, point, previous, "mark %.2f", mark)
			previous = point
		}
	}
}

func TestDefaultGradingRulesIsACopy(t *testing.T) {
	rules := DefaultGradingRules()
	rules[0].LetterGrade = "Z"
	assert.Equal(t, "A", DefaultGradingRules()[0].LetterGrade)
	assert.Empty(t, ValidateRuleTable(DefaultGradingRules()))
}

func TestValidateRuleTable(t *testing.T) {
	overlapping := []models.GradingRule{
		{MinPercentage: 50, MaxPercentage: 100, LetterGrade: "P", GradePoint: 3},
		{MinPercentage: 0, MaxPercentage: 60, LetterGrade: "F", GradePoint: 0},
	}
	problems := ValidateRuleTable(overlapping)
	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "overlaps")

	gapped := []models.GradingRule{
		{MinPercentage: 60, MaxPercentage: 90, LetterGrade: "P", GradePoint: 3},
		{MinPercentage: 10, MaxPercentage: 50, LetterGrade: "F", GradePoint: 0},
	}
	problems = ValidateRuleTable(gapped)
	assert.Len(t, problems, 3)

	assert.NotEmpty(t, ValidateRuleTable(nil))
}
