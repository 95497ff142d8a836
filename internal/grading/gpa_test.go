package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/grading-engine/internal/models"
)

func graded(point, units float64, semester string) models.StudentCourseResult {
	p := point
	return models.StudentCourseResult{GradePoint: &p, CreditUnits: units, GradePointsEarned: point * units, Semester: semester}
}

func TestGPAWeightsByCreditUnits(t *testing.T) {
	results := []models.StudentCourseResult{graded(4.0, 3, "s1"), graded(3.0, 4, "s1")}
	assert.Equal(t, 3.43, GPA(results))
}

func TestGPAEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, GPA(nil))
	assert.Equal(t, 0.0, GPA([]models.StudentCourseResult{graded(4, 0, "s1")}))
}

func TestGPACountsFailures(t *testing.T) {
	results := []models.StudentCourseResult{graded(5.0, 3, "s1"), graded(0, 3, "s1")}
	assert.Equal(t, 2.5, GPA(results))
}

func TestGPASkipsUngradedResults(t *testing.T) {
	ungraded := models.StudentCourseResult{CreditUnits: 3, Semester: "s1"}
	results := []models.StudentCourseResult{graded(5.0, 3, "s1"), ungraded}
	assert.Equal(t, 5.0, GPA(results))

	totals := Sum(results)
	assert.Equal(t, 3.0, totals.CreditUnits)
	assert.Equal(t, 15.0, totals.GradePoints)
	assert.Equal(t, 1, totals.CountedCount)
}

func TestSemesterGPAAndCGPA(t *testing.T) {
	results := []models.StudentCourseResult{
		graded(5.0, 3, "2024-2025-1"),
		graded(3.0, 3, "2024-2025-1"),
		graded(2.0, 2, "2024-2025-2"),
	}
	assert.Equal(t, 4.0, SemesterGPA(results, "2024-2025-1"))
	assert.Equal(t, 2.0, SemesterGPA(results, "2024-2025-2"))
	assert.Equal(t, 0.0, SemesterGPA(results, "2030-2031-1"))
	assert.Equal(t, 3.5, CGPA(results))
}

func TestGPAIsReproducibleFromStoredFields(t *testing.T) {
	results := []models.StudentCourseResult{graded(4.5, 2, "a"), graded(3.5, 3, "a"), graded(2.0, 1.5, "a")}
	totals := Sum(results)
	assert.Equal(t, Round2(totals.GradePoints/totals.CreditUnits), GPA(results))
}
