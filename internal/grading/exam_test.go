package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/models"
)

func pct(v float64) *float64 { return &v }

func TestFindExamComponentPrefersTitleKeyword(t *testing.T) {
	items := []models.AssessableItem{
		{ID: "1", Title: "Essay", Type: "exam"},
		{ID: "2", Title: "Continuous Assessment"},
		{ID: "3", Title: "Final EXAM paper"},
		{ID: "4", Title: "Midterm"},
	}
	exam, ok := FindExamComponent(items)
	require.True(t, ok)
	assert.Equal(t, "3", exam.ID)
}

func TestFindExamComponentFallsBackToType(t *testing.T) {
	items := []models.AssessableItem{{ID: "1", Title: "Essay"}, {ID: "2", Title: "Paper II", Type: "Exam"}}
	exam, ok := FindExamComponent(items)
	require.True(t, ok)
	assert.Equal(t, "2", exam.ID)

	_, ok = FindExamComponent([]models.AssessableItem{{ID: "1", Title: "Essay"}})
	assert.False(t, ok)
}

func TestExamThresholdOverridesWeightedGrade(t *testing.T) {
	items := []models.AssessableItem{weighted("ca", "Coursework", "30"), weighted("ex", "Final Exam", "70")}
	latest := map[string]models.Submission{
		"ca": {ItemID: "ca", Percentage: pct(95)},
		"ex": {ItemID: "ex", Percentage: pct(35)},
	}
	outcome := WeightedAverage(items, latest)
	assert.Equal(t, 53.0, outcome.Average)

	result := NewExamThreshold(40).Enforce(outcome.Average, &ExamScore{ItemID: "ex", Title: "Final Exam", Percentage: 35})
	assert.Equal(t, 0.0, result.FinalGrade)
	assert.True(t, result.WasEnforced)
	require.NotNil(t, result.OriginalGrade)
	assert.Equal(t, 53.0, *result.OriginalGrade)
	require.NotNil(t, result.ExamPercentage)
	assert.Equal(t, 35.0, *result.ExamPercentage)
}

func TestExamThresholdBoundary(t *testing.T) {
	enforcer := NewExamThreshold(0)
	assert.Equal(t, DefaultExamThreshold, enforcer.Minimum())

	pass := enforcer.Enforce(61.5, &ExamScore{Percentage: 40.00})
	assert.False(t, pass.WasEnforced)
	assert.Equal(t, 61.5, pass.FinalGrade)
	assert.Nil(t, pass.OriginalGrade)

	fail := enforcer.Enforce(61.5, &ExamScore{Percentage: 39.99})
	assert.True(t, fail.WasEnforced)
	assert.Equal(t, 0.0, fail.FinalGrade)

	for e := 0.0; e <= 100; e += 0.5 {
		res := enforcer.Enforce(70, &ExamScore{Percentage: e})
		assert.Equal(t, Round2(e) < 40, res.FinalGrade == 0, "exam %.2f", e)
	}
}

func TestExamThresholdWithoutSubmissionPassesThrough(t *testing.T) {
	res := NewExamThreshold(40).Enforce(48.25, nil)
	assert.Equal(t, 48.25, res.FinalGrade)
	assert.False(t, res.WasEnforced)
	assert.Nil(t, res.ExamPercentage)
	assert.Equal(t, ReasonNoExamSubmission, res.AuditReason)

	skipped := NewExamThreshold(40).PassThrough(48.25, ReasonNoExamComponent)
	assert.Equal(t, 48.25, skipped.FinalGrade)
	assert.False(t, skipped.WasEnforced)
	assert.Equal(t, ReasonNoExamComponent, skipped.AuditReason)
}

func TestWeightedOutcomeEmpty(t *testing.T) {
	items := []models.AssessableItem{weighted("q", "Quiz", "0"), weighted("ex", "Exam", "100")}
	outcome := WeightedAverage(items, map[string]models.Submission{"q": {ItemID: "q", Percentage: pct(90)}})
	assert.Equal(t, 1, outcome.CountedItems)
	assert.Equal(t, 0.0, outcome.CountedWeight)
	assert.True(t, outcome.Empty())

	outcome = WeightedAverage(items, map[string]models.Submission{"ex": {ItemID: "ex", Percentage: pct(90)}})
	assert.False(t, outcome.Empty())
}

func TestWeightedAverageRenormalisesOverSubmittedItems(t *testing.T) {
	items := []models.AssessableItem{
		weighted("a", "Quiz", "20"),
		weighted("b", "Project", "30"),
		weighted("c", "Exam", "50"),
	}
	score, max := 45.0, 50.0
	latest := map[string]models.Submission{
		"a": {ItemID: "a", Percentage: pct(120)},
		"b": {ItemID: "b", Score: &score, MaxScore: &max},
	}
	outcome := WeightedAverage(items, latest)
	assert.Equal(t, 2, outcome.CountedItems)
	assert.Equal(t, 50.0, outcome.CountedWeight)
	assert.Equal(t, 94.0, outcome.Average)

	empty := WeightedAverage(items, nil)
	assert.Equal(t, 0.0, empty.Average)
	assert.Equal(t, 0, empty.CountedItems)
}
