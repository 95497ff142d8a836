package grading

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

func weighted(id, title, weight string) models.AssessableItem {
	return models.AssessableItem{ID: id, Title: title, Kind: models.AssessableAssignment, Weight: json.Number(weight)}
}

func TestValidateWeightsIncompleteTotal(t *testing.T) {
	report := ValidateWeights([]models.AssessableItem{weighted("a", "CA", "30"), weighted("b", "Exam", "40")}, 100)
	assert.False(t, report.Valid)
	assert.Equal(t, 70.0, report.TotalWeight)
	assert.Equal(t, 2, report.ItemsWithWeight)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "does not equal expected total")
}

func TestValidateWeightsExactDecimalTotal(t *testing.T) {
	items := []models.AssessableItem{weighted("a", "A", "33.3"), weighted("b", "B", "33.3"), weighted("c", "C", "33.4")}
	report := ValidateWeights(items, 100)
	assert.True(t, report.Valid, report.Errors)
	assert.Equal(t, 100.0, report.TotalWeight)
}

func TestValidateWeightsPerItemChecks(t *testing.T) {
	items := []models.AssessableItem{
		weighted("a", "Missing", ""),
		weighted("b", "Text", "abc"),
		weighted("c", "Negative", "-5"),
		weighted("d", "Huge", "150"),
		weighted("e", "Zero", "0"),
		weighted("f", "Exam", "100"),
	}
	report := ValidateWeights(items, 100)
	assert.True(t, report.Valid == false)
	assert.Equal(t, 2, report.ItemsWithWeight)
	assert.Equal(t, 100.0, report.TotalWeight)
	assert.Len(t, report.Errors, 3)
	assert.Contains(t, report.Errors[0], "non-numeric")
	assert.Contains(t, report.Errors[1], "negative")
	assert.Contains(t, report.Errors[2], "above 100")
	assert.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0], "no weight")
	assert.Contains(t, report.Warnings[1], "weight of 0")
}

func TestValidateWeightsNoWeights(t *testing.T) {
	report := ValidateWeights([]models.AssessableItem{weighted("a", "A", "")}, 100)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "no assessable items")

	report = ValidateWeights(nil, 100)
	assert.False(t, report.Valid)
}

func TestAssertWeightsMatchesValidate(t *testing.T) {
	sets := [][]models.AssessableItem{
		{weighted("a", "A", "30"), weighted("b", "B", "70")},
		{weighted("a", "A", "30"), weighted("b", "B", "40")},
		{weighted("a", "A", "x")},
		nil,
	}
	for _, items := range sets {
		report, err := AssertWeights(items, 100)
		assert.Equal(t, !report.Valid, err != nil)
		if err != nil {
			var appErr *appErrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, appErrors.ErrInvalidWeights.Code, appErr.Code)
			for _, msg := range report.Errors {
				assert.Contains(t, appErr.Message, msg)
			}
		}
	}
}
