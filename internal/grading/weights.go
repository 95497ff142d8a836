package grading

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

// WeightValidation reports whether the assessment weights of a course are usable.
type WeightValidation struct {
	Valid           bool     `json:"valid"`
	TotalWeight     float64  `json:"total_weight"`
	ExpectedTotal   float64  `json:"expected_total"`
	ItemsWithWeight int      `json:"items_with_weight"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
}

var maxItemWeight = decimal.NewFromInt(100)

// ValidateWeights checks every item's weight and the course total.
// Weights are summed as decimals so the total comparison is exact.
func ValidateWeights(items []models.AssessableItem, expectedTotal float64) WeightValidation {
	report := WeightValidation{ExpectedTotal: expectedTotal, Errors: []string{}, Warnings: []string{}}
	total := decimal.Zero

	for _, item := range items {
		label := itemLabel(item)
		raw := strings.TrimSpace(item.Weight.String())
		if raw == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s has no weight and is excluded from the total", label))
			continue
		}
		weight, err := decimal.NewFromString(raw)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s has a non-numeric weight %q", label, raw))
			continue
		}
		if weight.IsNegative() {
			report.Errors = append(report.Errors, fmt.Sprintf("%s has a negative weight %s", label, weight.String()))
			continue
		}
		if weight.GreaterThan(maxItemWeight) {
			report.Errors = append(report.Errors, fmt.Sprintf("%s has a weight %s above 100", label, weight.String()))
			continue
		}
		if weight.IsZero() {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s has a weight of 0 and will not affect the final grade", label))
		}
		total = total.Add(weight)
		report.ItemsWithWeight++
	}

	report.TotalWeight, _ = total.Float64()
	expected := decimal.NewFromFloat(expectedTotal)
	switch {
	case report.ItemsWithWeight == 0:
		report.Errors = append(report.Errors, "no assessable items have a weight configured")
	case !total.Equal(expected):
		report.Errors = append(report.Errors, fmt.Sprintf("total weight %s does not equal expected total %s", total.String(), expected.String()))
	}
	report.Valid = len(report.Errors) == 0
	return report
}

// AssertWeights returns an INVALID_WEIGHTS error listing every problem when
// the weights are not valid.
func AssertWeights(items []models.AssessableItem, expectedTotal float64) (WeightValidation, error) {
	report := ValidateWeights(items, expectedTotal)
	if report.Valid {
		return report, nil
	}
	return report, appErrors.Clone(appErrors.ErrInvalidWeights, "invalid assessment weights: "+strings.Join(report.Errors, "; "))
}

func itemLabel(item models.AssessableItem) string {
	kind := string(item.Kind)
	if kind == "" {
		kind = "item"
	}
	kind = strings.ToUpper(kind[:1]) + kind[1:]
	if item.Title == "" {
		return fmt.Sprintf("%s %s", kind, item.ID)
	}
	return fmt.Sprintf("%s '%s'", kind, item.Title)
}
