package grading

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/grading-engine/internal/models"
)

// WeightedOutcome is the renormalised weighted average over submitted items.
type WeightedOutcome struct {
	Average       float64 `json:"average"`
	CountedItems  int     `json:"counted_items"`
	CountedWeight float64 `json:"counted_weight"`
}

// Empty reports whether no submitted item carried weight, so there is
// nothing to average.
func (o WeightedOutcome) Empty() bool {
	return o.CountedItems == 0 || o.CountedWeight <= 0
}

// WeightedAverage averages the latest percentage of every submitted item by
// its weight. Items without a submission or without a usable weight are left
// out of both numerator and denominator. Each percentage is clamped to
// [0, 100] and the result is clamped and rounded to two decimals.
func WeightedAverage(items []models.AssessableItem, latest map[string]models.Submission) WeightedOutcome {
	numerator := decimal.Zero
	denominator := decimal.Zero
	counted := 0
	for _, item := range items {
		submission, ok := latest[item.ID]
		if !ok {
			continue
		}
		percentage, ok := submission.ScorePercentage()
		if !ok {
			continue
		}
		weight, err := decimal.NewFromString(strings.TrimSpace(item.Weight.String()))
		if err != nil || weight.IsNegative() {
			continue
		}
		numerator = numerator.Add(decimal.NewFromFloat(ClampPercentage(percentage)).Mul(weight))
		denominator = denominator.Add(weight)
		counted++
	}
	outcome := WeightedOutcome{CountedItems: counted}
	outcome.CountedWeight, _ = denominator.Float64()
	if !denominator.IsPositive() {
		return outcome
	}
	avg, _ := numerator.DivRound(denominator, 8).Float64()
	outcome.Average = Round2(ClampPercentage(avg))
	return outcome
}
