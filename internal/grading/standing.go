package grading

import (
	"fmt"

	"github.com/noah-isme/grading-engine/internal/models"
)

// StandingResolver evaluates academic standing against a continuation threshold.
type StandingResolver struct {
	threshold float64
}

// NewStandingResolver builds a resolver; a non-positive threshold uses the default.
func NewStandingResolver(threshold float64) StandingResolver {
	if threshold <= 0 {
		threshold = DefaultContinuationCGPA
	}
	return StandingResolver{threshold: threshold}
}

// Resolve checks discontinuation first, then the probation threshold.
func (r StandingResolver) Resolve(cgpa float64, discontinued bool) models.StandingResult {
	switch {
	case discontinued:
		return models.StandingResult{
			Standing: models.StandingDiscontinued,
			Status:   "Discontinued",
			Message:  "Studies have been discontinued; contact the registry before registering for further courses.",
			CGPA:     cgpa,
		}
	case cgpa < r.threshold:
		return models.StandingResult{
			Standing:    models.StandingProbation,
			Status:      "Academic Probation",
			Message:     fmt.Sprintf("CGPA %.2f is below the %.2f required for normal progression.", cgpa, r.threshold),
			OnProbation: true,
			CGPA:        cgpa,
		}
	default:
		return models.StandingResult{
			Standing: models.StandingNormal,
			Status:   "Good Standing",
			Message:  "The student is in good academic standing.",
			CGPA:     cgpa,
		}
	}
}

// IsEligibleToContinue reports whether the CGPA meets the continuation threshold.
// It ignores discontinuation.
func (r StandingResolver) IsEligibleToContinue(cgpa float64) bool {
	return cgpa >= r.threshold
}
