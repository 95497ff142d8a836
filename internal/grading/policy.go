// Package grading holds the pure grade computation rules: boundary resolution,
// retake capping, GPA aggregation, classification, standing, assessment weight
// validation and exam threshold enforcement. Nothing in this package touches
// storage or keeps mutable state, so every function is safe for concurrent use.
package grading

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// DefaultExamThreshold is the minimum exam percentage required to keep a weighted grade.
	DefaultExamThreshold = 40.0
	// DefaultRetakeCapPoints is the highest grade point a retaken course may award.
	DefaultRetakeCapPoints = 3.0
	// DefaultRetakeCapGrade is the letter grade awarded when a retake is capped.
	DefaultRetakeCapGrade = "C"
	// DefaultExpectedWeightTotal is the total that assessment weights of a course must reach.
	DefaultExpectedWeightTotal = 100.0
	// DefaultContinuationCGPA separates probation from normal standing.
	DefaultContinuationCGPA = 2.0
	// DefaultGraduationCGPA is the minimum CGPA for programs that gate graduation on it.
	DefaultGraduationCGPA = 2.0

	// MaxGradePoint bounds every GPA and CGPA.
	MaxGradePoint = 5.0
)

// Policy groups the institutional constants the engine applies.
type Policy struct {
	ExamThreshold       float64
	RetakeCap           RetakeCap
	ExpectedWeightTotal float64
	ContinuationCGPA    float64
	GraduationCGPA      float64

	// RequireExamComponent rejects final grade computation for courses
	// without a detectable exam component instead of passing through.
	RequireExamComponent bool
}

// DefaultPolicy returns the documented institutional defaults.
func DefaultPolicy() Policy {
	return Policy{
		ExamThreshold:       DefaultExamThreshold,
		RetakeCap:           RetakeCap{Points: DefaultRetakeCapPoints, Grade: DefaultRetakeCapGrade},
		ExpectedWeightTotal: DefaultExpectedWeightTotal,
		ContinuationCGPA:    DefaultContinuationCGPA,
		GraduationCGPA:      DefaultGraduationCGPA,
	}
}

// WithDefaults fills zero fields with defaults.
func (p Policy) WithDefaults() Policy {
	def := DefaultPolicy()
	if p.ExamThreshold <= 0 {
		p.ExamThreshold = def.ExamThreshold
	}
	if p.RetakeCap.Points <= 0 {
		p.RetakeCap.Points = def.RetakeCap.Points
	}
	if p.RetakeCap.Grade == "" {
		p.RetakeCap.Grade = def.RetakeCap.Grade
	}
	if p.ExpectedWeightTotal <= 0 {
		p.ExpectedWeightTotal = def.ExpectedWeightTotal
	}
	if p.ContinuationCGPA <= 0 {
		p.ContinuationCGPA = def.ContinuationCGPA
	}
	if p.GraduationCGPA <= 0 {
		p.GraduationCGPA = def.GraduationCGPA
	}
	return p
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Clamp bounds v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPercentage bounds a mark to [0, 100].
func ClampPercentage(v float64) float64 {
	return Clamp(v, 0, 100)
}
