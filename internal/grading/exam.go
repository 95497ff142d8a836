package grading

import (
	"fmt"
	"strings"

	"github.com/noah-isme/grading-engine/internal/models"
)

// ExamType is the explicit type tag of an exam component.
const ExamType = "exam"

// examKeywords are matched as case-insensitive substrings of an item title.
var examKeywords = []string{"exam", "final exam", "test", "midterm", "final assessment"}

// FindExamComponent locates the exam component of a course. Titles are
// scanned for exam keywords first; the explicit type tag is a fallback scan.
// The first match wins in either pass.
func FindExamComponent(items []models.AssessableItem) (*models.AssessableItem, bool) {
	for i := range items {
		title := strings.ToLower(items[i].Title)
		for _, keyword := range examKeywords {
			if strings.Contains(title, keyword) {
				return &items[i], true
			}
		}
	}
	for i := range items {
		if strings.EqualFold(strings.TrimSpace(items[i].Type), ExamType) {
			return &items[i], true
		}
	}
	return nil, false
}

// ExamScore is the student's latest result on the exam component.
type ExamScore struct {
	ItemID     string
	Title      string
	Percentage float64
}

// ThresholdResult is the audited outcome of exam threshold enforcement.
type ThresholdResult struct {
	FinalGrade     float64  `json:"final_grade"`
	WasEnforced    bool     `json:"was_enforced"`
	ExamPercentage *float64 `json:"exam_percentage,omitempty"`
	OriginalGrade  *float64 `json:"original_grade,omitempty"`
	AuditReason    string   `json:"audit_reason"`
}

// ExamThreshold forces a failing grade when the exam score is below a minimum.
type ExamThreshold struct {
	minimum float64
}

// NewExamThreshold builds an enforcer; a non-positive minimum uses the default.
func NewExamThreshold(minimum float64) ExamThreshold {
	if minimum <= 0 {
		minimum = DefaultExamThreshold
	}
	return ExamThreshold{minimum: minimum}
}

// Minimum returns the configured threshold.
func (t ExamThreshold) Minimum() float64 {
	return t.minimum
}

// Audit reasons recorded when the threshold cannot be applied.
const (
	ReasonNoExamComponent  = "no exam component configured; threshold not enforced"
	ReasonNoExamSubmission = "no exam submission; threshold not enforced"
)

// PassThrough keeps the weighted grade and records why the threshold was skipped.
func (t ExamThreshold) PassThrough(weighted float64, reason string) ThresholdResult {
	return ThresholdResult{FinalGrade: weighted, AuditReason: reason}
}

// Enforce applies the threshold to an already weighted grade. A nil exam
// score passes the weighted grade through unchanged.
func (t ExamThreshold) Enforce(weighted float64, exam *ExamScore) ThresholdResult {
	if exam == nil {
		return t.PassThrough(weighted, ReasonNoExamSubmission)
	}
	percentage := Round2(exam.Percentage)
	result := ThresholdResult{FinalGrade: weighted, ExamPercentage: &percentage}
	if percentage < t.minimum {
		original := weighted
		result.FinalGrade = 0
		result.WasEnforced = true
		result.OriginalGrade = &original
		result.AuditReason = fmt.Sprintf("exam %q scored %.2f%%, below the %.2f%% minimum; final grade set to 0", exam.Title, percentage, t.minimum)
		return result
	}
	result.AuditReason = fmt.Sprintf("exam %q scored %.2f%%, meeting the %.2f%% minimum", exam.Title, percentage, t.minimum)
	return result
}
