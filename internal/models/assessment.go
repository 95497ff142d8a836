package models

import (
	"encoding/json"
	"time"
)

// AssessableKind distinguishes the concrete variants of an assessable item.
type AssessableKind string

const (
	AssessableAssignment AssessableKind = "assignment"
	AssessableAssessment AssessableKind = "assessment"
)

// AssessableItem is any graded course component carrying a weight.
// Weight is kept raw so malformed authoring input can be reported rather than rejected at scan time.
type AssessableItem struct {
	ID        string         `db:"id" json:"id"`
	CourseID  string         `db:"course_id" json:"course_id"`
	Kind      AssessableKind `db:"kind" json:"kind"`
	Title     string         `db:"title" json:"title"`
	Type      string         `db:"type" json:"type"`
	Weight    json.Number    `db:"weight" json:"weight"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Submission is a student's latest scored attempt against an assessable item.
type Submission struct {
	ID          string    `db:"id" json:"id"`
	ItemID      string    `db:"item_id" json:"item_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	Score       *float64  `db:"score" json:"score,omitempty"`
	MaxScore    *float64  `db:"max_score" json:"max_score,omitempty"`
	Percentage  *float64  `db:"percentage" json:"percentage,omitempty"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// ScorePercentage returns the percentage of a submission, deriving it from the raw score when absent.
func (s Submission) ScorePercentage() (float64, bool) {
	if s.Percentage != nil {
		return *s.Percentage, true
	}
	if s.Score != nil && s.MaxScore != nil && *s.MaxScore > 0 {
		return *s.Score * 100 / *s.MaxScore, true
	}
	return 0, false
}
