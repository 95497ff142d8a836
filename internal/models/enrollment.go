package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
)

// Enrollment links a student to a course under a program level.
type Enrollment struct {
	ID             string           `db:"id" json:"id"`
	StudentID      string           `db:"student_id" json:"student_id"`
	CourseID       string           `db:"course_id" json:"course_id"`
	ProgramLevelID string           `db:"program_level_id" json:"program_level_id"`
	StudentNumber  *string          `db:"student_number" json:"student_number,omitempty"`
	EnrollmentYear int              `db:"enrollment_year" json:"enrollment_year"`
	IsRetake       bool             `db:"is_retake" json:"is_retake"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	EnrolledAt     time.Time        `db:"enrolled_at" json:"enrolled_at"`
}

// Course is the subset of course data the engine reads.
type Course struct {
	ID          string  `db:"id" json:"id"`
	Code        string  `db:"code" json:"code"`
	Title       string  `db:"title" json:"title"`
	CreditUnits float64 `db:"credit_units" json:"credit_units"`
}

// ProgramCategory groups program levels for classification.
type ProgramCategory string

const (
	ProgramCategoryDegree      ProgramCategory = "degree"
	ProgramCategoryDiploma     ProgramCategory = "diploma"
	ProgramCategoryCertificate ProgramCategory = "certificate"
)

// ProgramLevel is an academic program category with its graduation policy.
type ProgramLevel struct {
	ID                        string          `db:"id" json:"id"`
	Name                      string          `db:"name" json:"name"`
	Category                  ProgramCategory `db:"category" json:"category"`
	RequiresCGPAForGraduation bool            `db:"requires_cgpa_for_graduation" json:"requires_cgpa_for_graduation"`
}
