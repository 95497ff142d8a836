package models

import "time"

// GradingRule maps a percentage band to a letter grade for a program level.
type GradingRule struct {
	ID             string    `db:"id" json:"id"`
	ProgramLevelID string    `db:"program_level_id" json:"program_level_id"`
	MinPercentage  float64   `db:"min_percentage" json:"min_percentage" validate:"gte=0,lte=100"`
	MaxPercentage  float64   `db:"max_percentage" json:"max_percentage" validate:"gte=0,lte=100"`
	LetterGrade    string    `db:"letter_grade" json:"letter_grade" validate:"required,max=4"`
	GradePoint     float64   `db:"grade_point" json:"grade_point" validate:"gte=0,lte=5"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// AcademicClassification is a configured honours band for a program level.
type AcademicClassification struct {
	ID                  string    `db:"id" json:"id"`
	ProgramLevelID      string    `db:"program_level_id" json:"program_level_id"`
	MinCGPA             float64   `db:"min_cgpa" json:"min_cgpa" validate:"gte=0,lte=5"`
	MaxCGPA             float64   `db:"max_cgpa" json:"max_cgpa" validate:"gte=0,lte=5"`
	ClassificationLabel string    `db:"classification_label" json:"classification_label" validate:"required"`
	ClassLabel          string    `db:"class_label" json:"class_label"`
	Order               int       `db:"display_order" json:"order"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// StudentCourseResult is the persisted audit record of one graded course.
type StudentCourseResult struct {
	ID                string    `db:"id" json:"id"`
	EnrollmentID      string    `db:"enrollment_id" json:"enrollment_id"`
	CourseID          string    `db:"course_id" json:"course_id"`
	Semester          string    `db:"semester" json:"semester"`
	FinalMark         float64   `db:"final_mark" json:"final_mark"`
	LetterGrade       string    `db:"letter_grade" json:"letter_grade"`
	GradePoint        *float64  `db:"grade_point" json:"grade_point"`
	GradePointsEarned float64   `db:"grade_points_earned" json:"grade_points_earned"`
	CreditUnits       float64   `db:"credit_units" json:"credit_units"`
	IsRetake          bool      `db:"is_retake" json:"is_retake"`
	WasCapped         bool      `db:"was_capped" json:"was_capped"`
	OriginalGrade     *string   `db:"original_grade" json:"original_grade,omitempty"`
	CappedGrade       *string   `db:"capped_grade" json:"capped_grade,omitempty"`
	CalculatedAt      time.Time `db:"calculated_at" json:"calculated_at"`
	CourseCode        string    `db:"course_code" json:"course_code,omitempty"`
	CourseTitle       string    `db:"course_title" json:"course_title,omitempty"`
}

// CourseResultFilter scopes result queries.
type CourseResultFilter struct {
	StudentID    string
	EnrollmentID string
	Semester     string
}

// AcademicStanding is the standing label a student evaluates to.
type AcademicStanding string

const (
	StandingNormal       AcademicStanding = "normal"
	StandingProbation    AcademicStanding = "probation"
	StandingDiscontinued AcademicStanding = "discontinued"
)

// ClassificationResult is the resolved honours classification for a CGPA.
type ClassificationResult struct {
	Classification *string `json:"classification"`
	Class          *string `json:"class"`
	CGPA           float64 `json:"cgpa"`
}

// StandingResult describes the academic standing of a student.
type StandingResult struct {
	Standing    AcademicStanding `json:"standing"`
	Status      string           `json:"status"`
	Message     string           `json:"message"`
	OnProbation bool             `json:"on_probation"`
	CGPA        float64          `json:"cgpa"`
}

// CompleteGradeReport bundles the cumulative view of a student.
type CompleteGradeReport struct {
	StudentID               string               `json:"student_id"`
	CGPA                    float64              `json:"cgpa"`
	Classification          ClassificationResult `json:"classification"`
	Standing                StandingResult       `json:"standing"`
	IsEligibleForGraduation bool                 `json:"is_eligible_for_graduation"`
	CanContinueStudies      bool                 `json:"can_continue_studies"`
}

// EnrollmentGradeReport bundles one semester of results for an enrollment.
type EnrollmentGradeReport struct {
	Enrollment       Enrollment            `json:"enrollment"`
	Semester         string                `json:"semester"`
	GPA              float64               `json:"gpa"`
	CourseResults    []StudentCourseResult `json:"course_results"`
	TotalCreditUnits float64               `json:"total_credit_units"`
	TotalGradePoints float64               `json:"total_grade_points"`
}
