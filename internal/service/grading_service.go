package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/grading"
	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

type courseResultStore interface {
	Upsert(ctx context.Context, result *models.StudentCourseResult) error
	List(ctx context.Context, filter models.CourseResultFilter) ([]models.StudentCourseResult, error)
}

type enrollmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type gradingTableProvider interface {
	Rules(ctx context.Context, programLevelID string) ([]models.GradingRule, error)
	Classifications(ctx context.Context, programLevelID string) ([]models.AcademicClassification, error)
}

// ProcessGradeRequest carries a final percentage mark to be graded and stored.
// CreditUnits and IsRetake fall back to the course and enrollment when omitted.
type ProcessGradeRequest struct {
	EnrollmentID   string   `json:"enrollment_id" validate:"required"`
	PercentageMark *float64 `json:"percentage_mark" validate:"required"`
	CreditUnits    *float64 `json:"credit_units" validate:"omitempty,gte=0"`
	IsRetake       *bool    `json:"is_retake"`
	Semester       string   `json:"semester" validate:"omitempty,max=32"`
}

// ProcessGradeResponse returns the stored result with the calculation that produced it.
type ProcessGradeResponse struct {
	Result      models.StudentCourseResult `json:"result"`
	Calculation grading.GradeResult        `json:"calculation"`
}

// GradeSummary is the GPA or CGPA of a student over a set of results.
type GradeSummary struct {
	StudentID        string  `json:"student_id"`
	Semester         string  `json:"semester,omitempty"`
	Value            float64 `json:"value"`
	TotalCreditUnits float64 `json:"total_credit_units"`
	TotalGradePoints float64 `json:"total_grade_points"`
	CourseCount      int     `json:"course_count"`
}

// GradingService grades courses and derives GPA, classification and standing.
type GradingService struct {
	results     courseResultStore
	enrollments enrollmentReader
	courses     courseReader
	students    studentReader
	levels      programLevelReader
	tables      gradingTableProvider
	policy      grading.Policy
	calculator  *grading.Calculator
	standing    grading.StandingResolver
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// GradingServiceDeps groups the collaborators of GradingService.
type GradingServiceDeps struct {
	Results     courseResultStore
	Enrollments enrollmentReader
	Courses     courseReader
	Students    studentReader
	Levels      programLevelReader
	Tables      gradingTableProvider
	Metrics     *MetricsService
	Validator   *validator.Validate
	Logger      *zap.Logger
}

// NewGradingService constructs GradingService.
func NewGradingService(deps GradingServiceDeps, policy grading.Policy) *GradingService {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	policy = policy.WithDefaults()
	return &GradingService{
		results:     deps.Results,
		enrollments: deps.Enrollments,
		courses:     deps.Courses,
		students:    deps.Students,
		levels:      deps.Levels,
		tables:      deps.Tables,
		policy:      policy,
		calculator:  grading.NewCalculator(policy.RetakeCap),
		standing:    grading.NewStandingResolver(policy.ContinuationCGPA),
		metrics:     deps.Metrics,
		validator:   deps.Validator,
		logger:      deps.Logger,
		now:         time.Now,
	}
}

// DefaultSemester labels the academic half a moment falls in: January to
// June is the first semester, July to December the second.
func DefaultSemester(now time.Time) string {
	year := now.Year()
	half := 1
	if now.Month() >= time.July {
		half = 2
	}
	return fmt.Sprintf("%d-%d-%d", year, year+1, half)
}

// ProcessStudentGrade grades a percentage mark and upserts the course result
// of the enrollment for the semester.
func (s *GradingService) ProcessStudentGrade(ctx context.Context, req ProcessGradeRequest) (*ProcessGradeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	enrollment, err := s.enrollment(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	creditUnits := 0.0
	if req.CreditUnits != nil {
		creditUnits = *req.CreditUnits
	} else {
		course, err := s.courses.FindByID(ctx, enrollment.CourseID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
		}
		creditUnits = course.CreditUnits
	}
	isRetake := enrollment.IsRetake
	if req.IsRetake != nil {
		isRetake = *req.IsRetake
	}
	semester := strings.TrimSpace(req.Semester)
	if semester == "" {
		semester = DefaultSemester(s.now())
	}

	rules, err := s.tables.Rules(ctx, enrollment.ProgramLevelID)
	if err != nil {
		return nil, err
	}
	calc := s.calculator.Calculate(*req.PercentageMark, rules, creditUnits, isRetake)

	point := calc.GradePoint
	result := &models.StudentCourseResult{
		EnrollmentID:      enrollment.ID,
		CourseID:          enrollment.CourseID,
		Semester:          semester,
		FinalMark:         calc.FinalMark,
		LetterGrade:       calc.LetterGrade,
		GradePoint:        &point,
		GradePointsEarned: calc.GradePointsEarned,
		CreditUnits:       calc.CreditUnits,
		IsRetake:          calc.IsRetake,
		WasCapped:         calc.WasCapped,
		OriginalGrade:     calc.OriginalGrade,
		CappedGrade:       calc.CappedGrade,
		CalculatedAt:      s.now().UTC(),
	}
	if err := s.results.Upsert(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store course result")
	}
	if s.metrics != nil {
		s.metrics.RecordGradeProcessed(calc.IsRetake, calc.WasCapped)
	}
	s.logger.Info("course result stored",
		zap.String("enrollment_id", enrollment.ID),
		zap.String("course_id", enrollment.CourseID),
		zap.String("semester", semester),
		zap.String("letter_grade", calc.LetterGrade),
		zap.Bool("was_capped", calc.WasCapped),
	)
	return &ProcessGradeResponse{Result: *result, Calculation: calc}, nil
}

// CalculateSemesterGPA derives the GPA of a student for one semester.
func (s *GradingService) CalculateSemesterGPA(ctx context.Context, studentID, semester string) (*GradeSummary, error) {
	semester = strings.TrimSpace(semester)
	if semester == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester is required")
	}
	results, err := s.studentResults(ctx, studentID)
	if err != nil {
		return nil, err
	}
	scoped := grading.FilterSemester(results, semester)
	summary := summarise(studentID, scoped, grading.GPA(scoped))
	summary.Semester = semester
	return summary, nil
}

// CalculateCGPA derives the cumulative GPA of a student across every semester.
func (s *GradingService) CalculateCGPA(ctx context.Context, studentID string) (*GradeSummary, error) {
	results, err := s.studentResults(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return summarise(studentID, results, grading.CGPA(results)), nil
}

// GetAcademicClassification resolves the honours classification of a student
// under a program level. Configured bands win over the built-in tables.
func (s *GradingService) GetAcademicClassification(ctx context.Context, studentID, programLevelID string) (*models.ClassificationResult, error) {
	summary, err := s.CalculateCGPA(ctx, studentID)
	if err != nil {
		return nil, err
	}
	level, err := s.level(ctx, programLevelID)
	if err != nil {
		return nil, err
	}
	result, err := s.classify(ctx, summary.Value, level)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAcademicStanding resolves the standing of a student from CGPA and registry status.
func (s *GradingService) GetAcademicStanding(ctx context.Context, studentID string) (*models.StandingResult, error) {
	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	summary, err := s.CalculateCGPA(ctx, studentID)
	if err != nil {
		return nil, err
	}
	standing := s.standing.Resolve(summary.Value, student.Discontinued)
	return &standing, nil
}

// GetCompleteGradeReport bundles CGPA, classification, standing and the two eligibility flags.
func (s *GradingService) GetCompleteGradeReport(ctx context.Context, studentID, programLevelID string) (*models.CompleteGradeReport, error) {
	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	level, err := s.level(ctx, programLevelID)
	if err != nil {
		return nil, err
	}
	summary, err := s.CalculateCGPA(ctx, studentID)
	if err != nil {
		return nil, err
	}
	cgpa := summary.Value
	classification, err := s.classify(ctx, cgpa, level)
	if err != nil {
		return nil, err
	}
	meetsGraduation := !level.RequiresCGPAForGraduation || cgpa >= s.policy.GraduationCGPA
	return &models.CompleteGradeReport{
		StudentID:               studentID,
		CGPA:                    cgpa,
		Classification:          classification,
		Standing:                s.standing.Resolve(cgpa, student.Discontinued),
		IsEligibleForGraduation: !student.Discontinued && meetsGraduation,
		CanContinueStudies:      s.standing.IsEligibleToContinue(cgpa),
	}, nil
}

// GetEnrollmentGradeReport lists one semester of results of an enrollment with its GPA.
func (s *GradingService) GetEnrollmentGradeReport(ctx context.Context, enrollmentID, semester string) (*models.EnrollmentGradeReport, error) {
	enrollment, err := s.enrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	semester = strings.TrimSpace(semester)
	if semester == "" {
		semester = DefaultSemester(s.now())
	}
	results, err := s.results.List(ctx, models.CourseResultFilter{EnrollmentID: enrollment.ID, Semester: semester})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course results")
	}
	if results == nil {
		results = []models.StudentCourseResult{}
	}
	totals := grading.Sum(results)
	return &models.EnrollmentGradeReport{
		Enrollment:       *enrollment,
		Semester:         semester,
		GPA:              grading.GPA(results),
		CourseResults:    results,
		TotalCreditUnits: totals.CreditUnits,
		TotalGradePoints: totals.GradePoints,
	}, nil
}

func (s *GradingService) classify(ctx context.Context, cgpa float64, level *models.ProgramLevel) (models.ClassificationResult, error) {
	bands, err := s.tables.Classifications(ctx, level.ID)
	if err != nil {
		return models.ClassificationResult{}, err
	}
	if len(bands) > 0 {
		return grading.ResolveConfiguredClassification(cgpa, bands), nil
	}
	return grading.ResolveClassification(cgpa, string(level.Category)), nil
}

func (s *GradingService) studentResults(ctx context.Context, studentID string) ([]models.StudentCourseResult, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	results, err := s.results.List(ctx, models.CourseResultFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course results")
	}
	return results, nil
}

func (s *GradingService) enrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return enrollment, nil
}

func (s *GradingService) student(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

func (s *GradingService) level(ctx context.Context, id string) (*models.ProgramLevel, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "program level id is required")
	}
	level, err := s.levels.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program level not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program level")
	}
	return level, nil
}

func summarise(studentID string, results []models.StudentCourseResult, value float64) *GradeSummary {
	totals := grading.Sum(results)
	return &GradeSummary{
		StudentID:        studentID,
		Value:            value,
		TotalCreditUnits: totals.CreditUnits,
		TotalGradePoints: totals.GradePoints,
		CourseCount:      totals.CountedCount,
	}
}
