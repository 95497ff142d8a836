package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

type studentNumberStore interface {
	FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	AllocateStudentNumber(ctx context.Context, courseID string, year int, studentID string, next func(existing []string) (string, error)) (string, error)
}

// StudentNumberRequest identifies the enrollment to number.
type StudentNumberRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

// StudentNumberResult reports the number held by an enrollment.
type StudentNumberResult struct {
	StudentID     string `json:"student_id"`
	CourseID      string `json:"course_id"`
	StudentNumber string `json:"student_number"`
	Allocated     bool   `json:"allocated"`
}

// Allocation outcomes recorded in metrics.
const (
	allocationIssued   = "issued"
	allocationExisting = "existing"
	allocationFailed   = "failed"
)

// StudentNumberService issues per course, per year student numbers.
type StudentNumberService struct {
	enrollments studentNumberStore
	courses     courseReader
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentNumberService constructs StudentNumberService.
func NewStudentNumberService(enrollments studentNumberStore, courses courseReader, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StudentNumberService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentNumberService{enrollments: enrollments, courses: courses, metrics: metrics, validator: validate, logger: logger}
}

// StudentNumberPrefix is the part of a student number shared by a course and year.
func StudentNumberPrefix(courseCode string, year int) string {
	return fmt.Sprintf("%s-S-%d-", strings.ToUpper(strings.TrimSpace(courseCode)), year)
}

// NextStudentNumber returns the number following the highest suffix issued
// under prefix. Numbers with another prefix or an unparsable suffix are ignored.
func NextStudentNumber(prefix string, existing []string) string {
	highest := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
		if err != nil || seq <= 0 {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// GenerateStudentNumber assigns the next number of the course and enrollment
// year to the student's enrollment. An enrollment that already holds a number
// keeps it.
func (s *StudentNumberService) GenerateStudentNumber(ctx context.Context, req StudentNumberRequest) (*StudentNumberResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	enrollment, err := s.enrollments.FindByStudentAndCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	result := &StudentNumberResult{StudentID: req.StudentID, CourseID: req.CourseID}
	if enrollment.StudentNumber != nil && *enrollment.StudentNumber != "" {
		s.metrics.RecordStudentNumberAllocation(allocationExisting)
		result.StudentNumber = *enrollment.StudentNumber
		return result, nil
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	year := enrollment.EnrollmentYear
	if year <= 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "enrollment has no enrollment year")
	}
	prefix := StudentNumberPrefix(course.Code, year)

	issued := ""
	number, err := s.enrollments.AllocateStudentNumber(ctx, req.CourseID, year, req.StudentID, func(existing []string) (string, error) {
		issued = NextStudentNumber(prefix, existing)
		return issued, nil
	})
	if err != nil {
		s.metrics.RecordStudentNumberAllocation(allocationFailed)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		s.logger.Error("student number allocation failed",
			zap.String("student_id", req.StudentID),
			zap.String("course_id", req.CourseID),
			zap.Int("year", year),
			zap.Bool("contention", isLockContention(err)),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrStudentNumberAllocation.Code, appErrors.ErrStudentNumberAllocation.Status, allocationMessage(err))
	}

	result.StudentNumber = number
	result.Allocated = number == issued
	if result.Allocated {
		s.metrics.RecordStudentNumberAllocation(allocationIssued)
		s.logger.Info("student number issued", zap.String("student_id", req.StudentID), zap.String("student_number", number))
	} else {
		s.metrics.RecordStudentNumberAllocation(allocationExisting)
	}
	return result, nil
}

// isLockContention matches serialization failures, deadlocks and lock timeouts.
func isLockContention(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}

func allocationMessage(err error) string {
	if isLockContention(err) {
		return "student number allocation contended; retry the request"
	}
	return appErrors.ErrStudentNumberAllocation.Message
}
