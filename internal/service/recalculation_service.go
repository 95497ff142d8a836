package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
	"github.com/noah-isme/grading-engine/pkg/jobs"
)

// RecalculationJobType tags final grade recalculation jobs.
const RecalculationJobType = "final_grade.recalculate"

type activeEnrollmentLister interface {
	ListActiveByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type finalGradeCalculator interface {
	Calculate(ctx context.Context, studentID, courseID string) (*FinalGradeResult, error)
}

type gradeProcessor interface {
	ProcessStudentGrade(ctx context.Context, req ProcessGradeRequest) (*ProcessGradeResponse, error)
}

// RecalculationRequest selects the semester results are written under.
type RecalculationRequest struct {
	Semester string `json:"semester"`
}

// RecalculationPayload is the queued unit of work: one enrollment of a course.
type RecalculationPayload struct {
	EnrollmentID string `json:"enrollment_id"`
	StudentID    string `json:"student_id"`
	CourseID     string `json:"course_id"`
	Semester     string `json:"semester"`
}

// RecalculationBatch summarises the jobs queued for a course.
type RecalculationBatch struct {
	CourseID string   `json:"course_id"`
	Semester string   `json:"semester"`
	Queued   int      `json:"queued"`
	Failed   int      `json:"failed"`
	JobIDs   []string `json:"job_ids"`
}

// RecalculationOutcome is the result of recalculating one enrollment.
type RecalculationOutcome struct {
	FinalGrade *FinalGradeResult           `json:"final_grade"`
	Result     *models.StudentCourseResult `json:"result"`
	Skipped    bool                        `json:"skipped"`
}

// RecalculationService recomputes and stores final grades of a course.
type RecalculationService struct {
	enrollments activeEnrollmentLister
	queue       jobDispatcher
	finalGrades finalGradeCalculator
	grader      gradeProcessor
	logger      *zap.Logger
	now         func() time.Time
}

// NewRecalculationService constructs RecalculationService.
func NewRecalculationService(enrollments activeEnrollmentLister, queue jobDispatcher, finalGrades finalGradeCalculator, grader gradeProcessor, logger *zap.Logger) *RecalculationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecalculationService{enrollments: enrollments, queue: queue, finalGrades: finalGrades, grader: grader, logger: logger, now: time.Now}
}

// AttachQueue sets the dispatcher after the queue, whose worker calls back
// into this service, has been built.
func (s *RecalculationService) AttachQueue(queue jobDispatcher) {
	s.queue = queue
}

// EnqueueCourse queues one recalculation job per active enrollment of a course.
func (s *RecalculationService) EnqueueCourse(ctx context.Context, courseID string, req RecalculationRequest) (*RecalculationBatch, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id is required")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrServiceUnavailable, "recalculation queue is not running")
	}
	semester := strings.TrimSpace(req.Semester)
	if semester == "" {
		semester = DefaultSemester(s.now())
	}
	enrollments, err := s.enrollments.ListActiveByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	batch := &RecalculationBatch{CourseID: courseID, Semester: semester, JobIDs: make([]string, 0, len(enrollments))}
	for _, enrollment := range enrollments {
		job := jobs.Job{
			ID:   uuid.NewString(),
			Type: RecalculationJobType,
			Payload: RecalculationPayload{
				EnrollmentID: enrollment.ID,
				StudentID:    enrollment.StudentID,
				CourseID:     courseID,
				Semester:     semester,
			},
		}
		if err := s.queue.Enqueue(job); err != nil {
			batch.Failed++
			s.logger.Warn("failed to enqueue recalculation", zap.String("enrollment_id", enrollment.ID), zap.Error(err))
			continue
		}
		batch.Queued++
		batch.JobIDs = append(batch.JobIDs, job.ID)
	}
	if batch.Queued == 0 && batch.Failed > 0 {
		return nil, appErrors.Clone(appErrors.ErrServiceUnavailable, "recalculation queue rejected every job")
	}
	s.logger.Info("course recalculation queued",
		zap.String("course_id", courseID),
		zap.String("semester", semester),
		zap.Int("queued", batch.Queued),
		zap.Int("failed", batch.Failed),
	)
	return batch, nil
}

// RecalculateEnrollment computes the final grade of one enrollment and stores
// the graded result. Credit units and the retake flag come from the course and
// enrollment. Enrollments without weighted submissions are left untouched.
func (s *RecalculationService) RecalculateEnrollment(ctx context.Context, payload RecalculationPayload) (*RecalculationOutcome, error) {
	final, err := s.finalGrades.Calculate(ctx, payload.StudentID, payload.CourseID)
	if err != nil {
		return nil, err
	}
	if !final.Graded() {
		s.logger.Debug("recalculation skipped: no weighted submissions",
			zap.String("enrollment_id", payload.EnrollmentID),
			zap.String("course_id", payload.CourseID),
		)
		return &RecalculationOutcome{FinalGrade: final, Skipped: true}, nil
	}
	mark := final.FinalGrade
	stored, err := s.grader.ProcessStudentGrade(ctx, ProcessGradeRequest{
		EnrollmentID:   payload.EnrollmentID,
		PercentageMark: &mark,
		Semester:       payload.Semester,
	})
	if err != nil {
		return nil, err
	}
	return &RecalculationOutcome{FinalGrade: final, Result: &stored.Result}, nil
}

// RecalculationWorker bridges queue jobs to RecalculationService.
type RecalculationWorker struct {
	service *RecalculationService
	logger  *zap.Logger
}

// NewRecalculationWorker constructs a worker.
func NewRecalculationWorker(service *RecalculationService, logger *zap.Logger) *RecalculationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecalculationWorker{service: service, logger: logger}
}

// Handle processes a queue job. Failures a retry cannot fix are logged and
// acknowledged; everything else is returned so the queue retries it.
func (w *RecalculationWorker) Handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(RecalculationPayload)
	if !ok {
		w.logger.Error("unexpected recalculation payload", zap.String("job_id", job.ID), zap.String("type", fmt.Sprintf("%T", job.Payload)))
		return nil
	}
	outcome, err := w.service.RecalculateEnrollment(ctx, payload)
	if err != nil {
		if isPermanent(err) {
			w.logger.Warn("recalculation skipped",
				zap.String("job_id", job.ID),
				zap.String("enrollment_id", payload.EnrollmentID),
				zap.Error(err),
			)
			return nil
		}
		return err
	}
	if outcome.Skipped {
		return nil
	}
	w.logger.Debug("recalculation stored",
		zap.String("job_id", job.ID),
		zap.String("enrollment_id", payload.EnrollmentID),
		zap.String("letter_grade", outcome.Result.LetterGrade),
	)
	return nil
}

func isPermanent(err error) bool {
	switch {
	case errors.Is(err, appErrors.ErrInvalidWeights),
		errors.Is(err, appErrors.ErrExamComponentMissing),
		errors.Is(err, appErrors.ErrValidation),
		errors.Is(err, appErrors.ErrNotFound),
		errors.Is(err, sql.ErrNoRows):
		return true
	}
	return false
}

// JobObserver feeds queue attempt outcomes into metrics.
func JobObserver(metrics *MetricsService) jobs.Observer {
	return func(queue string, _ jobs.Job, outcome jobs.Outcome) {
		metrics.RecordJobOutcome(queue, string(outcome))
	}
}
