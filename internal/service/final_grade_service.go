package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/grading"
	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
)

type assessmentReader interface {
	ListItemsByCourse(ctx context.Context, courseID string) ([]models.AssessableItem, error)
	LatestSubmissions(ctx context.Context, studentID string, itemIDs []string) (map[string]models.Submission, error)
}

// FinalGradeRequest identifies the student whose course grade is computed.
type FinalGradeRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// FinalGradeResult is the weighted course grade after exam threshold enforcement.
type FinalGradeResult struct {
	StudentID     string                  `json:"student_id"`
	CourseID      string                  `json:"course_id"`
	FinalGrade    float64                 `json:"final_grade"`
	WeightedGrade float64                 `json:"weighted_grade"`
	CountedItems  int                     `json:"counted_items"`
	CountedWeight float64                 `json:"counted_weight"`
	ExamItemID    *string                 `json:"exam_item_id,omitempty"`
	Threshold     grading.ThresholdResult `json:"exam_threshold"`
}

// Graded reports whether at least one weighted submission fed the grade.
func (r *FinalGradeResult) Graded() bool {
	return r != nil && r.CountedItems > 0 && r.CountedWeight > 0
}

// FinalGradeService computes course grades from assessment submissions.
type FinalGradeService struct {
	assessments assessmentReader
	policy      grading.Policy
	enforcer    grading.ExamThreshold
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewFinalGradeService constructs FinalGradeService.
func NewFinalGradeService(assessments assessmentReader, policy grading.Policy, metrics *MetricsService, logger *zap.Logger) *FinalGradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy = policy.WithDefaults()
	return &FinalGradeService{
		assessments: assessments,
		policy:      policy,
		enforcer:    grading.NewExamThreshold(policy.ExamThreshold),
		metrics:     metrics,
		logger:      logger,
	}
}

// Calculate computes the final grade of a student in a course. Courses whose
// weights do not validate are rejected before any submission is read.
func (s *FinalGradeService) Calculate(ctx context.Context, studentID, courseID string) (*FinalGradeResult, error) {
	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(courseID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and course id are required")
	}
	items, err := s.items(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := grading.AssertWeights(items, s.policy.ExpectedWeightTotal); err != nil {
		s.metrics.RecordWeightRejection()
		s.logger.Warn("final grade rejected: invalid weights", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	exam, hasExam := grading.FindExamComponent(items)
	if !hasExam && s.policy.RequireExamComponent {
		return nil, appErrors.Clone(appErrors.ErrExamComponentMissing, "course "+courseID+" has no exam component")
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	latest, err := s.assessments.LatestSubmissions(ctx, studentID, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load submissions")
	}

	outcome := grading.WeightedAverage(items, latest)
	result := &FinalGradeResult{
		StudentID:     studentID,
		CourseID:      courseID,
		WeightedGrade: outcome.Average,
		CountedItems:  outcome.CountedItems,
		CountedWeight: outcome.CountedWeight,
	}
	if hasExam {
		id := exam.ID
		result.ExamItemID = &id
	}
	if outcome.Empty() {
		result.WeightedGrade = 0
		result.Threshold = grading.ThresholdResult{AuditReason: "no weighted submissions; final grade is 0"}
		return result, nil
	}
	if !hasExam {
		result.Threshold = s.enforcer.PassThrough(outcome.Average, grading.ReasonNoExamComponent)
		result.FinalGrade = result.Threshold.FinalGrade
		return result, nil
	}

	var score *grading.ExamScore
	if submission, ok := latest[exam.ID]; ok {
		if percentage, ok := submission.ScorePercentage(); ok {
			score = &grading.ExamScore{ItemID: exam.ID, Title: exam.Title, Percentage: percentage}
		}
	}
	result.Threshold = s.enforcer.Enforce(outcome.Average, score)
	result.FinalGrade = result.Threshold.FinalGrade
	if score != nil {
		s.metrics.RecordExamThreshold(result.Threshold.WasEnforced)
	}
	if result.Threshold.WasEnforced {
		s.logger.Info("exam threshold enforced",
			zap.String("student_id", studentID),
			zap.String("course_id", courseID),
			zap.Float64("weighted_grade", outcome.Average),
			zap.String("reason", result.Threshold.AuditReason),
		)
	}
	return result, nil
}

// ValidateWeights reports on the weights of a course without rejecting it.
func (s *FinalGradeService) ValidateWeights(ctx context.Context, courseID string) (*grading.WeightValidation, error) {
	items, err := s.items(ctx, courseID)
	if err != nil {
		return nil, err
	}
	report := grading.ValidateWeights(items, s.policy.ExpectedWeightTotal)
	return &report, nil
}

func (s *FinalGradeService) items(ctx context.Context, courseID string) ([]models.AssessableItem, error) {
	items, err := s.assessments.ListItemsByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessable items")
	}
	return items, nil
}
