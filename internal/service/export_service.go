package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/grading-engine/internal/grading"
	"github.com/noah-isme/grading-engine/internal/models"
	appErrors "github.com/noah-isme/grading-engine/pkg/errors"
	"github.com/noah-isme/grading-engine/pkg/export"
)

type transcriptSource interface {
	List(ctx context.Context, filter models.CourseResultFilter) ([]models.StudentCourseResult, error)
}

// ExportResult is a rendered document ready to be streamed.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders academic transcripts.
type ExportService struct {
	results  transcriptSource
	students studentReader
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(results transcriptSource, students studentReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{results: results, students: students, logger: logger, now: time.Now}
}

var transcriptHeaders = []string{"Semester", "Code", "Course", "Mark", "Grade", "Point", "Units", "Earned"}

// Transcript renders every course result of a student with the GPA of each
// semester and the CGPA.
func (s *ExportService) Transcript(ctx context.Context, studentID, format string) (*ExportResult, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	results, err := s.results.List(ctx, models.CourseResultFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course results")
	}

	doc := buildTranscript(student, results, s.now().UTC())
	payload, err := export.Render(doc, f)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	s.logger.Debug("transcript rendered", zap.String("student_id", studentID), zap.String("format", string(f)), zap.Int("results", len(results)))
	return &ExportResult{
		Filename:    fmt.Sprintf("transcript_%s_%s.%s", sanitizeFilename(studentID), s.now().UTC().Format("20060102"), f),
		ContentType: f.ContentType(),
		Payload:     payload,
	}, nil
}

func buildTranscript(student *models.Student, results []models.StudentCourseResult, generated time.Time) export.Document {
	doc := export.Document{
		Title: "Academic Transcript",
		Preamble: []string{
			fmt.Sprintf("Student: %s (%s)", student.FullName, student.ID),
			"Generated: " + generated.Format("2006-01-02 15:04 MST"),
		},
		Headers: transcriptHeaders,
		Rows:    make([][]string, 0, len(results)),
	}

	semesters := make([]string, 0)
	seen := make(map[string]struct{})
	for _, result := range results {
		point := "-"
		if result.GradePoint != nil {
			point = fmt.Sprintf("%.2f", *result.GradePoint)
		}
		doc.Rows = append(doc.Rows, []string{
			result.Semester,
			result.CourseCode,
			result.CourseTitle,
			fmt.Sprintf("%.2f", result.FinalMark),
			result.LetterGrade,
			point,
			fmt.Sprintf("%g", result.CreditUnits),
			fmt.Sprintf("%.2f", result.GradePointsEarned),
		})
		if _, ok := seen[result.Semester]; !ok {
			seen[result.Semester] = struct{}{}
			semesters = append(semesters, result.Semester)
		}
	}

	for _, semester := range semesters {
		doc.Summary = append(doc.Summary, [2]string{"GPA " + semester, fmt.Sprintf("%.2f", grading.SemesterGPA(results, semester))})
	}
	totals := grading.Sum(results)
	doc.Summary = append(doc.Summary,
		[2]string{"Total credit units", fmt.Sprintf("%g", totals.CreditUnits)},
		[2]string{"CGPA", fmt.Sprintf("%.2f", grading.CGPA(results))},
	)
	return doc
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
