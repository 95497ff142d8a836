package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grading-engine/internal/models"
)

// CourseResultRepository persists student_course_results, the audit record of graded courses.
type CourseResultRepository struct {
	db *sqlx.DB
}

// NewCourseResultRepository constructs the repository.
func NewCourseResultRepository(db *sqlx.DB) *CourseResultRepository {
	return &CourseResultRepository{db: db}
}

const upsertCourseResultQuery = `INSERT INTO student_course_results (id, enrollment_id, course_id, semester, final_mark, letter_grade, grade_point,
        grade_points_earned, credit_units, is_retake, was_capped, original_grade, capped_grade, calculated_at)
        VALUES (:id, :enrollment_id, :course_id, :semester, :final_mark, :letter_grade, :grade_point,
        :grade_points_earned, :credit_units, :is_retake, :was_capped, :original_grade, :capped_grade, :calculated_at)
        ON CONFLICT (enrollment_id, course_id, semester)
        DO UPDATE SET final_mark = EXCLUDED.final_mark, letter_grade = EXCLUDED.letter_grade, grade_point = EXCLUDED.grade_point,
        grade_points_earned = EXCLUDED.grade_points_earned, credit_units = EXCLUDED.credit_units, is_retake = EXCLUDED.is_retake,
        was_capped = EXCLUDED.was_capped, original_grade = EXCLUDED.original_grade, capped_grade = EXCLUDED.capped_grade,
        calculated_at = EXCLUDED.calculated_at
        RETURNING id`

// Upsert writes the result in one statement keyed by (enrollment, course, semester).
// A regrade overwrites the previous record and keeps its id.
func (r *CourseResultRepository) Upsert(ctx context.Context, result *models.StudentCourseResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CalculatedAt.IsZero() {
		result.CalculatedAt = time.Now().UTC()
	}
	rows, err := r.db.NamedQueryContext(ctx, upsertCourseResultQuery, result)
	if err != nil {
		return fmt.Errorf("upsert course result: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&result.ID); err != nil {
			return fmt.Errorf("scan course result id: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("upsert course result: %w", err)
	}
	return nil
}

// List returns results joined with their course, ordered by semester then course code.
func (r *CourseResultRepository) List(ctx context.Context, filter models.CourseResultFilter) ([]models.StudentCourseResult, error) {
	var conditions []string
	var args []interface{}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.EnrollmentID != "" {
		conditions = append(conditions, fmt.Sprintf("r.enrollment_id = $%d", len(args)+1))
		args = append(args, filter.EnrollmentID)
	}
	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("r.semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if len(conditions) == 0 {
		return nil, fmt.Errorf("list course results: a student, enrollment or semester filter is required")
	}
	query := `SELECT r.id, r.enrollment_id, r.course_id, r.semester, r.final_mark, r.letter_grade, r.grade_point,
        r.grade_points_earned, r.credit_units, r.is_retake, r.was_capped, r.original_grade, r.capped_grade, r.calculated_at,
        c.code AS course_code, c.title AS course_title
        FROM student_course_results r
        JOIN enrollments e ON e.id = r.enrollment_id
        JOIN courses c ON c.id = r.course_id
        WHERE ` + strings.Join(conditions, " AND ") + `
        ORDER BY r.semester, c.code`
	var results []models.StudentCourseResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("list course results: %w", err)
	}
	return results, nil
}
