package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grading-engine/internal/models"
	"github.com/noah-isme/grading-engine/pkg/database"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `id, student_id, course_id, program_level_id, student_number, enrollment_year, is_retake, status, enrolled_at`

// FindByID returns an enrollment or sql.ErrNoRows.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindByStudentAndCourse returns the single enrollment of a student in a course or sql.ErrNoRows.
func (r *EnrollmentRepository) FindByStudentAndCourse(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 AND course_id = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, courseID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListActiveByCourse returns the active enrollments of a course.
func (r *EnrollmentRepository) ListActiveByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE course_id = $1 AND status = $2 ORDER BY id`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, courseID, models.EnrollmentStatusActive); err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}
	return enrollments, nil
}

type numberedEnrollment struct {
	ID            string         `db:"id"`
	StudentID     string         `db:"student_id"`
	StudentNumber sql.NullString `db:"student_number"`
}

// AllocateStudentNumber assigns the next student number of a (course, year)
// pair to the student's enrollment. Every enrollment row of the pair is
// locked FOR UPDATE before the existing numbers are read, so concurrent
// allocators for the same pair run one after another while other pairs are
// untouched. next receives the numbers already issued and returns the one to
// assign. A number the enrollment already holds is returned unchanged.
func (r *EnrollmentRepository) AllocateStudentNumber(ctx context.Context, courseID string, year int, studentID string, next func(existing []string) (string, error)) (string, error) {
	const lockQuery = `SELECT id, student_id, student_number FROM enrollments
        WHERE course_id = $1 AND enrollment_year = $2 ORDER BY id FOR UPDATE`
	const updateQuery = `UPDATE enrollments SET student_number = $1
        WHERE course_id = $2 AND student_id = $3 AND student_number IS NULL`

	var allocated string
	err := database.WithTx(ctx, r.db, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(tx *sqlx.Tx) error {
		var rows []numberedEnrollment
		if err := tx.SelectContext(ctx, &rows, lockQuery, courseID, year); err != nil {
			return fmt.Errorf("lock enrollments: %w", err)
		}
		existing := make([]string, 0, len(rows))
		found := false
		for _, row := range rows {
			if row.StudentID == studentID {
				found = true
				if row.StudentNumber.Valid && row.StudentNumber.String != "" {
					allocated = row.StudentNumber.String
					return nil
				}
			}
			if row.StudentNumber.Valid && row.StudentNumber.String != "" {
				existing = append(existing, row.StudentNumber.String)
			}
		}
		if !found {
			return sql.ErrNoRows
		}
		candidate, err := next(existing)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, updateQuery, candidate, courseID, studentID)
		if err != nil {
			return fmt.Errorf("assign student number: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("assign student number: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("assign student number: enrollment already numbered")
		}
		allocated = candidate
		return nil
	})
	if err != nil {
		return "", err
	}
	return allocated, nil
}
