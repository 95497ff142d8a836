package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/models"
)

func TestCourseResultRepositoryUpsertKeepsExistingID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseResultRepository(db)

	point := 3.0
	original, capped := "A", "C"
	result := &models.StudentCourseResult{
		EnrollmentID: "enr-1", CourseID: "course-1", Semester: "2025-2026-1",
		FinalMark: 95, LetterGrade: "C", GradePoint: &point, GradePointsEarned: 9, CreditUnits: 3,
		IsRetake: true, WasCapped: true, OriginalGrade: &original, CappedGrade: &capped,
	}

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (enrollment_id, course_id, semester)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("result-existing"))

	require.NoError(t, repo.Upsert(context.Background(), result))
	assert.Equal(t, "result-existing", result.ID)
	assert.False(t, result.CalculatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseResultRepositoryListByEnrollmentAndSemester(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseResultRepository(db)

	columns := []string{"id", "enrollment_id", "course_id", "semester", "final_mark", "letter_grade", "grade_point",
		"grade_points_earned", "credit_units", "is_retake", "was_capped", "original_grade", "capped_grade", "calculated_at",
		"course_code", "course_title"}
	rows := sqlmock.NewRows(columns).
		AddRow("r-1", "enr-1", "course-1", "2025-2026-1", 72.5, "B", 4.0, 12.0, 3.0, false, false, nil, nil, time.Now(), "CSC101", "Intro").
		AddRow("r-2", "enr-1", "course-2", "2025-2026-1", 0.0, "F", nil, 0.0, 2.0, false, false, nil, nil, time.Now(), "MTH101", "Algebra")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.enrollment_id = $1 AND r.semester = $2")).
		WithArgs("enr-1", "2025-2026-1").
		WillReturnRows(rows)

	results, err := repo.List(context.Background(), models.CourseResultFilter{EnrollmentID: "enr-1", Semester: "2025-2026-1"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NotNil(t, results[0].GradePoint)
	assert.Equal(t, 4.0, *results[0].GradePoint)
	assert.Nil(t, results[1].GradePoint)
	assert.Equal(t, "MTH101", results[1].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseResultRepositoryListRequiresFilter(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	_, err := NewCourseResultRepository(db).List(context.Background(), models.CourseResultFilter{})
	assert.Error(t, err)
}
