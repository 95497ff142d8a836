package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, is_discontinued, discontinued_at FROM students WHERE id = $1")).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "is_discontinued", "discontinued_at"}).
			AddRow("stu-1", "Ada Obi", true, time.Now()))

	student, err := repo.FindByID(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.True(t, student.Discontinued)
	assert.NotNil(t, student.DiscontinuedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramLevelAndCourseRepositories(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM program_levels WHERE id = $1")).
		WithArgs("level-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "requires_cgpa_for_graduation"}).
			AddRow("level-1", "BSc", "degree", true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1")).
		WithArgs("course-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "title", "credit_units"}).
			AddRow("course-1", "CSC101", "Intro", 3.0))

	level, err := NewProgramLevelRepository(db).FindByID(context.Background(), "level-1")
	require.NoError(t, err)
	assert.True(t, level.RequiresCGPAForGraduation)

	course, err := NewCourseRepository(db).FindByID(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Equal(t, "CSC101", course.Code)
	assert.Equal(t, 3.0, course.CreditUnits)
	require.NoError(t, mock.ExpectationsWereMet())
}
