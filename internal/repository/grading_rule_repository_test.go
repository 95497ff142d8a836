package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/grading-engine/internal/models"
)

func TestGradingRuleRepositoryListRules(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradingRuleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "program_level_id", "min_percentage", "max_percentage", "letter_grade", "grade_point", "created_at"}).
		AddRow("r1", "level-1", 70.0, 100.0, "A", 5.0, time.Now()).
		AddRow("r2", "level-1", 0.0, 69.99, "F", 0.0, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM grading_rules WHERE program_level_id = $1 ORDER BY min_percentage DESC")).
		WithArgs("level-1").
		WillReturnRows(rows)

	rules, err := repo.ListRules(context.Background(), "level-1")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "A", rules[0].LetterGrade)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGradingRuleRepositoryReplaceRules(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradingRuleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grading_rules WHERE program_level_id = $1")).
		WithArgs("level-1").
		WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grading_rules")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grading_rules")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rules := []models.GradingRule{
		{MinPercentage: 50, MaxPercentage: 100, LetterGrade: "P", GradePoint: 3},
		{MinPercentage: 0, MaxPercentage: 49.99, LetterGrade: "F", GradePoint: 0},
	}
	require.NoError(t, repo.ReplaceRules(context.Background(), "level-1", rules))
	for _, rule := range rules {
		assert.NotEmpty(t, rule.ID)
		assert.Equal(t, "level-1", rule.ProgramLevelID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGradingRuleRepositoryReplaceClassificationsRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradingRuleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM academic_classifications")).
		WithArgs("level-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO academic_classifications")).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	err := repo.ReplaceClassifications(context.Background(), "level-1", []models.AcademicClassification{
		{MinCGPA: 2, MaxCGPA: 5, ClassificationLabel: "Pass"},
	})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
