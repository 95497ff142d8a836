package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grading-engine/internal/models"
)

// StudentRepository reads the student attributes grading depends on.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID returns a student or sql.ErrNoRows.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, full_name, is_discontinued, discontinued_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}
