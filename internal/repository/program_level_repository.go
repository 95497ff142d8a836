package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grading-engine/internal/models"
)

// ProgramLevelRepository reads program levels.
type ProgramLevelRepository struct {
	db *sqlx.DB
}

// NewProgramLevelRepository constructs the repository.
func NewProgramLevelRepository(db *sqlx.DB) *ProgramLevelRepository {
	return &ProgramLevelRepository{db: db}
}

// FindByID returns a program level or sql.ErrNoRows.
func (r *ProgramLevelRepository) FindByID(ctx context.Context, id string) (*models.ProgramLevel, error) {
	const query = `SELECT id, name, LOWER(category) AS category, requires_cgpa_for_graduation FROM program_levels WHERE id = $1`
	var level models.ProgramLevel
	if err := r.db.GetContext(ctx, &level, query, id); err != nil {
		return nil, err
	}
	return &level, nil
}
