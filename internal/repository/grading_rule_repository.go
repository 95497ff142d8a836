package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/grading-engine/internal/models"
	"github.com/noah-isme/grading-engine/pkg/database"
)

// GradingRuleRepository persists boundary tables and classification bands per program level.
type GradingRuleRepository struct {
	db *sqlx.DB
}

// NewGradingRuleRepository constructs the repository.
func NewGradingRuleRepository(db *sqlx.DB) *GradingRuleRepository {
	return &GradingRuleRepository{db: db}
}

// ListRules returns the configured bands ordered by descending minimum.
func (r *GradingRuleRepository) ListRules(ctx context.Context, programLevelID string) ([]models.GradingRule, error) {
	const query = `SELECT id, program_level_id, min_percentage, max_percentage, letter_grade, grade_point, created_at
        FROM grading_rules WHERE program_level_id = $1 ORDER BY min_percentage DESC`
	var rules []models.GradingRule
	if err := r.db.SelectContext(ctx, &rules, query, programLevelID); err != nil {
		return nil, fmt.Errorf("list grading rules: %w", err)
	}
	return rules, nil
}

// ReplaceRules swaps the whole boundary table of a program level atomically.
func (r *GradingRuleRepository) ReplaceRules(ctx context.Context, programLevelID string, rules []models.GradingRule) error {
	const insert = `INSERT INTO grading_rules (id, program_level_id, min_percentage, max_percentage, letter_grade, grade_point, created_at)
        VALUES (:id, :program_level_id, :min_percentage, :max_percentage, :letter_grade, :grade_point, :created_at)`
	now := time.Now().UTC()
	return database.WithTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM grading_rules WHERE program_level_id = $1`, programLevelID); err != nil {
			return fmt.Errorf("clear grading rules: %w", err)
		}
		for i := range rules {
			rules[i].ProgramLevelID = programLevelID
			if rules[i].ID == "" {
				rules[i].ID = uuid.NewString()
			}
			if rules[i].CreatedAt.IsZero() {
				rules[i].CreatedAt = now
			}
			if _, err := tx.NamedExecContext(ctx, insert, rules[i]); err != nil {
				return fmt.Errorf("insert grading rule: %w", err)
			}
		}
		return nil
	})
}

// ListClassifications returns configured bands ordered by descending minimum CGPA.
func (r *GradingRuleRepository) ListClassifications(ctx context.Context, programLevelID string) ([]models.AcademicClassification, error) {
	const query = `SELECT id, program_level_id, min_cgpa, max_cgpa, classification_label, class_label, display_order, created_at
        FROM academic_classifications WHERE program_level_id = $1 ORDER BY min_cgpa DESC`
	var bands []models.AcademicClassification
	if err := r.db.SelectContext(ctx, &bands, query, programLevelID); err != nil {
		return nil, fmt.Errorf("list academic classifications: %w", err)
	}
	return bands, nil
}

// ReplaceClassifications swaps the classification bands of a program level atomically.
func (r *GradingRuleRepository) ReplaceClassifications(ctx context.Context, programLevelID string, bands []models.AcademicClassification) error {
	const insert = `INSERT INTO academic_classifications (id, program_level_id, min_cgpa, max_cgpa, classification_label, class_label, display_order, created_at)
        VALUES (:id, :program_level_id, :min_cgpa, :max_cgpa, :classification_label, :class_label, :display_order, :created_at)`
	now := time.Now().UTC()
	return database.WithTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM academic_classifications WHERE program_level_id = $1`, programLevelID); err != nil {
			return fmt.Errorf("clear academic classifications: %w", err)
		}
		for i := range bands {
			bands[i].ProgramLevelID = programLevelID
			if bands[i].ID == "" {
				bands[i].ID = uuid.NewString()
			}
			if bands[i].CreatedAt.IsZero() {
				bands[i].CreatedAt = now
			}
			if _, err := tx.NamedExecContext(ctx, insert, bands[i]); err != nil {
				return fmt.Errorf("insert academic classification: %w", err)
			}
		}
		return nil
	})
}
