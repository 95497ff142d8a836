package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/grading-engine/internal/models"
)

// AssessmentRepository reads assessable items and student submissions.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs the repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListItemsByCourse returns the assignments and assessments of a course in
// creation order. Weights are read as text so malformed values survive to validation.
func (r *AssessmentRepository) ListItemsByCourse(ctx context.Context, courseID string) ([]models.AssessableItem, error) {
	const query = `SELECT id, course_id, kind, title, type, COALESCE(weight::text, '') AS weight, created_at
        FROM assessable_items WHERE course_id = $1 ORDER BY created_at, id`
	var items []models.AssessableItem
	if err := r.db.SelectContext(ctx, &items, query, courseID); err != nil {
		return nil, fmt.Errorf("list assessable items: %w", err)
	}
	return items, nil
}

// LatestSubmissions returns the most recent submission per item for a student, keyed by item id.
func (r *AssessmentRepository) LatestSubmissions(ctx context.Context, studentID string, itemIDs []string) (map[string]models.Submission, error) {
	result := make(map[string]models.Submission, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}
	const query = `SELECT DISTINCT ON (item_id) id, item_id, student_id, score, max_score, percentage, submitted_at
        FROM submissions WHERE student_id = $1 AND item_id = ANY($2)
        ORDER BY item_id, submitted_at DESC, id DESC`
	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, studentID, pq.Array(itemIDs)); err != nil {
		return nil, fmt.Errorf("latest submissions: %w", err)
	}
	for _, submission := range submissions {
		result[submission.ItemID] = submission
	}
	return result, nil
}
