package database

import (
	"context"
	"fmt"

	"github.com/benvon/taskplanet-seed/internal/models"
)

// TaskTagWeightRepository handles task_tag_weight database operations
type TaskTagWeightRepository struct {
	db *DB
}

// NewTaskTagWeightRepository creates a new task/tag weight repository
func NewTaskTagWeightRepository(db *DB) *TaskTagWeightRepository {
	return &TaskTagWeightRepository{db: db}
}

// Upsert writes the weight for (TaskID, TagID). An existing pair only has its
// base weight replaced; alpha and beta keep whatever adoption history they have.
func (r *TaskTagWeightRepository) Upsert(ctx context.Context, w *models.TaskTagWeight) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_tag_weight (task_id, tag_id, base_weight, alpha, beta, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		ON CONFLICT (task_id, tag_id) DO UPDATE SET
			base_weight = EXCLUDED.base_weight,
			updated_at = EXCLUDED.updated_at
	`, w.TaskID, w.TagID, w.BaseWeight, w.Alpha, w.Beta)
	if err != nil {
		return fmt.Errorf("failed to upsert weight task=%d tag=%d: %w", w.TaskID, w.TagID, err)
	}
	return nil
}

// ListByTask returns the weights of one task ordered by tag ID
func (r *TaskTagWeightRepository) ListByTask(ctx context.Context, taskID int64) ([]*models.TaskTagWeight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_id, tag_id, base_weight, alpha, beta
		FROM task_tag_weight
		WHERE task_id = $1
		ORDER BY tag_id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	defer rows.Close()

	var weights []*models.TaskTagWeight
	for rows.Next() {
		w := &models.TaskTagWeight{}
		if err := rows.Scan(&w.TaskID, &w.TagID, &w.BaseWeight, &w.Alpha, &w.Beta); err != nil {
			return nil, fmt.Errorf("failed to scan weight: %w", err)
		}
		weights = append(weights, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weights: %w", err)
	}

	return weights, nil
}
