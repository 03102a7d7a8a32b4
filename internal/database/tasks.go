package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benvon/taskplanet-seed/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a recommender task and sets its ID. Mood has no column in
// tasks and is not written.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (description, suggested_time)
		VALUES ($1, $2)
		RETURNING id
	`, task.Description, task.SuggestedTime).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// CreateMany inserts all tasks into the Prisma "Task" table with a single
// multi-row INSERT and returns the number of rows written. IDs are not read back.
func (r *TaskRepository) CreateMany(ctx context.Context, tasks []*models.Task) (int64, error) {
	if len(tasks) == 0 {
		return 0, nil
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO "Task" ("description", "mood", "suggestedTime") VALUES `)
	args := make([]any, 0, len(tasks)*3)
	for i, task := range tasks {
		moodJSON, err := marshalMood(task.Mood)
		if err != nil {
			return 0, err
		}
		if i > 0 {
			query.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&query, "($%d, $%d, $%d)", n+1, n+2, n+3)
		args = append(args, task.Description, moodJSON, task.SuggestedTime)
	}

	res, err := r.db.ExecContext(ctx, query.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to create tasks: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted task count: %w", err)
	}
	return count, nil
}

// marshalMood encodes mood labels as a JSON array; nil becomes [].
func marshalMood(mood []string) (string, error) {
	if mood == nil {
		mood = []string{}
	}
	b, err := json.Marshal(mood)
	if err != nil {
		return "", fmt.Errorf("failed to marshal mood: %w", err)
	}
	return string(b), nil
}
