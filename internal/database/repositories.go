package database

import (
	"context"
	"errors"

	"github.com/benvon/taskplanet-seed/internal/models"
)

// ErrTagNotFound is returned when a tag code has no tag_dim row.
var ErrTagNotFound = errors.New("tag not found")

// TaskRepositoryInterface defines the task operations the seeder needs
// This interface enables better testability by allowing mock implementations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	CreateMany(ctx context.Context, tasks []*models.Task) (int64, error)
}

// TagRepositoryInterface defines the tag operations the seeder needs
type TagRepositoryInterface interface {
	Upsert(ctx context.Context, tag *models.TagDim) error
	GetIDByCode(ctx context.Context, code string) (int64, error)
	ListActive(ctx context.Context) ([]*models.TagDim, error)
}

// TaskTagWeightRepositoryInterface defines the weight operations the seeder needs
type TaskTagWeightRepositoryInterface interface {
	Upsert(ctx context.Context, weight *models.TaskTagWeight) error
	ListByTask(ctx context.Context, taskID int64) ([]*models.TaskTagWeight, error)
}

// Ensure concrete types implement the interfaces
var (
	_ TaskRepositoryInterface          = (*TaskRepository)(nil)
	_ TagRepositoryInterface           = (*TagRepository)(nil)
	_ TaskTagWeightRepositoryInterface = (*TaskTagWeightRepository)(nil)
)
