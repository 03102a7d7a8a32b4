package seed

import (
	"context"
	"testing"

	"github.com/benvon/taskplanet-seed/internal/database"
	"github.com/benvon/taskplanet-seed/internal/models"
)

// mockTaskRepo is a mock implementation of TaskRepositoryInterface
type mockTaskRepo struct {
	t              *testing.T
	createFunc     func(ctx context.Context, task *models.Task) error
	createManyFunc func(ctx context.Context, tasks []*models.Task) (int64, error)

	// Call tracking
	createCalls     []*models.Task
	createManyCalls [][]*models.Task
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	m.createCalls = append(m.createCalls, task)
	if m.createFunc == nil {
		m.t.Fatal("Create called but not configured in test - mock requires explicit setup")
	}
	return m.createFunc(ctx, task)
}

func (m *mockTaskRepo) CreateMany(ctx context.Context, tasks []*models.Task) (int64, error) {
	m.createManyCalls = append(m.createManyCalls, tasks)
	if m.createManyFunc == nil {
		m.t.Fatal("CreateMany called but not configured in test - mock requires explicit setup")
	}
	return m.createManyFunc(ctx, tasks)
}

var _ database.TaskRepositoryInterface = (*mockTaskRepo)(nil)

// mockTagRepo is a mock implementation of TagRepositoryInterface
type mockTagRepo struct {
	t               *testing.T
	upsertFunc      func(ctx context.Context, tag *models.TagDim) error
	getIDByCodeFunc func(ctx context.Context, code string) (int64, error)
	listActiveFunc  func(ctx context.Context) ([]*models.TagDim, error)

	// Call tracking
	upsertCalls      []string
	getIDByCodeCalls []string
	listActiveCalls  int
}

func (m *mockTagRepo) Upsert(ctx context.Context, tag *models.TagDim) error {
	m.upsertCalls = append(m.upsertCalls, tag.Code)
	if m.upsertFunc == nil {
		m.t.Fatal("Upsert called but not configured in test - mock requires explicit setup")
	}
	return m.upsertFunc(ctx, tag)
}

func (m *mockTagRepo) GetIDByCode(ctx context.Context, code string) (int64, error) {
	m.getIDByCodeCalls = append(m.getIDByCodeCalls, code)
	if m.getIDByCodeFunc == nil {
		m.t.Fatal("GetIDByCode called but not configured in test - mock requires explicit setup")
	}
	return m.getIDByCodeFunc(ctx, code)
}

func (m *mockTagRepo) ListActive(ctx context.Context) ([]*models.TagDim, error) {
	m.listActiveCalls++
	if m.listActiveFunc == nil {
		m.t.Fatal("ListActive called but not configured in test - mock requires explicit setup")
	}
	return m.listActiveFunc(ctx)
}

var _ database.TagRepositoryInterface = (*mockTagRepo)(nil)

// mockWeightRepo is a mock implementation of TaskTagWeightRepositoryInterface
type mockWeightRepo struct {
	t              *testing.T
	upsertFunc     func(ctx context.Context, w *models.TaskTagWeight) error
	listByTaskFunc func(ctx context.Context, taskID int64) ([]*models.TaskTagWeight, error)

	// Call tracking
	upsertCalls     []*models.TaskTagWeight
	listByTaskCalls []int64
}

func (m *mockWeightRepo) Upsert(ctx context.Context, w *models.TaskTagWeight) error {
	m.upsertCalls = append(m.upsertCalls, w)
	if m.upsertFunc == nil {
		m.t.Fatal("Upsert called but not configured in test - mock requires explicit setup")
	}
	return m.upsertFunc(ctx, w)
}

func (m *mockWeightRepo) ListByTask(ctx context.Context, taskID int64) ([]*models.TaskTagWeight, error) {
	m.listByTaskCalls = append(m.listByTaskCalls, taskID)
	if m.listByTaskFunc == nil {
		m.t.Fatal("ListByTask called but not configured in test - mock requires explicit setup")
	}
	return m.listByTaskFunc(ctx, taskID)
}

var _ database.TaskTagWeightRepositoryInterface = (*mockWeightRepo)(nil)
