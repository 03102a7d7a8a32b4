// Package seed writes fixture data sets into the task, tag and weight tables.
//
// A run moves through START → TAGS_UPSERTED → TASKS_AND_WEIGHTS_CREATED → DONE.
// Any error stops the run where it is; nothing is retried or rolled back, so
// rows written before the failure stay.
package seed

import (
	"context"
	"fmt"

	"github.com/benvon/taskplanet-seed/internal/database"
	"github.com/benvon/taskplanet-seed/internal/fixtures"
	"github.com/benvon/taskplanet-seed/internal/models"
	"github.com/benvon/taskplanet-seed/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Phase is the last step a run completed
type Phase string

const (
	PhaseStart        Phase = "start"
	PhaseTagsUpserted Phase = "tags_upserted"
	PhaseTasksCreated Phase = "tasks_and_weights_created"
	PhaseDone         Phase = "done"
	PhaseFailed       Phase = "failed"
)

// Result summarizes a run. On failure Phase is PhaseFailed and FailedAfter
// holds the last phase that completed.
type Result struct {
	RunID           uuid.UUID
	Fixture         string
	Phase           Phase
	FailedAfter     Phase
	TagsUpserted    int
	TasksCreated    int
	WeightsUpserted int
	ActiveTags      int
}

// Seeder writes fixtures through the repositories, one statement at a time
type Seeder struct {
	tasks   database.TaskRepositoryInterface
	tags    database.TagRepositoryInterface
	weights database.TaskTagWeightRepositoryInterface
	logger  *zap.Logger
	tracer  trace.Tracer
}

// New creates a seeder. A nil logger discards output.
func New(
	tasks database.TaskRepositoryInterface,
	tags database.TagRepositoryInterface,
	weights database.TaskTagWeightRepositoryInterface,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		tasks:   tasks,
		tags:    tags,
		weights: weights,
		logger:  logger,
		tracer:  telemetry.Tracer(),
	}
}

// SetTracer replaces the tracer used for run and phase spans
func (s *Seeder) SetTracer(tracer trace.Tracer) {
	s.tracer = tracer
}

// Run seeds f. Tags are upserted first; tasks follow, either as one bulk insert
// (no task carries weights) or one by one with their weight rows.
func (s *Seeder) Run(ctx context.Context, f *fixtures.Fixture) (*Result, error) {
	res := &Result{
		RunID:   uuid.New(),
		Fixture: f.Name,
		Phase:   PhaseStart,
	}
	logger := s.logger.With(
		zap.String("seed_run_id", res.RunID.String()),
		zap.String("fixture", f.Name),
	)

	ctx, span := s.tracer.Start(ctx, "seed.run", trace.WithAttributes(
		attribute.String("seed.run_id", res.RunID.String()),
		attribute.String("seed.fixture", f.Name),
	))
	defer span.End()

	fail := func(err error) (*Result, error) {
		res.FailedAfter = res.Phase
		res.Phase = PhaseFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	logger.Info("seed_started",
		zap.Int("tags", len(f.Tags)),
		zap.Int("tasks", len(f.Tasks)),
	)

	if len(f.Tags) > 0 {
		n, err := s.upsertTags(ctx, logger, f.TagDims())
		res.TagsUpserted = n
		if err != nil {
			return fail(fmt.Errorf("upsert tags: %w", err))
		}
	}
	res.Phase = PhaseTagsUpserted
	logger.Info("tags_upserted", zap.Int("count", res.TagsUpserted))

	if f.HasWeights() {
		tasks, weights, err := s.createTasksWithWeights(ctx, logger, f.Tasks)
		res.TasksCreated = tasks
		res.WeightsUpserted = weights
		if err != nil {
			return fail(err)
		}
	} else {
		n, err := s.CreateTasks(ctx, f.Tasks)
		res.TasksCreated = n
		if err != nil {
			return fail(fmt.Errorf("create tasks: %w", err))
		}
	}
	res.Phase = PhaseTasksCreated
	logger.Info("tasks_and_weights_created",
		zap.Int("tasks", res.TasksCreated),
		zap.Int("weights", res.WeightsUpserted),
	)

	if len(f.Tags) > 0 {
		active, err := s.tags.ListActive(ctx)
		if err != nil {
			return fail(fmt.Errorf("list active tags: %w", err))
		}
		res.ActiveTags = len(active)
		logger.Info("tags_active", zap.Int("count", res.ActiveTags))
	}

	res.Phase = PhaseDone
	span.SetAttributes(
		attribute.Int("seed.tasks_created", res.TasksCreated),
		attribute.Int("seed.weights_upserted", res.WeightsUpserted),
	)
	return res, nil
}

// UpsertTags upserts tags in order and returns how many were written.
// Re-running with the same tags leaves one row per code.
func (s *Seeder) UpsertTags(ctx context.Context, tags []*models.TagDim) (int, error) {
	return s.upsertTags(ctx, s.logger, tags)
}

func (s *Seeder) upsertTags(ctx context.Context, logger *zap.Logger, tags []*models.TagDim) (int, error) {
	ctx, span := s.tracer.Start(ctx, "seed.upsert_tags")
	defer span.End()

	for i, tag := range tags {
		tag.IsActive = true
		if err := s.tags.Upsert(ctx, tag); err != nil {
			span.RecordError(err)
			return i, err
		}
		logger.Debug("tag_upserted",
			zap.String("code", tag.Code),
			zap.Int64("tag_id", tag.ID),
		)
	}
	return len(tags), nil
}

// CreateTasks inserts all tasks in one bulk statement. Not idempotent.
func (s *Seeder) CreateTasks(ctx context.Context, tasks []fixtures.Task) (int, error) {
	ctx, span := s.tracer.Start(ctx, "seed.create_tasks", trace.WithAttributes(
		attribute.Bool("seed.bulk", true),
	))
	defer span.End()

	rows := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, t.Model())
	}

	n, err := s.tasks.CreateMany(ctx, rows)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return int(n), nil
}

// CreateTasksWithWeights creates each task, then resolves each weight's tag
// code and upserts the (task, tag) weight. The first failure, including an
// unknown tag code, stops the phase; it returns the tasks and weights written
// so far.
func (s *Seeder) CreateTasksWithWeights(ctx context.Context, tasks []fixtures.Task) (int, int, error) {
	return s.createTasksWithWeights(ctx, s.logger, tasks)
}

func (s *Seeder) createTasksWithWeights(ctx context.Context, logger *zap.Logger, tasks []fixtures.Task) (int, int, error) {
	ctx, span := s.tracer.Start(ctx, "seed.create_tasks", trace.WithAttributes(
		attribute.Bool("seed.bulk", false),
	))
	defer span.End()

	created, upserted := 0, 0
	for _, t := range tasks {
		task := t.Model()
		if err := s.tasks.Create(ctx, task); err != nil {
			span.RecordError(err)
			return created, upserted, fmt.Errorf("create task %q: %w", t.Description, err)
		}
		created++

		for _, w := range t.Weights {
			tagID, err := s.tags.GetIDByCode(ctx, w.Code)
			if err != nil {
				span.RecordError(err)
				return created, upserted, fmt.Errorf("resolve tag for task %q: %w", t.Description, err)
			}

			weight := &models.TaskTagWeight{
				TaskID:     task.ID,
				TagID:      tagID,
				BaseWeight: w.Weight,
				Alpha:      models.DefaultWeightAlpha,
				Beta:       models.DefaultWeightBeta,
			}
			if err := s.weights.Upsert(ctx, weight); err != nil {
				span.RecordError(err)
				return created, upserted, fmt.Errorf("upsert weight for task %q: %w", t.Description, err)
			}
			upserted++
		}

		logger.Debug("task_created",
			zap.Int64("task_id", task.ID),
			zap.String("description", task.Description),
			zap.Int("weights", len(t.Weights)),
		)
		s.logStoredWeights(ctx, logger, task.ID)
	}
	return created, upserted, nil
}

// logStoredWeights reads back a task's weight rows for the task_weights debug
// event. It does nothing unless debug logging is on.
func (s *Seeder) logStoredWeights(ctx context.Context, logger *zap.Logger, taskID int64) {
	ce := logger.Check(zap.DebugLevel, "task_weights")
	if ce == nil {
		return
	}

	stored, err := s.weights.ListByTask(ctx, taskID)
	if err != nil {
		logger.Warn("task_weights_read_failed", zap.Int64("task_id", taskID), zap.Error(err))
		return
	}

	pairs := make([]string, 0, len(stored))
	for _, w := range stored {
		pairs = append(pairs, fmt.Sprintf("%d=%.2f", w.TagID, w.BaseWeight))
	}
	ce.Write(zap.Int64("task_id", taskID), zap.Strings("weights", pairs))
}
