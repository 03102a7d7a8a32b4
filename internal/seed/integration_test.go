package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/benvon/taskplanet-seed/internal/database"
	"github.com/benvon/taskplanet-seed/internal/database/dbtest"
	"github.com/benvon/taskplanet-seed/internal/fixtures"
	"github.com/benvon/taskplanet-seed/internal/models"
)

// sqliteSeeder wires a Seeder to real repositories over a throwaway database.
func sqliteSeeder(t *testing.T) (*Seeder, *database.DB) {
	t.Helper()
	db := dbtest.New(t)
	s := New(
		database.NewTaskRepository(db),
		database.NewTagRepository(db),
		database.NewTaskTagWeightRepository(db),
		nil,
	)
	return s, db
}

func TestSQLite_FlatAddsFiveTasks(t *testing.T) {
	t.Parallel()
	s, db := sqliteSeeder(t)
	ctx := context.Background()
	f := mustLoad(t, fixtures.Flat)

	if _, err := s.Run(ctx, f); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := dbtest.FlatTasks(t, db)
	if len(got) != 5 {
		t.Fatalf("Task rows = %d, want 5", len(got))
	}
	if c := dbtest.Count(t, db, "tasks"); c != 0 {
		t.Errorf("tasks = %d, want 0", c)
	}
	for i, want := range f.Tasks {
		if got[i].Description != want.Description || got[i].SuggestedTime != want.SuggestedTime {
			t.Errorf("task %d = %+v, want %+v", i, got[i], want)
		}
		if len(got[i].Mood) != 1 || got[i].Mood[0] != want.Mood[0] {
			t.Errorf("task %d mood = %v, want %v", i, got[i].Mood, want.Mood)
		}
	}

	// Not idempotent: a second run appends another five.
	if _, err := s.Run(ctx, f); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if c := dbtest.Count(t, db, `"Task"`); c != 10 {
		t.Errorf("Task rows after two runs = %d, want 10", c)
	}
}

func TestSQLite_TagUpsertIdempotent(t *testing.T) {
	t.Parallel()
	s, db := sqliteSeeder(t)
	ctx := context.Background()
	f := mustLoad(t, fixtures.Dimensional)

	for i := 0; i < 2; i++ {
		if _, err := s.UpsertTags(ctx, f.TagDims()); err != nil {
			t.Fatalf("UpsertTags() run %d error = %v", i+1, err)
		}
	}

	if c := dbtest.Count(t, db, "tag_dim"); c != 8 {
		t.Errorf("tag_dim rows = %d, want 8", c)
	}
	active, err := database.NewTagRepository(db).ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 8 {
		t.Errorf("active tags = %d, want 8", len(active))
	}
}

func TestSQLite_DimensionalTwice(t *testing.T) {
	t.Parallel()
	s, db := sqliteSeeder(t)
	ctx := context.Background()
	f := mustLoad(t, fixtures.Dimensional)

	var totalWeights int
	for _, task := range f.Tasks {
		totalWeights += len(task.Weights)
	}

	for i := 0; i < 2; i++ {
		res, err := s.Run(ctx, f)
		if err != nil {
			t.Fatalf("Run() %d error = %v", i+1, err)
		}
		if res.Phase != PhaseDone || res.ActiveTags != 8 {
			t.Errorf("Run() %d result = %+v", i+1, res)
		}
	}

	if c := dbtest.Count(t, db, "tag_dim"); c != 8 {
		t.Errorf("tag_dim rows = %d, want 8", c)
	}
	if c := dbtest.Count(t, db, "tasks"); c != 2*len(f.Tasks) {
		t.Errorf("tasks = %d, want %d", c, 2*len(f.Tasks))
	}
	if c := dbtest.Count(t, db, "task_tag_weight"); c != 2*totalWeights {
		t.Errorf("task_tag_weight rows = %d, want %d", c, 2*totalWeights)
	}
	if c := dbtest.Count(t, db, `"Task"`); c != 0 {
		t.Errorf("Task rows = %d, want 0", c)
	}
}

func TestSQLite_WeightsMatchFixture(t *testing.T) {
	t.Parallel()
	s, db := sqliteSeeder(t)
	ctx := context.Background()
	f := mustLoad(t, fixtures.Dimensional)

	if _, err := s.Run(ctx, f); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	tagRepo := database.NewTagRepository(db)
	weightRepo := database.NewTaskTagWeightRepository(db)
	tasks := dbtest.Tasks(t, db)
	if len(tasks) != len(f.Tasks) {
		t.Fatalf("tasks = %d, want %d", len(tasks), len(f.Tasks))
	}

	for i, ft := range f.Tasks {
		rows, err := weightRepo.ListByTask(ctx, tasks[i].ID)
		if err != nil {
			t.Fatalf("ListByTask() error = %v", err)
		}
		byTag := make(map[int64]*models.TaskTagWeight, len(rows))
		for _, r := range rows {
			byTag[r.TagID] = r
		}
		if len(rows) != len(ft.Weights) {
			t.Errorf("task %q has %d weights, want %d", ft.Description, len(rows), len(ft.Weights))
		}
		for _, w := range ft.Weights {
			tagID, err := tagRepo.GetIDByCode(ctx, w.Code)
			if err != nil {
				t.Fatalf("GetIDByCode(%s) error = %v", w.Code, err)
			}
			row, ok := byTag[tagID]
			if !ok {
				t.Errorf("task %q missing weight for %s", ft.Description, w.Code)
				continue
			}
			if row.BaseWeight != w.Weight {
				t.Errorf("task %q %s weight = %v, want %v", ft.Description, w.Code, row.BaseWeight, w.Weight)
			}
		}
	}

	// Spot-check the walk task literally.
	if tasks[0].Description != "散步 15 分鐘" {
		t.Fatalf("first task = %q", tasks[0].Description)
	}
	outdoor, _ := tagRepo.GetIDByCode(ctx, "context/outdoor")
	med, _ := tagRepo.GetIDByCode(ctx, "energy/med")
	rows, err := weightRepo.ListByTask(ctx, tasks[0].ID)
	if err != nil {
		t.Fatalf("ListByTask() error = %v", err)
	}
	want := map[int64]float64{outdoor: 0.7, med: 0.6}
	for _, r := range rows {
		if want[r.TagID] != r.BaseWeight {
			t.Errorf("walk tag %d weight = %v, want %v", r.TagID, r.BaseWeight, want[r.TagID])
		}
	}
}

func TestSQLite_UnknownCodeFailsRun(t *testing.T) {
	t.Parallel()
	s, db := sqliteSeeder(t)
	ctx := context.Background()

	f := &fixtures.Fixture{
		Name: "broken",
		Tags: []fixtures.Tag{{Code: "energy/low", Label: "低能量", Group: "energy"}},
		Tasks: []fixtures.Task{
			{Description: "深呼吸", SuggestedTime: 5, Weights: []fixtures.Weight{
				{Code: "energy/low", Weight: 0.8},
				{Code: "focus/missing", Weight: 0.6},
				{Code: "energy/low", Weight: 0.1},
			}},
			{Description: "never created", SuggestedTime: 5, Weights: []fixtures.Weight{
				{Code: "energy/low", Weight: 0.5},
			}},
		},
	}

	res, err := s.Run(ctx, f)
	if !errors.Is(err, database.ErrTagNotFound) {
		t.Fatalf("Run() error = %v, want ErrTagNotFound", err)
	}
	if res.Phase != PhaseFailed || res.FailedAfter != PhaseTagsUpserted {
		t.Errorf("Phase = %s, FailedAfter = %s", res.Phase, res.FailedAfter)
	}

	// Rows written before the failure stay.
	if c := dbtest.Count(t, db, "tasks"); c != 1 {
		t.Errorf("tasks = %d, want 1", c)
	}
	if c := dbtest.Count(t, db, "task_tag_weight"); c != 1 {
		t.Errorf("task_tag_weight rows = %d, want 1", c)
	}
	var w float64
	if err := db.QueryRow(`SELECT base_weight FROM task_tag_weight`).Scan(&w); err != nil {
		t.Fatalf("read weight: %v", err)
	}
	if w != 0.8 {
		t.Errorf("base_weight = %v, want 0.8 (later duplicate must not run)", w)
	}
}
