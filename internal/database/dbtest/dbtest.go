// Package dbtest opens throwaway SQLite databases carrying the seeder tables.
// It is exported so tests in other packages can run repositories for real.
package dbtest

import (
	_ "embed"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/benvon/taskplanet-seed/internal/database"
	"github.com/benvon/taskplanet-seed/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// New returns a migrated database in t.TempDir(), closed when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()
	db, _ := NewURL(t)
	return db
}

// NewURL is New that also returns the DATABASE_URL of the file, for code
// under test that opens its own connection.
func NewURL(t testing.TB) (*database.DB, string) {
	t.Helper()

	url := "sqlite:" + filepath.Join(t.TempDir(), "seed.db")
	db, err := database.New(url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("failed to apply test schema: %v", err)
	}

	return db, url
}

// Count returns the number of rows in table. Quote mixed-case names: `"Task"`.
func Count(t testing.TB, db *database.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// FlatTasks returns the rows of "Task" ordered by id, mood decoded.
func FlatTasks(t testing.TB, db *database.DB) []*models.Task {
	t.Helper()
	rows, err := db.Query(`SELECT "id", "description", "mood", "suggestedTime" FROM "Task" ORDER BY "id"`)
	if err != nil {
		t.Fatalf("failed to query Task: %v", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		var mood string
		if err := rows.Scan(&task.ID, &task.Description, &mood, &task.SuggestedTime); err != nil {
			t.Fatalf("failed to scan Task: %v", err)
		}
		if err := json.Unmarshal([]byte(mood), &task.Mood); err != nil {
			t.Fatalf("failed to decode mood %q: %v", mood, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("error iterating Task: %v", err)
	}
	return tasks
}

// Tasks returns the rows of tasks ordered by id.
func Tasks(t testing.TB, db *database.DB) []*models.Task {
	t.Helper()
	rows, err := db.Query(`SELECT id, description, suggested_time FROM tasks ORDER BY id`)
	if err != nil {
		t.Fatalf("failed to query tasks: %v", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.Description, &task.SuggestedTime); err != nil {
			t.Fatalf("failed to scan task: %v", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("error iterating tasks: %v", err)
	}
	return tasks
}
