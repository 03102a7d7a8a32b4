package models

// Task is a suggested activity. Flat seeds land in the Prisma "Task" table
// with their mood labels; dimensional seeds land in tasks, which has no mood.
type Task struct {
	ID            int64    `json:"id"`
	Description   string   `json:"description"`
	Mood          []string `json:"mood"`
	SuggestedTime int      `json:"suggested_time"` // minutes
}

// TagDim is one value of a tag dimension, e.g. code "context/desk" in group "context".
type TagDim struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Label     string `json:"label"`
	GroupCode string `json:"group_code"`
	IsActive  bool   `json:"is_active"`
}

// Default Beta prior for a freshly seeded task/tag pair.
const (
	DefaultWeightAlpha = 1.0
	DefaultWeightBeta  = 9.0
)

// TaskTagWeight links a task to a tag with a static relevance in [0,1].
// Alpha and Beta are the adoption counts the recommender reinforces later.
type TaskTagWeight struct {
	TaskID     int64   `json:"task_id"`
	TagID      int64   `json:"tag_id"`
	BaseWeight float64 `json:"base_weight"`
	Alpha      float64 `json:"alpha"`
	Beta       float64 `json:"beta"`
}
