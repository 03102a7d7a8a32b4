package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benvon/taskplanet-seed/internal/models"
)

// TagRepository handles tag_dim database operations
type TagRepository struct {
	db *DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *DB) *TagRepository {
	return &TagRepository{db: db}
}

// Upsert inserts the tag or, when its code already exists, overwrites label,
// group and active flag. The row ID is written back to tag.ID.
func (r *TagRepository) Upsert(ctx context.Context, tag *models.TagDim) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tag_dim (code, label, group_code, is_active, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (code) DO UPDATE SET
			label = EXCLUDED.label,
			group_code = EXCLUDED.group_code,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`, tag.Code, tag.Label, tag.GroupCode, tag.IsActive).Scan(&tag.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert tag %s: %w", tag.Code, err)
	}
	return nil
}

// GetIDByCode resolves a tag code to its ID. Unknown codes yield ErrTagNotFound.
func (r *TagRepository) GetIDByCode(ctx context.Context, code string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM tag_dim WHERE code = $1`, code).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrTagNotFound, code)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get tag %s: %w", code, err)
	}
	return id, nil
}

// ListActive returns active tags ordered by group, then code
func (r *TagRepository) ListActive(ctx context.Context) ([]*models.TagDim, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, label, group_code, is_active
		FROM tag_dim
		WHERE is_active = TRUE
		ORDER BY group_code, code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.TagDim
	for rows.Next() {
		tag := &models.TagDim{}
		if err := rows.Scan(&tag.ID, &tag.Code, &tag.Label, &tag.GroupCode, &tag.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}
