package userdata

import (
	"context"

	"github.com/PabloPavan/snipmark_api/internal/db"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	sqlUserDataGet = `SELECT user_id, watched_tags, ignored_tags, pinned, updated_at
		FROM user_data
		WHERE user_id = $1`

	sqlUserDataUpsert = `INSERT INTO user_data (user_id, watched_tags, ignored_tags, pinned)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET watched_tags = EXCLUDED.watched_tags,
			ignored_tags = EXCLUDED.ignored_tags,
			pinned = EXCLUDED.pinned,
			updated_at = now()
		RETURNING updated_at`
)

func (r *Repository) Get(ctx context.Context, userID string) (*Data, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var d Data
	err := r.base.Q().QueryRow(ctx, sqlUserDataGet, userID).Scan(
		&d.UserID,
		&d.WatchedTags,
		&d.IgnoredTags,
		&d.Pinned,
		&d.UpdatedAt,
	)
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Upsert(ctx context.Context, d *Data) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return r.base.Q().QueryRow(ctx, sqlUserDataUpsert,
		d.UserID,
		orEmpty(d.WatchedTags),
		orEmpty(d.IgnoredTags),
		orEmpty(d.Pinned),
	).Scan(&d.UpdatedAt)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
