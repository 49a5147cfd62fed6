package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/guppshupp/store"
)

// UpsertUser creates a user row or refreshes its metadata.
func (d *DB) UpsertUser(ctx context.Context, upsert *store.UpsertUser) (*store.User, error) {
	metadata := upsert.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	now := time.Now().Unix()

	stmt := `
		INSERT INTO users (id, metadata, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			metadata = excluded.metadata,
			updated_ts = excluded.updated_ts
		RETURNING id, metadata, created_ts, updated_ts
	`
	var user store.User
	err := d.db.QueryRowContext(ctx, stmt, upsert.ID, metadata, now, now).Scan(
		&user.ID,
		&user.Metadata,
		&user.CreatedTs,
		&user.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}
	return &user, nil
}

// GetUser returns the user or nil when the row does not exist.
func (d *DB) GetUser(ctx context.Context, find *store.FindUser) (*store.User, error) {
	stmt := `SELECT id, metadata, created_ts, updated_ts FROM users WHERE id = $1`

	var user store.User
	err := d.db.QueryRowContext(ctx, stmt, find.ID).Scan(
		&user.ID,
		&user.Metadata,
		&user.CreatedTs,
		&user.UpdatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}
