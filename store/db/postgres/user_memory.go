package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/guppshupp/store"
)

// UpsertUserMemory replaces the memory snapshot for a user.
func (d *DB) UpsertUserMemory(ctx context.Context, upsert *store.UpsertUserMemory) (*store.UserMemorySnapshot, error) {
	now := time.Now().Unix()

	stmt := `
		INSERT INTO user_memories (user_id, memory_data, message_count, confidence_score, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			memory_data = excluded.memory_data,
			message_count = excluded.message_count,
			confidence_score = excluded.confidence_score,
			updated_ts = excluded.updated_ts
		RETURNING id, user_id, memory_data, message_count, confidence_score, created_ts, updated_ts
	`
	var snapshot store.UserMemorySnapshot
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.UserID,
		upsert.MemoryData,
		upsert.MessageCount,
		upsert.ConfidenceScore,
		now,
		now,
	).Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.MemoryData,
		&snapshot.MessageCount,
		&snapshot.ConfidenceScore,
		&snapshot.CreatedTs,
		&snapshot.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert user memory")
	}
	return &snapshot, nil
}

// GetUserMemory returns the snapshot or nil when none exists.
func (d *DB) GetUserMemory(ctx context.Context, find *store.FindUserMemory) (*store.UserMemorySnapshot, error) {
	stmt := `
		SELECT id, user_id, memory_data, message_count, confidence_score, created_ts, updated_ts
		FROM user_memories
		WHERE user_id = $1
	`
	var snapshot store.UserMemorySnapshot
	err := d.db.QueryRowContext(ctx, stmt, find.UserID).Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.MemoryData,
		&snapshot.MessageCount,
		&snapshot.ConfidenceScore,
		&snapshot.CreatedTs,
		&snapshot.UpdatedTs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get user memory")
	}
	return &snapshot, nil
}
