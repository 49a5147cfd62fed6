package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/guppshupp/store"
)

// CreateConversation appends one conversation row.
func (d *DB) CreateConversation(ctx context.Context, create *store.CreateConversation) (*store.Conversation, error) {
	stmt := `
		INSERT INTO conversations (user_id, session_id, messages, personality_type, created_ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, session_id, messages, personality_type, created_ts
	`
	var conversation store.Conversation
	err := d.db.QueryRowContext(ctx, stmt,
		create.UserID,
		create.SessionID,
		create.Messages,
		create.PersonalityType,
		time.Now().Unix(),
	).Scan(
		&conversation.ID,
		&conversation.UserID,
		&conversation.SessionID,
		&conversation.Messages,
		&conversation.PersonalityType,
		&conversation.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create conversation")
	}
	return &conversation, nil
}

// ListConversations lists conversations newest first.
func (d *DB) ListConversations(ctx context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.UserID != nil {
		args = append(args, *find.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT id, user_id, session_id, messages, personality_type, created_ts
		FROM conversations
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`
	if find.Limit != nil {
		args = append(args, *find.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}
	defer rows.Close()

	var conversations []*store.Conversation
	for rows.Next() {
		var conversation store.Conversation
		err := rows.Scan(
			&conversation.ID,
			&conversation.UserID,
			&conversation.SessionID,
			&conversation.Messages,
			&conversation.PersonalityType,
			&conversation.CreatedTs,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan conversation")
		}
		conversations = append(conversations, &conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate conversations")
	}
	return conversations, nil
}
