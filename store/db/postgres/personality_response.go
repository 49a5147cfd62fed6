package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/guppshupp/store"
)

// CreatePersonalityResponse appends one styled variant row.
func (d *DB) CreatePersonalityResponse(ctx context.Context, create *store.CreatePersonalityResponse) (*store.PersonalityResponse, error) {
	stmt := `
		INSERT INTO personality_responses (user_id, user_message, base_response, personality_type, personality_response, created_ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, user_message, base_response, personality_type, personality_response, created_ts
	`
	var response store.PersonalityResponse
	err := d.db.QueryRowContext(ctx, stmt,
		create.UserID,
		create.UserMessage,
		create.BaseResponse,
		create.PersonalityType,
		create.PersonalityResponse,
		time.Now().Unix(),
	).Scan(
		&response.ID,
		&response.UserID,
		&response.UserMessage,
		&response.BaseResponse,
		&response.PersonalityType,
		&response.PersonalityResponse,
		&response.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create personality response")
	}
	return &response, nil
}

// ListPersonalityResponses lists variant rows newest first.
func (d *DB) ListPersonalityResponses(ctx context.Context, find *store.FindPersonalityResponse) ([]*store.PersonalityResponse, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.UserID != nil {
		args = append(args, *find.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT id, user_id, user_message, base_response, personality_type, personality_response, created_ts
		FROM personality_responses
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`
	if find.Limit != nil {
		args = append(args, *find.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list personality responses")
	}
	defer rows.Close()

	var responses []*store.PersonalityResponse
	for rows.Next() {
		var response store.PersonalityResponse
		err := rows.Scan(
			&response.ID,
			&response.UserID,
			&response.UserMessage,
			&response.BaseResponse,
			&response.PersonalityType,
			&response.PersonalityResponse,
			&response.CreatedTs,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan personality response")
		}
		responses = append(responses, &response)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate personality responses")
	}
	return responses, nil
}
