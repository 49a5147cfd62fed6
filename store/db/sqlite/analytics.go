package sqlite

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/guppshupp/store"
)

// CreateAnalyticsEvent appends one analytics row.
func (d *DB) CreateAnalyticsEvent(ctx context.Context, create *store.CreateAnalyticsEvent) (*store.AnalyticsEvent, error) {
	eventData := create.EventData
	if eventData == "" {
		eventData = "{}"
	}

	stmt := `
		INSERT INTO analytics (user_id, event_type, event_data, created_ts)
		VALUES (?, ?, ?, ?)
		RETURNING id, user_id, event_type, event_data, created_ts
	`
	var event store.AnalyticsEvent
	err := d.db.QueryRowContext(ctx, stmt,
		create.UserID,
		create.EventType,
		eventData,
		time.Now().Unix(),
	).Scan(
		&event.ID,
		&event.UserID,
		&event.EventType,
		&event.EventData,
		&event.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create analytics event")
	}
	return &event, nil
}

// GetUserStats aggregates activity counters for one user.
func (d *DB) GetUserStats(ctx context.Context, userID string) (*store.UserStats, error) {
	stats := &store.UserStats{}

	err := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(confidence_score), 0), COALESCE(SUM(message_count), 0)
		FROM user_memories WHERE user_id = ?
	`, userID).Scan(&stats.MemoryExtractions, &stats.AvgConfidence, &stats.TotalMessagesAnalyzed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get memory stats")
	}

	err = d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT personality_type)
		FROM conversations WHERE user_id = ?
	`, userID).Scan(&stats.TotalConversations, &stats.PersonalitiesTried)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get conversation stats")
	}

	err = d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT personality_type)
		FROM personality_responses WHERE user_id = ?
	`, userID).Scan(&stats.PersonalityComparisons, &stats.UniquePersonalitiesTested)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get personality response stats")
	}

	return stats, nil
}

// DeleteExpiredData removes append-only rows created before cutoffTs.
// Memory snapshots are kept; they are replaced in place on every save.
func (d *DB) DeleteExpiredData(ctx context.Context, cutoffTs int64) error {
	for _, table := range []string{"conversations", "personality_responses", "analytics"} {
		if _, err := d.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE created_ts < ?", cutoffTs); err != nil {
			return errors.Wrapf(err, "failed to clean up %s", table)
		}
	}
	return nil
}
