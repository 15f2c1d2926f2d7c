package data

import (
	"context"
	"fmt"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"projecttrack/internal/model"
)

// ActivityRepository is append-only; entries are never mutated or deleted.
type ActivityRepository struct {
	db *surrealdb.DB
}

func NewActivityRepository(db *surrealdb.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, principalID int64, action string) error {
	id, err := newDocumentID()
	if err != nil {
		return err
	}

	record := activityRecord{
		PrincipalId: principalID,
		Action:      action,
		Timestamp:   models.CustomDateTime{Time: time.Now().UTC()},
	}

	_, err = surrealdb.Create[activityRecord](ctx, r.db, models.NewRecordID(activityTable, id), record)
	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Count(ctx context.Context) (int, error) {
	type countResult struct {
		Total int `json:"total"`
	}
	res, err := surrealdb.Query[[]countResult](ctx, r.db,
		"SELECT count() AS total FROM "+activityTable+" GROUP ALL",
		map[string]any{},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count activity entries: %w", err)
	}
	counts := (*res)[0].Result
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0].Total, nil
}

func (r *ActivityRepository) Page(ctx context.Context, skip, limit int) ([]*model.ActivityEntry, error) {
	res, err := surrealdb.Query[[]activityRecord](ctx, r.db,
		"SELECT * FROM "+activityTable+" ORDER BY timestamp DESC START $start LIMIT $limit",
		map[string]any{"start": skip, "limit": limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to page activity entries: %w", err)
	}

	records := (*res)[0].Result
	entries := make([]*model.ActivityEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].toDomain())
	}
	return entries, nil
}
