package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
)

type activityLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *sql.DB, logger *zap.Logger) *activityLogRepository {
	return &activityLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (id, action, entity_type, entity_id, actor_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}

	metadataJSON := []byte("{}")
	if entry.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.ActorID,
		metadataJSON,
		entry.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create activity entry", zap.Error(err))
		return err
	}

	return nil
}

func (r *activityLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*domain.ActivityEntry, error) {
	query := `
		SELECT id, action, entity_type, entity_id, actor_id, metadata, created_at
		FROM activity_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		r.logger.Error("Failed to list activity entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		var metadataJSON []byte

		err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.ActorID,
			&metadataJSON,
			&entry.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, err
			}
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
