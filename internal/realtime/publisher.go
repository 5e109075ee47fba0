package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// UpdatesChannel carries entity-updated events for list views
	UpdatesChannel = "admin:updates"
	// NotificationsChannel carries advisory notifications per admin
	NotificationsChannel = "admin:notifications"
)

// Publisher pushes workflow side effects onto Redis pub/sub. Both methods
// are advisory: publish failures are logged and dropped, never returned.
type Publisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPublisher creates a Redis-backed publisher
func NewPublisher(addr string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: logger,
	}
}

// EntityUpdated publishes an entity refresh event
func (p *Publisher) EntityUpdated(ctx context.Context, entityType string, entityID uuid.UUID, status string) {
	payload, err := json.Marshal(map[string]string{
		"entity_type": entityType,
		"entity_id":   entityID.String(),
		"status":      status,
	})
	if err != nil {
		return
	}
	if err := p.client.Publish(ctx, UpdatesChannel, payload).Err(); err != nil {
		p.logger.Warn("Failed to publish entity update", zap.Error(err), zap.String("entity_id", entityID.String()))
	}
}

// Notify publishes an advisory message for the acting admin
func (p *Publisher) Notify(ctx context.Context, adminID uuid.UUID, message, severity string) {
	payload, err := json.Marshal(map[string]string{
		"admin_id": adminID.String(),
		"message":  message,
		"severity": severity,
	})
	if err != nil {
		return
	}
	if err := p.client.Publish(ctx, NotificationsChannel, payload).Err(); err != nil {
		p.logger.Warn("Failed to publish notification", zap.Error(err), zap.String("admin_id", adminID.String()))
	}
}

// Close releases the underlying Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}
