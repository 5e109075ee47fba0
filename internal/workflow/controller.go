package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

// ProofStore uploads a validated proof image and returns its reference
type ProofStore interface {
	Upload(ctx context.Context, f *ProofFile) (string, error)
}

// Notifier delivers an advisory message to the acting admin. Fire-and-forget:
// failures must not affect the transition result.
type Notifier interface {
	Notify(ctx context.Context, adminID uuid.UUID, message, severity string)
}

// Events publishes an entity-updated signal for list views to refresh on
type Events interface {
	EntityUpdated(ctx context.Context, entityType string, entityID uuid.UUID, status string)
}

// Controller translates an admin intent into a transition plus its side
// effects. Per entity it is single-flight: a second action on the same
// entity while one is submitting fails fast instead of double-writing.
type Controller struct {
	executor *Executor
	proofs   ProofStore
	activity repository.ActivityLogRepository
	notifier Notifier
	events   Events
	logger   *zap.Logger

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

// NewController creates a new workflow controller
func NewController(executor *Executor, proofs ProofStore, activity repository.ActivityLogRepository, notifier Notifier, events Events, logger *zap.Logger) *Controller {
	return &Controller{
		executor: executor,
		proofs:   proofs,
		activity: activity,
		notifier: notifier,
		events:   events,
		logger:   logger,
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// OrderAction performs an admin action on an order
func (c *Controller) OrderAction(ctx context.Context, actor domain.Actor, orderID uuid.UUID, action Action, p Payload) (*domain.Order, error) {
	if !actor.IsAdmin {
		return nil, &errors.ErrUnauthorized{Message: "admin capability required"}
	}
	if !c.begin(orderID) {
		return nil, &errors.ErrConflict{Message: "an action on this order is already in progress"}
	}
	defer c.finish(orderID)

	p, err := c.uploadProofIfPresent(ctx, p)
	if err != nil {
		return nil, err
	}

	order, err := c.executor.ApplyOrder(ctx, actor.ID, orderID, action, p)
	if err != nil {
		return nil, err
	}

	c.recordActivity(ctx, action, "order", order.ID, actor.ID, map[string]interface{}{
		"order_number":   order.OrderNumber,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	})
	c.notifier.Notify(ctx, actor.ID, fmt.Sprintf("Order %s: %s applied", order.OrderNumber, action), "success")
	c.events.EntityUpdated(ctx, "order", order.ID, string(order.Status))

	return order, nil
}

// RemittanceAction performs an admin action on a remittance
func (c *Controller) RemittanceAction(ctx context.Context, actor domain.Actor, remittanceID uuid.UUID, action Action, p Payload) (*domain.Remittance, error) {
	if !actor.IsAdmin {
		return nil, &errors.ErrUnauthorized{Message: "admin capability required"}
	}
	if !c.begin(remittanceID) {
		return nil, &errors.ErrConflict{Message: "an action on this remittance is already in progress"}
	}
	defer c.finish(remittanceID)

	p, err := c.uploadProofIfPresent(ctx, p)
	if err != nil {
		return nil, err
	}

	remittance, err := c.executor.ApplyRemittance(ctx, actor.ID, remittanceID, action, p)
	if err != nil {
		return nil, err
	}

	c.recordActivity(ctx, action, "remittance", remittance.ID, actor.ID, map[string]interface{}{
		"remittance_number": remittance.RemittanceNumber,
		"status":            remittance.Status,
	})
	c.notifier.Notify(ctx, actor.ID, fmt.Sprintf("Remittance %s: %s applied", remittance.RemittanceNumber, action), "success")
	c.events.EntityUpdated(ctx, "remittance", remittance.ID, string(remittance.Status))

	return remittance, nil
}

// InFlight reports whether an action is currently submitting for the entity
func (c *Controller) InFlight(entityID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[entityID]
	return ok
}

// uploadProofIfPresent validates and uploads an attached proof file, turning
// it into a stored reference on the payload. Validation happens before the
// store is touched.
func (c *Controller) uploadProofIfPresent(ctx context.Context, p Payload) (Payload, error) {
	if p.ProofFile == nil {
		return p, nil
	}
	if err := CheckProofFile(p.ProofFile); err != nil {
		return p, err
	}
	url, err := c.proofs.Upload(ctx, p.ProofFile)
	if err != nil {
		return p, fmt.Errorf("upload proof: %w", err)
	}
	p.ProofURL = url
	p.ProofFile = nil
	return p, nil
}

// recordActivity appends an audit entry. Log failures are swallowed so they
// never mask the transition result.
func (c *Controller) recordActivity(ctx context.Context, action Action, entityType string, entityID, actorID uuid.UUID, metadata map[string]interface{}) {
	entry := &domain.ActivityEntry{
		Action:     string(action),
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Metadata:   metadata,
	}
	if err := c.activity.Create(ctx, entry); err != nil {
		c.logger.Error("Failed to record activity entry",
			zap.Error(err),
			zap.String("action", string(action)),
			zap.String("entity_id", entityID.String()),
		)
	}
}

func (c *Controller) begin(entityID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[entityID]; ok {
		return false
	}
	c.inflight[entityID] = struct{}{}
	return true
}

func (c *Controller) finish(entityID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, entityID)
}
