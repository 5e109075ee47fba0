package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

// Executor applies a single transition: it re-reads the current status,
// re-validates the edge and its preconditions, then persists the new status
// together with audit metadata in one conditional write. A write that
// matches zero rows after a passing re-read means another admin won the
// race and is reported as ErrConcurrentModification.
type Executor struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewExecutor creates a new transition executor
func NewExecutor(repos *repository.Repositories, logger *zap.Logger) *Executor {
	return &Executor{
		repos:  repos,
		logger: logger,
	}
}

// ApplyOrder applies an action to an order and returns the updated entity
func (e *Executor) ApplyOrder(ctx context.Context, actorID, orderID uuid.UUID, action Action, p Payload) (*domain.Order, error) {
	order, err := e.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if IsPaymentAction(action) {
		return e.applyOrderPayment(ctx, actorID, order, action, p)
	}

	rule, ok := OrderRule(action, order.Status)
	if !ok {
		return nil, &errors.ErrInvalidTransition{
			Entity: "order",
			From:   string(order.Status),
			Action: string(action),
		}
	}

	// Payment gates the pending → processing edge
	if action == ActionStartProcessing && order.PaymentStatus != domain.PaymentStatusValidated {
		return nil, &errors.ErrInvalidTransition{
			Entity: "order",
			From:   string(order.Status),
			Action: string(action),
			Detail: "payment must be validated first",
		}
	}

	if err := CheckPreconditions(rule, p, order.DeliveryProofURL); err != nil {
		return nil, err
	}

	w := repository.OrderTransitionWrite{
		From:    order.Status,
		To:      domain.OrderStatus(rule.To),
		ActorID: actorID,
		At:      time.Now(),
	}
	if rule.NeedsTracking {
		tracking := strings.TrimSpace(p.TrackingInfo)
		w.TrackingInfo = &tracking
	}
	if rule.NeedsProof && strings.TrimSpace(p.ProofURL) != "" {
		proofURL := strings.TrimSpace(p.ProofURL)
		w.DeliveryProofURL = &proofURL
	}
	if action == ActionCancel {
		reason := strings.TrimSpace(p.Reason)
		w.CancellationReason = &reason
	}

	applied, err := e.repos.Order.ApplyTransition(ctx, orderID, w)
	if err != nil {
		return nil, err
	}
	if !applied {
		e.logger.Warn("Order transition lost a race",
			zap.String("order_id", orderID.String()),
			zap.String("action", string(action)),
		)
		return nil, &errors.ErrConcurrentModification{Entity: "order", ID: orderID.String()}
	}

	return e.repos.Order.GetByID(ctx, orderID)
}

func (e *Executor) applyOrderPayment(ctx context.Context, actorID uuid.UUID, order *domain.Order, action Action, p Payload) (*domain.Order, error) {
	rule, ok := OrderPaymentRule(action, order.PaymentStatus)
	if !ok {
		return nil, &errors.ErrInvalidTransition{
			Entity: "order",
			From:   string(order.PaymentStatus),
			Action: string(action),
		}
	}

	if err := CheckPreconditions(rule, p, order.DeliveryProofURL); err != nil {
		return nil, err
	}

	w := repository.OrderPaymentWrite{
		From:    order.PaymentStatus,
		To:      domain.PaymentStatus(rule.To),
		ActorID: actorID,
		At:      time.Now(),
	}
	if action == ActionRejectPayment {
		reason := strings.TrimSpace(p.Reason)
		w.RejectionReason = &reason
	}

	applied, err := e.repos.Order.ApplyPaymentTransition(ctx, order.ID, w)
	if err != nil {
		return nil, err
	}
	if !applied {
		e.logger.Warn("Order payment transition lost a race",
			zap.String("order_id", order.ID.String()),
			zap.String("action", string(action)),
		)
		return nil, &errors.ErrConcurrentModification{Entity: "order", ID: order.ID.String()}
	}

	return e.repos.Order.GetByID(ctx, order.ID)
}

// ApplyRemittance applies an action to a remittance and returns the updated entity
func (e *Executor) ApplyRemittance(ctx context.Context, actorID, remittanceID uuid.UUID, action Action, p Payload) (*domain.Remittance, error) {
	remittance, err := e.repos.Remittance.GetByID(ctx, remittanceID)
	if err != nil {
		return nil, err
	}

	rule, ok := RemittanceRule(action, remittance.Status)
	if !ok {
		return nil, &errors.ErrInvalidTransition{
			Entity: "remittance",
			From:   string(remittance.Status),
			Action: string(action),
		}
	}

	if err := CheckPreconditions(rule, p, remittance.DeliveryProofURL); err != nil {
		return nil, err
	}

	w := repository.RemittanceTransitionWrite{
		From:    remittance.Status,
		To:      domain.RemittanceStatus(rule.To),
		ActorID: actorID,
		At:      time.Now(),
	}
	if rule.NeedsProof && strings.TrimSpace(p.ProofURL) != "" {
		proofURL := strings.TrimSpace(p.ProofURL)
		w.DeliveryProofURL = &proofURL
	}
	switch action {
	case ActionRejectPayment:
		reason := strings.TrimSpace(p.Reason)
		w.RejectionReason = &reason
	case ActionCancel:
		reason := strings.TrimSpace(p.Reason)
		w.CancellationReason = &reason
	}

	applied, err := e.repos.Remittance.ApplyTransition(ctx, remittanceID, w)
	if err != nil {
		return nil, err
	}
	if !applied {
		e.logger.Warn("Remittance transition lost a race",
			zap.String("remittance_id", remittanceID.String()),
			zap.String("action", string(action)),
		)
		return nil, &errors.ErrConcurrentModification{Entity: "remittance", ID: remittanceID.String()}
	}

	return e.repos.Remittance.GetByID(ctx, remittanceID)
}
