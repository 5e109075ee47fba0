package workflow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

func newTestExecutor(orderRepo *fakeOrderRepo, remittanceRepo *fakeRemittanceRepo) *Executor {
	repos := &repository.Repositories{
		Order:      orderRepo,
		Remittance: remittanceRepo,
	}
	return NewExecutor(repos, zap.NewNop())
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-1001",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		CustomerName:  "Maria Perez",
	}
}

func processingRemittance() *domain.Remittance {
	return &domain.Remittance{
		ID:               uuid.New(),
		RemittanceNumber: "REM-2001",
		Status:           domain.RemittanceStatusProcessing,
		DeliveryMethod:   domain.DeliveryMethodCash,
		RecipientName:    "Jose Garcia",
	}
}

func TestApplyOrderValidatePayment(t *testing.T) {
	order := pendingOrder()
	repo := newFakeOrderRepo(order)
	exec := newTestExecutor(repo, newFakeRemittanceRepo())
	actorID := uuid.New()

	updated, err := exec.ApplyOrder(context.Background(), actorID, order.ID, ActionValidatePayment, Payload{})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusValidated, updated.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPending, updated.Status)
	require.NotNil(t, updated.PaymentValidatedBy)
	assert.Equal(t, actorID, *updated.PaymentValidatedBy)
	assert.NotNil(t, updated.PaymentValidatedAt)
}

func TestApplyOrderStartProcessingRequiresValidatedPayment(t *testing.T) {
	order := pendingOrder()
	repo := newFakeOrderRepo(order)
	exec := newTestExecutor(repo, newFakeRemittanceRepo())

	_, err := exec.ApplyOrder(context.Background(), uuid.New(), order.ID, ActionStartProcessing, Payload{})
	var invalid *errors.ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "payment must be validated first", invalid.Detail)

	// entity unchanged after rejection
	stored, _ := repo.GetByID(context.Background(), order.ID)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
}

func TestApplyOrderFullLifecycle(t *testing.T) {
	order := pendingOrder()
	repo := newFakeOrderRepo(order)
	exec := newTestExecutor(repo, newFakeRemittanceRepo())
	ctx := context.Background()
	actorID := uuid.New()

	_, err := exec.ApplyOrder(ctx, actorID, order.ID, ActionValidatePayment, Payload{})
	require.NoError(t, err)

	updated, err := exec.ApplyOrder(ctx, actorID, order.ID, ActionStartProcessing, Payload{})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)

	updated, err = exec.ApplyOrder(ctx, actorID, order.ID, ActionDispatch, Payload{TrackingInfo: "DHL 987"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDispatched, updated.Status)
	require.NotNil(t, updated.TrackingInfo)
	assert.Equal(t, "DHL 987", *updated.TrackingInfo)

	updated, err = exec.ApplyOrder(ctx, actorID, order.ID, ActionMarkDelivered, Payload{ProofURL: "/uploads/proof.jpg"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveryProofURL)
	assert.Equal(t, "/uploads/proof.jpg", *updated.DeliveryProofURL)

	updated, err = exec.ApplyOrder(ctx, actorID, order.ID, ActionComplete, Payload{})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedBy)
	assert.Equal(t, actorID, *updated.CompletedBy)
}

func TestApplyOrderInvalidTransitionLeavesEntityUnchanged(t *testing.T) {
	order := pendingOrder()
	repo := newFakeOrderRepo(order)
	exec := newTestExecutor(repo, newFakeRemittanceRepo())

	_, err := exec.ApplyOrder(context.Background(), uuid.New(), order.ID, ActionComplete, Payload{})
	var invalid *errors.ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "order", invalid.Entity)
	assert.Equal(t, string(domain.OrderStatusPending), invalid.From)

	stored, _ := repo.GetByID(context.Background(), order.ID)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.Nil(t, stored.CompletedBy)
}

func TestApplyOrderMissingInputs(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("dispatch without tracking", func(t *testing.T) {
		order := pendingOrder()
		order.Status = domain.OrderStatusProcessing
		order.PaymentStatus = domain.PaymentStatusValidated
		exec := newTestExecutor(newFakeOrderRepo(order), newFakeRemittanceRepo())

		_, err := exec.ApplyOrder(ctx, actorID, order.ID, ActionDispatch, Payload{})
		var v *errors.ErrValidation
		require.ErrorAs(t, err, &v)
	})

	t.Run("delivery without proof", func(t *testing.T) {
		order := pendingOrder()
		order.Status = domain.OrderStatusDispatched
		order.PaymentStatus = domain.PaymentStatusValidated
		exec := newTestExecutor(newFakeOrderRepo(order), newFakeRemittanceRepo())

		_, err := exec.ApplyOrder(ctx, actorID, order.ID, ActionMarkDelivered, Payload{})
		var missing *errors.ErrMissingProof
		require.ErrorAs(t, err, &missing)
	})

	t.Run("cancel without reason", func(t *testing.T) {
		order := pendingOrder()
		exec := newTestExecutor(newFakeOrderRepo(order), newFakeRemittanceRepo())

		_, err := exec.ApplyOrder(ctx, actorID, order.ID, ActionCancel, Payload{})
		var missing *errors.ErrMissingReason
		require.ErrorAs(t, err, &missing)
	})

	t.Run("reject payment without reason", func(t *testing.T) {
		order := pendingOrder()
		exec := newTestExecutor(newFakeOrderRepo(order), newFakeRemittanceRepo())

		_, err := exec.ApplyOrder(ctx, actorID, order.ID, ActionRejectPayment, Payload{})
		var missing *errors.ErrMissingReason
		require.ErrorAs(t, err, &missing)
	})
}

func TestApplyOrderCancelRecordsReason(t *testing.T) {
	order := pendingOrder()
	repo := newFakeOrderRepo(order)
	exec := newTestExecutor(repo, newFakeRemittanceRepo())
	actorID := uuid.New()

	updated, err := exec.ApplyOrder(context.Background(), actorID, order.ID, ActionCancel, Payload{Reason: "  out of stock  "})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
	require.NotNil(t, updated.CancellationReason)
	assert.Equal(t, "out of stock", *updated.CancellationReason)
	require.NotNil(t, updated.CancelledBy)
	assert.Equal(t, actorID, *updated.CancelledBy)
}

func TestApplyOrderLostRaceReturnsConcurrentModification(t *testing.T) {
	order := pendingOrder()
	repo := newFakeOrderRepo(order)
	ctx := context.Background()

	// another admin cancels between the read and the write
	raced := &racingOrderRepo{fakeOrderRepo: repo, interfere: func() {
		repo.mu.Lock()
		repo.orders[order.ID].Status = domain.OrderStatusCancelled
		repo.mu.Unlock()
	}}
	exec := newTestExecutorWithOrderRepo(raced)

	_, err := exec.ApplyOrder(ctx, uuid.New(), order.ID, ActionCancel, Payload{Reason: "late"})
	var concurrent *errors.ErrConcurrentModification
	require.ErrorAs(t, err, &concurrent)
	assert.Equal(t, "order", concurrent.Entity)
}

// racingOrderRepo mutates the stored entity after GetByID returns, simulating
// a concurrent admin winning the write.
type racingOrderRepo struct {
	*fakeOrderRepo
	interfere func()
	fired     bool
}

func (r *racingOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := r.fakeOrderRepo.GetByID(ctx, id)
	if err == nil && !r.fired {
		r.fired = true
		r.interfere()
	}
	return o, err
}

func newTestExecutorWithOrderRepo(repo repository.OrderRepository) *Executor {
	repos := &repository.Repositories{
		Order:      repo,
		Remittance: newFakeRemittanceRepo(),
	}
	return NewExecutor(repos, zap.NewNop())
}

func TestApplyRemittanceConfirmDelivery(t *testing.T) {
	rem := processingRemittance()
	repo := newFakeRemittanceRepo(rem)
	exec := newTestExecutor(newFakeOrderRepo(), repo)
	actorID := uuid.New()

	updated, err := exec.ApplyRemittance(context.Background(), actorID, rem.ID, ActionConfirmDelivery, Payload{ProofURL: "/uploads/cash.jpg"})
	require.NoError(t, err)
	assert.Equal(t, domain.RemittanceStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveryProofURL)
	assert.Equal(t, "/uploads/cash.jpg", *updated.DeliveryProofURL)
	require.NotNil(t, updated.DeliveredBy)
	assert.Equal(t, actorID, *updated.DeliveredBy)
}

func TestApplyRemittanceConfirmDeliveryWithoutProof(t *testing.T) {
	rem := processingRemittance()
	exec := newTestExecutor(newFakeOrderRepo(), newFakeRemittanceRepo(rem))

	_, err := exec.ApplyRemittance(context.Background(), uuid.New(), rem.ID, ActionConfirmDelivery, Payload{})
	var missing *errors.ErrMissingProof
	require.ErrorAs(t, err, &missing)
}

func TestApplyRemittancePaymentPhase(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("validate proof-uploaded payment", func(t *testing.T) {
		rem := processingRemittance()
		rem.Status = domain.RemittanceStatusProofUploaded
		exec := newTestExecutor(newFakeOrderRepo(), newFakeRemittanceRepo(rem))

		updated, err := exec.ApplyRemittance(ctx, actorID, rem.ID, ActionValidatePayment, Payload{})
		require.NoError(t, err)
		assert.Equal(t, domain.RemittanceStatusPaymentValidated, updated.Status)
		require.NotNil(t, updated.ValidatedBy)
		assert.Equal(t, actorID, *updated.ValidatedBy)
	})

	t.Run("reject payment records reason", func(t *testing.T) {
		rem := processingRemittance()
		rem.Status = domain.RemittanceStatusProofUploaded
		exec := newTestExecutor(newFakeOrderRepo(), newFakeRemittanceRepo(rem))

		updated, err := exec.ApplyRemittance(ctx, actorID, rem.ID, ActionRejectPayment, Payload{Reason: "proof unreadable"})
		require.NoError(t, err)
		assert.Equal(t, domain.RemittanceStatusPaymentRejected, updated.Status)
		require.NotNil(t, updated.RejectionReason)
		assert.Equal(t, "proof unreadable", *updated.RejectionReason)
	})

	t.Run("cannot validate before proof uploaded", func(t *testing.T) {
		rem := processingRemittance()
		rem.Status = domain.RemittanceStatusPaymentPending
		exec := newTestExecutor(newFakeOrderRepo(), newFakeRemittanceRepo(rem))

		_, err := exec.ApplyRemittance(ctx, actorID, rem.ID, ActionValidatePayment, Payload{})
		var invalid *errors.ErrInvalidTransition
		require.ErrorAs(t, err, &invalid)
	})
}

func TestApplyRemittanceTerminalStatusRejectsAllActions(t *testing.T) {
	rem := processingRemittance()
	rem.Status = domain.RemittanceStatusCompleted
	exec := newTestExecutor(newFakeOrderRepo(), newFakeRemittanceRepo(rem))
	ctx := context.Background()

	for _, action := range []Action{ActionValidatePayment, ActionStartProcessing, ActionConfirmDelivery, ActionComplete, ActionCancel} {
		_, err := exec.ApplyRemittance(ctx, uuid.New(), rem.ID, action, Payload{Reason: "x", ProofURL: "y"})
		var invalid *errors.ErrInvalidTransition
		require.ErrorAs(t, err, &invalid, "action %s", action)
	}
}

func TestApplyOrderNotFound(t *testing.T) {
	exec := newTestExecutor(newFakeOrderRepo(), newFakeRemittanceRepo())

	_, err := exec.ApplyOrder(context.Background(), uuid.New(), uuid.New(), ActionComplete, Payload{})
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}
