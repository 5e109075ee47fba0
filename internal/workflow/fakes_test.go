package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

// In-memory repositories with the same conditional-write semantics as the
// SQL layer: a transition only applies when the stored status still matches
// the expected From.

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
}

func (r *fakeOrderRepo) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if status == nil || o.Status == *status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ApplyTransition(ctx context.Context, id uuid.UUID, w repository.OrderTransitionWrite) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != w.From {
		return false, nil
	}
	o.Status = w.To
	if w.TrackingInfo != nil {
		o.TrackingInfo = w.TrackingInfo
	}
	if w.DeliveryProofURL != nil {
		o.DeliveryProofURL = w.DeliveryProofURL
	}
	if w.CancellationReason != nil {
		o.CancellationReason = w.CancellationReason
	}
	at := w.At
	actor := w.ActorID
	switch w.To {
	case domain.OrderStatusProcessing:
		o.ProcessingBy, o.ProcessingAt = &actor, &at
	case domain.OrderStatusDispatched:
		o.DispatchedBy, o.DispatchedAt = &actor, &at
	case domain.OrderStatusDelivered:
		o.DeliveredBy, o.DeliveredAt = &actor, &at
	case domain.OrderStatusCompleted:
		o.CompletedBy, o.CompletedAt = &actor, &at
	case domain.OrderStatusCancelled:
		o.CancelledBy, o.CancelledAt = &actor, &at
	}
	return true, nil
}

func (r *fakeOrderRepo) ApplyPaymentTransition(ctx context.Context, id uuid.UUID, w repository.OrderPaymentWrite) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.PaymentStatus != w.From {
		return false, nil
	}
	o.PaymentStatus = w.To
	if w.RejectionReason != nil {
		o.RejectionReason = w.RejectionReason
	}
	if w.To == domain.PaymentStatusValidated {
		at := w.At
		actor := w.ActorID
		o.PaymentValidatedBy, o.PaymentValidatedAt = &actor, &at
	}
	return true, nil
}

func (r *fakeOrderRepo) StatsByStatus(ctx context.Context) ([]*domain.StatusBucket, error) {
	return nil, nil
}

type fakeRemittanceRepo struct {
	mu          sync.Mutex
	remittances map[uuid.UUID]*domain.Remittance
}

func newFakeRemittanceRepo(remittances ...*domain.Remittance) *fakeRemittanceRepo {
	r := &fakeRemittanceRepo{remittances: make(map[uuid.UUID]*domain.Remittance)}
	for _, rem := range remittances {
		r.remittances[rem.ID] = rem
	}
	return r
}

func (r *fakeRemittanceRepo) Create(ctx context.Context, remittance *domain.Remittance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remittances[remittance.ID] = remittance
	return nil
}

func (r *fakeRemittanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Remittance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.remittances[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "remittance", ID: id.String()}
	}
	cp := *rem
	return &cp, nil
}

func (r *fakeRemittanceRepo) GetByNumber(ctx context.Context, remittanceNumber string) (*domain.Remittance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rem := range r.remittances {
		if rem.RemittanceNumber == remittanceNumber {
			cp := *rem
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "remittance", ID: remittanceNumber}
}

func (r *fakeRemittanceRepo) List(ctx context.Context, status *domain.RemittanceStatus, limit, offset int) ([]*domain.Remittance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Remittance
	for _, rem := range r.remittances {
		if status == nil || rem.Status == *status {
			cp := *rem
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRemittanceRepo) ApplyTransition(ctx context.Context, id uuid.UUID, w repository.RemittanceTransitionWrite) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.remittances[id]
	if !ok || rem.Status != w.From {
		return false, nil
	}
	rem.Status = w.To
	if w.DeliveryProofURL != nil {
		rem.DeliveryProofURL = w.DeliveryProofURL
	}
	if w.RejectionReason != nil {
		rem.RejectionReason = w.RejectionReason
	}
	if w.CancellationReason != nil {
		rem.CancellationReason = w.CancellationReason
	}
	at := w.At
	actor := w.ActorID
	switch w.To {
	case domain.RemittanceStatusPaymentValidated:
		rem.ValidatedBy, rem.ValidatedAt = &actor, &at
	case domain.RemittanceStatusPaymentRejected:
		rem.RejectedBy, rem.RejectedAt = &actor, &at
	case domain.RemittanceStatusProcessing:
		rem.ProcessingBy, rem.ProcessingAt = &actor, &at
	case domain.RemittanceStatusDelivered:
		rem.DeliveredBy, rem.DeliveredAt = &actor, &at
	case domain.RemittanceStatusCompleted:
		rem.CompletedBy, rem.CompletedAt = &actor, &at
	case domain.RemittanceStatusCancelled:
		rem.CancelledBy, rem.CancelledAt = &actor, &at
	}
	return true, nil
}

func (r *fakeRemittanceRepo) StatsByStatus(ctx context.Context) ([]*domain.StatusBucket, error) {
	return nil, nil
}

type fakeActivityLog struct {
	mu      sync.Mutex
	entries []*domain.ActivityEntry
	failErr error
}

func (l *fakeActivityLog) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failErr != nil {
		return l.failErr
	}
	l.entries = append(l.entries, entry)
	return nil
}

func (l *fakeActivityLog) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*domain.ActivityEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.ActivityEntry
	for _, e := range l.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProofStore struct {
	mu      sync.Mutex
	uploads int
	url     string
	failErr error
}

func (s *fakeProofStore) Upload(ctx context.Context, f *ProofFile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	if s.failErr != nil {
		return "", s.failErr
	}
	if s.url == "" {
		return "/uploads/" + f.Name, nil
	}
	return s.url, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(ctx context.Context, adminID uuid.UUID, message, severity string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

type fakeEvents struct {
	mu      sync.Mutex
	updates []string
}

func (e *fakeEvents) EntityUpdated(ctx context.Context, entityType string, entityID uuid.UUID, status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updates = append(e.updates, entityType+":"+status)
}
