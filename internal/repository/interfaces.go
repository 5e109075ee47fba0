package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
)

// OrderTransitionWrite carries everything a single order status transition
// persists: the expected (from, to) pair, audit metadata and any
// transition-specific fields. The write is conditional on the stored status
// still being From.
type OrderTransitionWrite struct {
	From               domain.OrderStatus
	To                 domain.OrderStatus
	ActorID            uuid.UUID
	At                 time.Time
	TrackingInfo       *string
	DeliveryProofURL   *string
	CancellationReason *string
}

// OrderPaymentWrite is the payment-status counterpart of OrderTransitionWrite
type OrderPaymentWrite struct {
	From            domain.PaymentStatus
	To              domain.PaymentStatus
	ActorID         uuid.UUID
	At              time.Time
	RejectionReason *string
}

// RemittanceTransitionWrite carries a single remittance status transition
type RemittanceTransitionWrite struct {
	From               domain.RemittanceStatus
	To                 domain.RemittanceStatus
	ActorID            uuid.UUID
	At                 time.Time
	DeliveryProofURL   *string
	RejectionReason    *string
	CancellationReason *string
}

// AdminUserRepository defines admin user data access methods
type AdminUserRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) error
	List(ctx context.Context) ([]*domain.AdminUser, error)
}

// OrderRepository defines order data access methods. ApplyTransition and
// ApplyPaymentTransition are conditional single-statement writes: they
// return false when no row matched the expected current status.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, w OrderTransitionWrite) (bool, error)
	ApplyPaymentTransition(ctx context.Context, id uuid.UUID, w OrderPaymentWrite) (bool, error)
	StatsByStatus(ctx context.Context) ([]*domain.StatusBucket, error)
}

// RemittanceRepository defines remittance data access methods
type RemittanceRepository interface {
	Create(ctx context.Context, remittance *domain.Remittance) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Remittance, error)
	GetByNumber(ctx context.Context, remittanceNumber string) (*domain.Remittance, error)
	List(ctx context.Context, status *domain.RemittanceStatus, limit, offset int) ([]*domain.Remittance, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, w RemittanceTransitionWrite) (bool, error)
	StatsByStatus(ctx context.Context) ([]*domain.StatusBucket, error)
}

// OfferRepository defines coupon/offer data access methods
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	GetByCode(ctx context.Context, code string) (*domain.Offer, error)
	List(ctx context.Context) ([]*domain.Offer, error)
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// ActivityLogRepository defines append-only audit log access
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*domain.ActivityEntry, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	AdminUser   AdminUserRepository
	Order       OrderRepository
	Remittance  RemittanceRepository
	Offer       OfferRepository
	ActivityLog ActivityLogRepository
}
