package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminUser represents a back-office user
type AdminUser struct {
	ID           uuid.UUID
	Name         string
	Email        string
	APIKeyHash   string
	APIKeyLookup string // SHA256(apiKey) hex for fast lookup; set on create
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated identity performing a workflow action
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Order represents a purchase of products/combos, possibly bundled with a remittance
type Order struct {
	ID                 uuid.UUID
	OrderNumber        string
	Status             OrderStatus
	PaymentStatus      PaymentStatus
	CustomerName       string
	CustomerPhone      string
	Subtotal           decimal.Decimal
	ShippingCost       decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAmount        decimal.Decimal
	CurrencyCode       string
	OfferCode          *string
	TrackingInfo       *string
	DeliveryProofURL   *string
	CancellationReason *string
	RejectionReason    *string
	PaymentValidatedBy *uuid.UUID
	PaymentValidatedAt *time.Time
	ProcessingBy       *uuid.UUID
	ProcessingAt       *time.Time
	DispatchedBy       *uuid.UUID
	DispatchedAt       *time.Time
	DeliveredBy        *uuid.UUID
	DeliveredAt        *time.Time
	CompletedBy        *uuid.UUID
	CompletedAt        *time.Time
	CancelledBy        *uuid.UUID
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Remittance represents a money-transfer request
type Remittance struct {
	ID                   uuid.UUID
	RemittanceNumber     string
	Status               RemittanceStatus
	DeliveryMethod       DeliveryMethod
	AmountSent           decimal.Decimal
	CurrencySent         string
	AmountToDeliver      decimal.Decimal
	DeliveryCurrency     string
	CommissionTotal      decimal.Decimal
	DiscountAmount       decimal.Decimal
	RecipientName        string
	RecipientPhone       string
	DeliveryProvince     *string
	DeliveryMunicipality *string
	DeliveryAddress      *string
	BankAccountID        *uuid.UUID
	PaymentProofURL      *string
	DeliveryProofURL     *string
	RejectionReason      *string
	CancellationReason   *string
	ValidatedBy          *uuid.UUID
	ValidatedAt          *time.Time
	RejectedBy           *uuid.UUID
	RejectedAt           *time.Time
	ProcessingBy         *uuid.UUID
	ProcessingAt         *time.Time
	DeliveredBy          *uuid.UUID
	DeliveredAt          *time.Time
	CompletedBy          *uuid.UUID
	CompletedAt          *time.Time
	CancelledBy          *uuid.UUID
	CancelledAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ActivityEntry is an append-only audit record of an admin action
type ActivityEntry struct {
	ID         uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Metadata   map[string]interface{} // JSONB
	CreatedAt  time.Time
}

// StatusBucket is one row of the per-status dashboard aggregation
type StatusBucket struct {
	Status string
	Count  int
	Total  decimal.Decimal
}
