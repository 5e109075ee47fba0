package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType is how an offer's discount value is interpreted
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is valid
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// Offer represents a coupon code with usage caps and a validity window
type Offer struct {
	ID             uuid.UUID
	Code           string
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	MaxUses        *int // nil means unlimited
	MaxUsesPerUser *int
	UsedCount      int
	StartsAt       time.Time
	EndsAt         time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanApply reports whether the offer is eligible at the given time for a
// user who has already used it userUses times.
func (o *Offer) CanApply(now time.Time, userUses int) bool {
	if !o.IsActive {
		return false
	}
	if now.Before(o.StartsAt) || now.After(o.EndsAt) {
		return false
	}
	if o.MaxUses != nil && o.UsedCount >= *o.MaxUses {
		return false
	}
	if o.MaxUsesPerUser != nil && userUses >= *o.MaxUsesPerUser {
		return false
	}
	return true
}

// DiscountFor returns the discount amount for the given total. The result
// never exceeds the total.
func (o *Offer) DiscountFor(total decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch o.DiscountType {
	case DiscountTypePercentage:
		discount = total.Mul(o.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountTypeFixed:
		discount = o.DiscountValue
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(total) {
		return total
	}
	return discount
}
