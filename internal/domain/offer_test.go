package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestOfferCanApply(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	base := Offer{
		Code:          "SPRING10",
		DiscountType:  DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		StartsAt:      now.Add(-24 * time.Hour),
		EndsAt:        now.Add(24 * time.Hour),
		IsActive:      true,
	}

	tests := []struct {
		name     string
		mutate   func(o *Offer)
		userUses int
		want     bool
	}{
		{name: "active within window", mutate: func(o *Offer) {}, want: true},
		{name: "inactive", mutate: func(o *Offer) { o.IsActive = false }, want: false},
		{name: "not started yet", mutate: func(o *Offer) { o.StartsAt = now.Add(time.Hour) }, want: false},
		{name: "expired", mutate: func(o *Offer) { o.EndsAt = now.Add(-time.Hour) }, want: false},
		{name: "global cap reached", mutate: func(o *Offer) {
			o.MaxUses = intPtr(100)
			o.UsedCount = 100
		}, want: false},
		{name: "global cap not reached", mutate: func(o *Offer) {
			o.MaxUses = intPtr(100)
			o.UsedCount = 99
		}, want: true},
		{name: "per-user cap reached", mutate: func(o *Offer) { o.MaxUsesPerUser = intPtr(2) }, userUses: 2, want: false},
		{name: "per-user cap not reached", mutate: func(o *Offer) { o.MaxUsesPerUser = intPtr(2) }, userUses: 1, want: true},
		{name: "nil caps mean unlimited", mutate: func(o *Offer) { o.UsedCount = 100000 }, userUses: 50, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base
			tt.mutate(&o)
			assert.Equal(t, tt.want, o.CanApply(now, tt.userUses))
		})
	}
}

func TestOfferDiscountFor(t *testing.T) {
	tests := []struct {
		name  string
		offer Offer
		total string
		want  string
	}{
		{
			name:  "percentage",
			offer: Offer{DiscountType: DiscountTypePercentage, DiscountValue: decimal.NewFromInt(10)},
			total: "200.00",
			want:  "20",
		},
		{
			name:  "fixed",
			offer: Offer{DiscountType: DiscountTypeFixed, DiscountValue: decimal.NewFromInt(15)},
			total: "200.00",
			want:  "15",
		},
		{
			name:  "fixed capped at total",
			offer: Offer{DiscountType: DiscountTypeFixed, DiscountValue: decimal.NewFromInt(50)},
			total: "30.00",
			want:  "30.00",
		},
		{
			name:  "unknown type yields zero",
			offer: Offer{DiscountType: "bogus", DiscountValue: decimal.NewFromInt(50)},
			total: "30.00",
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			got := tt.offer.DiscountFor(total)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}
