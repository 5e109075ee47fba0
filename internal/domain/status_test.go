package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusIsValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusDispatched,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	for _, s := range []OrderStatus{"", "shipped", "PENDING", "done"} {
		assert.False(t, s.IsValid(), "expected %q to be invalid", s)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		terminal bool
	}{
		{OrderStatusPending, false},
		{OrderStatusProcessing, false},
		{OrderStatusDispatched, false},
		{OrderStatusDelivered, false},
		{OrderStatusCompleted, true},
		{OrderStatusCancelled, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.terminal, tt.status.IsTerminal(), "status %q", tt.status)
	}
}

func TestPaymentStatusIsValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentStatusPending, PaymentStatusValidated, PaymentStatusRejected} {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}
	assert.False(t, PaymentStatus("paid").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}

func TestRemittanceStatusIsValid(t *testing.T) {
	valid := []RemittanceStatus{
		RemittanceStatusPaymentPending, RemittanceStatusProofUploaded,
		RemittanceStatusPaymentValidated, RemittanceStatusPaymentRejected,
		RemittanceStatusProcessing, RemittanceStatusDelivered,
		RemittanceStatusCompleted, RemittanceStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}
	assert.False(t, RemittanceStatus("pending").IsValid())
}

func TestRemittanceStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   RemittanceStatus
		terminal bool
	}{
		{RemittanceStatusPaymentPending, false},
		{RemittanceStatusProofUploaded, false},
		{RemittanceStatusPaymentValidated, false},
		{RemittanceStatusPaymentRejected, true},
		{RemittanceStatusProcessing, false},
		{RemittanceStatusDelivered, false},
		{RemittanceStatusCompleted, true},
		{RemittanceStatusCancelled, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.terminal, tt.status.IsTerminal(), "status %q", tt.status)
	}
}

func TestDeliveryMethodIsValid(t *testing.T) {
	for _, m := range []DeliveryMethod{DeliveryMethodCash, DeliveryMethodBankTransfer, DeliveryMethodCard, DeliveryMethodMobileWallet} {
		assert.True(t, m.IsValid(), "expected %q to be valid", m)
	}
	assert.False(t, DeliveryMethod("crypto").IsValid())
}
