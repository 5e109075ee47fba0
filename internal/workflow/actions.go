package workflow

import (
	"github.com/jtheoden/papuenvios-sub001/internal/domain"
)

// Action is an admin-initiated workflow intent
type Action string

const (
	ActionValidatePayment Action = "validate_payment"
	ActionRejectPayment   Action = "reject_payment"
	ActionStartProcessing Action = "start_processing"
	ActionDispatch        Action = "dispatch"
	ActionMarkDelivered   Action = "mark_delivered"
	ActionConfirmDelivery Action = "confirm_delivery"
	ActionComplete        Action = "complete"
	ActionCancel          Action = "cancel"
)

// Rule is one row of a transition table: the legal (from, to) edge an
// action drives, plus the inputs the transition requires. Tables are flat
// and enumerable on purpose; adding a state means adding rows here.
type Rule struct {
	Action        Action
	From          string
	To            string
	NeedsReason   bool
	NeedsTracking bool
	NeedsProof    bool
}

// orderRules is the order status transition table. The pending → processing
// edge is additionally gated on payment_status = validated; the executor
// enforces that gate because it needs the entity, not just the statuses.
var orderRules = []Rule{
	{Action: ActionStartProcessing, From: string(domain.OrderStatusPending), To: string(domain.OrderStatusProcessing)},
	{Action: ActionDispatch, From: string(domain.OrderStatusProcessing), To: string(domain.OrderStatusDispatched), NeedsTracking: true},
	{Action: ActionMarkDelivered, From: string(domain.OrderStatusDispatched), To: string(domain.OrderStatusDelivered), NeedsProof: true},
	{Action: ActionComplete, From: string(domain.OrderStatusDelivered), To: string(domain.OrderStatusCompleted)},
	{Action: ActionCancel, From: string(domain.OrderStatusPending), To: string(domain.OrderStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.OrderStatusProcessing), To: string(domain.OrderStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.OrderStatusDispatched), To: string(domain.OrderStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.OrderStatusDelivered), To: string(domain.OrderStatusCancelled), NeedsReason: true},
}

// orderPaymentRules is the order payment-status transition table
var orderPaymentRules = []Rule{
	{Action: ActionValidatePayment, From: string(domain.PaymentStatusPending), To: string(domain.PaymentStatusValidated)},
	{Action: ActionRejectPayment, From: string(domain.PaymentStatusPending), To: string(domain.PaymentStatusRejected), NeedsReason: true},
}

// remittanceRules is the remittance status transition table
var remittanceRules = []Rule{
	{Action: ActionValidatePayment, From: string(domain.RemittanceStatusProofUploaded), To: string(domain.RemittanceStatusPaymentValidated)},
	{Action: ActionRejectPayment, From: string(domain.RemittanceStatusProofUploaded), To: string(domain.RemittanceStatusPaymentRejected), NeedsReason: true},
	{Action: ActionStartProcessing, From: string(domain.RemittanceStatusPaymentValidated), To: string(domain.RemittanceStatusProcessing)},
	{Action: ActionConfirmDelivery, From: string(domain.RemittanceStatusProcessing), To: string(domain.RemittanceStatusDelivered), NeedsProof: true},
	{Action: ActionComplete, From: string(domain.RemittanceStatusDelivered), To: string(domain.RemittanceStatusCompleted)},
	{Action: ActionCancel, From: string(domain.RemittanceStatusPaymentPending), To: string(domain.RemittanceStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.RemittanceStatusProofUploaded), To: string(domain.RemittanceStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.RemittanceStatusPaymentValidated), To: string(domain.RemittanceStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.RemittanceStatusProcessing), To: string(domain.RemittanceStatusCancelled), NeedsReason: true},
	{Action: ActionCancel, From: string(domain.RemittanceStatusDelivered), To: string(domain.RemittanceStatusCancelled), NeedsReason: true},
}

func findRule(rules []Rule, action Action, from string) (Rule, bool) {
	for _, r := range rules {
		if r.Action == action && r.From == from {
			return r, true
		}
	}
	return Rule{}, false
}

// OrderRule looks up the order transition table
func OrderRule(action Action, from domain.OrderStatus) (Rule, bool) {
	return findRule(orderRules, action, string(from))
}

// OrderPaymentRule looks up the order payment transition table
func OrderPaymentRule(action Action, from domain.PaymentStatus) (Rule, bool) {
	return findRule(orderPaymentRules, action, string(from))
}

// RemittanceRule looks up the remittance transition table
func RemittanceRule(action Action, from domain.RemittanceStatus) (Rule, bool) {
	return findRule(remittanceRules, action, string(from))
}

// IsPaymentAction reports whether the action targets payment status rather
// than fulfillment status (orders keep the two in separate columns)
func IsPaymentAction(action Action) bool {
	return action == ActionValidatePayment || action == ActionRejectPayment
}
