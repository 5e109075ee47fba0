package domain

// OrderStatus tracks the fulfillment lifecycle of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDispatched,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PaymentStatus tracks payment validation on an order, independent of fulfillment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusValidated PaymentStatus = "validated"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusValidated, PaymentStatusRejected:
		return true
	}
	return false
}

// RemittanceStatus tracks a remittance from payment through delivery.
// Unlike orders, payment validation and delivery share a single status column.
type RemittanceStatus string

const (
	RemittanceStatusPaymentPending   RemittanceStatus = "payment_pending"
	RemittanceStatusProofUploaded    RemittanceStatus = "payment_proof_uploaded"
	RemittanceStatusPaymentValidated RemittanceStatus = "payment_validated"
	RemittanceStatusPaymentRejected  RemittanceStatus = "payment_rejected"
	RemittanceStatusProcessing       RemittanceStatus = "processing"
	RemittanceStatusDelivered        RemittanceStatus = "delivered"
	RemittanceStatusCompleted        RemittanceStatus = "completed"
	RemittanceStatusCancelled        RemittanceStatus = "cancelled"
)

// IsValid checks if the remittance status is valid
func (s RemittanceStatus) IsValid() bool {
	switch s {
	case RemittanceStatusPaymentPending, RemittanceStatusProofUploaded,
		RemittanceStatusPaymentValidated, RemittanceStatusPaymentRejected,
		RemittanceStatusProcessing, RemittanceStatusDelivered,
		RemittanceStatusCompleted, RemittanceStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
// A rejected payment ends the remittance; the sender must create a new one.
func (s RemittanceStatus) IsTerminal() bool {
	switch s {
	case RemittanceStatusPaymentRejected, RemittanceStatusCompleted, RemittanceStatusCancelled:
		return true
	}
	return false
}

// DeliveryMethod is how the recipient receives the remitted funds
type DeliveryMethod string

const (
	DeliveryMethodCash         DeliveryMethod = "cash"
	DeliveryMethodBankTransfer DeliveryMethod = "bank_transfer"
	DeliveryMethodCard         DeliveryMethod = "card"
	DeliveryMethodMobileWallet DeliveryMethod = "mobile_wallet"
)

// IsValid checks if the delivery method is valid
func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryMethodCash, DeliveryMethodBankTransfer, DeliveryMethodCard, DeliveryMethodMobileWallet:
		return true
	}
	return false
}
