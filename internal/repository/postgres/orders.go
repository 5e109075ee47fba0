package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

const orderColumns = `
	id, order_number, status, payment_status, customer_name, customer_phone,
	subtotal, shipping_cost, discount_amount, total_amount, currency_code, offer_code,
	tracking_info, delivery_proof_url, cancellation_reason, rejection_reason,
	payment_validated_by, payment_validated_at, processing_by, processing_at,
	dispatched_by, dispatched_at, delivered_by, delivered_at,
	completed_by, completed_at, cancelled_by, cancelled_at,
	created_at, updated_at
`

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, status, payment_status, customer_name, customer_phone,
			subtotal, shipping_cost, discount_amount, total_amount, currency_code, offer_code,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.Status,
		order.PaymentStatus,
		order.CustomerName,
		order.CustomerPhone,
		order.Subtotal,
		order.ShippingCost,
		order.DiscountAmount,
		order.TotalAmount,
		order.CurrencyCode,
		order.OfferCode,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}

	return r.scanOrder(rows)
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	rows, err := r.db.QueryContext(ctx, query, orderNumber)
	if err != nil {
		r.logger.Error("Failed to get order by number", zap.Error(err), zap.String("order_number", orderNumber))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
	}

	return r.scanOrder(rows)
}

func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	var rows *sql.Rows
	var err error

	if status != nil {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.db.QueryContext(ctx, query, *status, limit, offset)
	} else {
		query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.db.QueryContext(ctx, query, limit, offset)
	}

	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// ApplyTransition performs the conditional status write. The WHERE clause
// pins the expected current status so a concurrent admin action makes this
// statement match zero rows instead of overwriting.
func (r *orderRepository) ApplyTransition(ctx context.Context, id uuid.UUID, w repository.OrderTransitionWrite) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3,
			tracking_info = COALESCE($6, tracking_info),
			delivery_proof_url = COALESCE($7, delivery_proof_url),
			cancellation_reason = COALESCE($8, cancellation_reason),
			processing_by = CASE WHEN $3 = 'processing' THEN $4::uuid ELSE processing_by END,
			processing_at = CASE WHEN $3 = 'processing' THEN $5::timestamptz ELSE processing_at END,
			dispatched_by = CASE WHEN $3 = 'dispatched' THEN $4::uuid ELSE dispatched_by END,
			dispatched_at = CASE WHEN $3 = 'dispatched' THEN $5::timestamptz ELSE dispatched_at END,
			delivered_by = CASE WHEN $3 = 'delivered' THEN $4::uuid ELSE delivered_by END,
			delivered_at = CASE WHEN $3 = 'delivered' THEN $5::timestamptz ELSE delivered_at END,
			completed_by = CASE WHEN $3 = 'completed' THEN $4::uuid ELSE completed_by END,
			completed_at = CASE WHEN $3 = 'completed' THEN $5::timestamptz ELSE completed_at END,
			cancelled_by = CASE WHEN $3 = 'cancelled' THEN $4::uuid ELSE cancelled_by END,
			cancelled_at = CASE WHEN $3 = 'cancelled' THEN $5::timestamptz ELSE cancelled_at END,
			updated_at = $5
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		w.From,
		w.To,
		w.ActorID,
		w.At,
		w.TrackingInfo,
		w.DeliveryProofURL,
		w.CancellationReason,
	)
	if err != nil {
		r.logger.Error("Failed to apply order transition", zap.Error(err), zap.String("order_id", id.String()))
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ApplyPaymentTransition is the payment-status counterpart of ApplyTransition
func (r *orderRepository) ApplyPaymentTransition(ctx context.Context, id uuid.UUID, w repository.OrderPaymentWrite) (bool, error) {
	query := `
		UPDATE orders
		SET payment_status = $3,
			rejection_reason = COALESCE($6, rejection_reason),
			payment_validated_by = CASE WHEN $3 = 'validated' THEN $4::uuid ELSE payment_validated_by END,
			payment_validated_at = CASE WHEN $3 = 'validated' THEN $5::timestamptz ELSE payment_validated_at END,
			updated_at = $5
		WHERE id = $1 AND payment_status = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		w.From,
		w.To,
		w.ActorID,
		w.At,
		w.RejectionReason,
	)
	if err != nil {
		r.logger.Error("Failed to apply order payment transition", zap.Error(err), zap.String("order_id", id.String()))
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *orderRepository) StatsByStatus(ctx context.Context) ([]*domain.StatusBucket, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to aggregate order stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var buckets []*domain.StatusBucket
	for rows.Next() {
		var bucket domain.StatusBucket
		if err := rows.Scan(&bucket.Status, &bucket.Count, &bucket.Total); err != nil {
			return nil, err
		}
		buckets = append(buckets, &bucket)
	}

	return buckets, rows.Err()
}

func (r *orderRepository) scanOrder(rows *sql.Rows) (*domain.Order, error) {
	var order domain.Order
	var offerCode sql.NullString
	var trackingInfo sql.NullString
	var deliveryProofURL sql.NullString
	var cancellationReason sql.NullString
	var rejectionReason sql.NullString
	var paymentValidatedBy uuid.NullUUID
	var paymentValidatedAt sql.NullTime
	var processingBy uuid.NullUUID
	var processingAt sql.NullTime
	var dispatchedBy uuid.NullUUID
	var dispatchedAt sql.NullTime
	var deliveredBy uuid.NullUUID
	var deliveredAt sql.NullTime
	var completedBy uuid.NullUUID
	var completedAt sql.NullTime
	var cancelledBy uuid.NullUUID
	var cancelledAt sql.NullTime

	err := rows.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.Status,
		&order.PaymentStatus,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.Subtotal,
		&order.ShippingCost,
		&order.DiscountAmount,
		&order.TotalAmount,
		&order.CurrencyCode,
		&offerCode,
		&trackingInfo,
		&deliveryProofURL,
		&cancellationReason,
		&rejectionReason,
		&paymentValidatedBy,
		&paymentValidatedAt,
		&processingBy,
		&processingAt,
		&dispatchedBy,
		&dispatchedAt,
		&deliveredBy,
		&deliveredAt,
		&completedBy,
		&completedAt,
		&cancelledBy,
		&cancelledAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if offerCode.Valid {
		order.OfferCode = &offerCode.String
	}
	if trackingInfo.Valid {
		order.TrackingInfo = &trackingInfo.String
	}
	if deliveryProofURL.Valid {
		order.DeliveryProofURL = &deliveryProofURL.String
	}
	if cancellationReason.Valid {
		order.CancellationReason = &cancellationReason.String
	}
	if rejectionReason.Valid {
		order.RejectionReason = &rejectionReason.String
	}
	if paymentValidatedBy.Valid {
		order.PaymentValidatedBy = &paymentValidatedBy.UUID
	}
	if paymentValidatedAt.Valid {
		order.PaymentValidatedAt = &paymentValidatedAt.Time
	}
	if processingBy.Valid {
		order.ProcessingBy = &processingBy.UUID
	}
	if processingAt.Valid {
		order.ProcessingAt = &processingAt.Time
	}
	if dispatchedBy.Valid {
		order.DispatchedBy = &dispatchedBy.UUID
	}
	if dispatchedAt.Valid {
		order.DispatchedAt = &dispatchedAt.Time
	}
	if deliveredBy.Valid {
		order.DeliveredBy = &deliveredBy.UUID
	}
	if deliveredAt.Valid {
		order.DeliveredAt = &deliveredAt.Time
	}
	if completedBy.Valid {
		order.CompletedBy = &completedBy.UUID
	}
	if completedAt.Valid {
		order.CompletedAt = &completedAt.Time
	}
	if cancelledBy.Valid {
		order.CancelledBy = &cancelledBy.UUID
	}
	if cancelledAt.Valid {
		order.CancelledAt = &cancelledAt.Time
	}

	return &order, nil
}
