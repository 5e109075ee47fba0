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

const remittanceColumns = `
	id, remittance_number, status, delivery_method,
	amount_sent, currency_sent, amount_to_deliver, delivery_currency,
	commission_total, discount_amount,
	recipient_name, recipient_phone, delivery_province, delivery_municipality, delivery_address,
	bank_account_id, payment_proof_url, delivery_proof_url,
	rejection_reason, cancellation_reason,
	validated_by, validated_at, rejected_by, rejected_at,
	processing_by, processing_at, delivered_by, delivered_at,
	completed_by, completed_at, cancelled_by, cancelled_at,
	created_at, updated_at
`

type remittanceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRemittanceRepository creates a new remittance repository
func NewRemittanceRepository(db *sql.DB, logger *zap.Logger) *remittanceRepository {
	return &remittanceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *remittanceRepository) Create(ctx context.Context, remittance *domain.Remittance) error {
	query := `
		INSERT INTO remittances (
			id, remittance_number, status, delivery_method,
			amount_sent, currency_sent, amount_to_deliver, delivery_currency,
			commission_total, discount_amount,
			recipient_name, recipient_phone, delivery_province, delivery_municipality, delivery_address,
			bank_account_id, payment_proof_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	now := time.Now()
	if remittance.ID == uuid.Nil {
		remittance.ID = uuid.New()
	}
	if remittance.CreatedAt.IsZero() {
		remittance.CreatedAt = now
	}
	if remittance.UpdatedAt.IsZero() {
		remittance.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		remittance.ID,
		remittance.RemittanceNumber,
		remittance.Status,
		remittance.DeliveryMethod,
		remittance.AmountSent,
		remittance.CurrencySent,
		remittance.AmountToDeliver,
		remittance.DeliveryCurrency,
		remittance.CommissionTotal,
		remittance.DiscountAmount,
		remittance.RecipientName,
		remittance.RecipientPhone,
		remittance.DeliveryProvince,
		remittance.DeliveryMunicipality,
		remittance.DeliveryAddress,
		remittance.BankAccountID,
		remittance.PaymentProofURL,
		remittance.CreatedAt,
		remittance.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create remittance", zap.Error(err))
		return err
	}

	return nil
}

func (r *remittanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Remittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get remittance by ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, &errors.ErrNotFound{Resource: "remittance", ID: id.String()}
	}

	return r.scanRemittance(rows)
}

func (r *remittanceRepository) GetByNumber(ctx context.Context, remittanceNumber string) (*domain.Remittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE remittance_number = $1`

	rows, err := r.db.QueryContext(ctx, query, remittanceNumber)
	if err != nil {
		r.logger.Error("Failed to get remittance by number", zap.Error(err), zap.String("remittance_number", remittanceNumber))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, &errors.ErrNotFound{Resource: "remittance", ID: remittanceNumber}
	}

	return r.scanRemittance(rows)
}

func (r *remittanceRepository) List(ctx context.Context, status *domain.RemittanceStatus, limit, offset int) ([]*domain.Remittance, error) {
	var rows *sql.Rows
	var err error

	if status != nil {
		query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.db.QueryContext(ctx, query, *status, limit, offset)
	} else {
		query := `SELECT ` + remittanceColumns + ` FROM remittances ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.db.QueryContext(ctx, query, limit, offset)
	}

	if err != nil {
		r.logger.Error("Failed to list remittances", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var remittances []*domain.Remittance
	for rows.Next() {
		remittance, err := r.scanRemittance(rows)
		if err != nil {
			return nil, err
		}
		remittances = append(remittances, remittance)
	}

	return remittances, rows.Err()
}

// ApplyTransition performs the conditional status write; the WHERE clause
// pins the expected current status so concurrent admin actions cannot
// silently overwrite each other.
func (r *remittanceRepository) ApplyTransition(ctx context.Context, id uuid.UUID, w repository.RemittanceTransitionWrite) (bool, error) {
	query := `
		UPDATE remittances
		SET status = $3,
			delivery_proof_url = COALESCE($6, delivery_proof_url),
			rejection_reason = COALESCE($7, rejection_reason),
			cancellation_reason = COALESCE($8, cancellation_reason),
			validated_by = CASE WHEN $3 = 'payment_validated' THEN $4::uuid ELSE validated_by END,
			validated_at = CASE WHEN $3 = 'payment_validated' THEN $5::timestamptz ELSE validated_at END,
			rejected_by = CASE WHEN $3 = 'payment_rejected' THEN $4::uuid ELSE rejected_by END,
			rejected_at = CASE WHEN $3 = 'payment_rejected' THEN $5::timestamptz ELSE rejected_at END,
			processing_by = CASE WHEN $3 = 'processing' THEN $4::uuid ELSE processing_by END,
			processing_at = CASE WHEN $3 = 'processing' THEN $5::timestamptz ELSE processing_at END,
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
		w.DeliveryProofURL,
		w.RejectionReason,
		w.CancellationReason,
	)
	if err != nil {
		r.logger.Error("Failed to apply remittance transition", zap.Error(err), zap.String("remittance_id", id.String()))
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *remittanceRepository) StatsByStatus(ctx context.Context) ([]*domain.StatusBucket, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(amount_sent), 0)
		FROM remittances
		GROUP BY status
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to aggregate remittance stats", zap.Error(err))
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

func (r *remittanceRepository) scanRemittance(rows *sql.Rows) (*domain.Remittance, error) {
	var remittance domain.Remittance
	var deliveryProvince sql.NullString
	var deliveryMunicipality sql.NullString
	var deliveryAddress sql.NullString
	var bankAccountID uuid.NullUUID
	var paymentProofURL sql.NullString
	var deliveryProofURL sql.NullString
	var rejectionReason sql.NullString
	var cancellationReason sql.NullString
	var validatedBy uuid.NullUUID
	var validatedAt sql.NullTime
	var rejectedBy uuid.NullUUID
	var rejectedAt sql.NullTime
	var processingBy uuid.NullUUID
	var processingAt sql.NullTime
	var deliveredBy uuid.NullUUID
	var deliveredAt sql.NullTime
	var completedBy uuid.NullUUID
	var completedAt sql.NullTime
	var cancelledBy uuid.NullUUID
	var cancelledAt sql.NullTime

	err := rows.Scan(
		&remittance.ID,
		&remittance.RemittanceNumber,
		&remittance.Status,
		&remittance.DeliveryMethod,
		&remittance.AmountSent,
		&remittance.CurrencySent,
		&remittance.AmountToDeliver,
		&remittance.DeliveryCurrency,
		&remittance.CommissionTotal,
		&remittance.DiscountAmount,
		&remittance.RecipientName,
		&remittance.RecipientPhone,
		&deliveryProvince,
		&deliveryMunicipality,
		&deliveryAddress,
		&bankAccountID,
		&paymentProofURL,
		&deliveryProofURL,
		&rejectionReason,
		&cancellationReason,
		&validatedBy,
		&validatedAt,
		&rejectedBy,
		&rejectedAt,
		&processingBy,
		&processingAt,
		&deliveredBy,
		&deliveredAt,
		&completedBy,
		&completedAt,
		&cancelledBy,
		&cancelledAt,
		&remittance.CreatedAt,
		&remittance.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if deliveryProvince.Valid {
		remittance.DeliveryProvince = &deliveryProvince.String
	}
	if deliveryMunicipality.Valid {
		remittance.DeliveryMunicipality = &deliveryMunicipality.String
	}
	if deliveryAddress.Valid {
		remittance.DeliveryAddress = &deliveryAddress.String
	}
	if bankAccountID.Valid {
		remittance.BankAccountID = &bankAccountID.UUID
	}
	if paymentProofURL.Valid {
		remittance.PaymentProofURL = &paymentProofURL.String
	}
	if deliveryProofURL.Valid {
		remittance.DeliveryProofURL = &deliveryProofURL.String
	}
	if rejectionReason.Valid {
		remittance.RejectionReason = &rejectionReason.String
	}
	if cancellationReason.Valid {
		remittance.CancellationReason = &cancellationReason.String
	}
	if validatedBy.Valid {
		remittance.ValidatedBy = &validatedBy.UUID
	}
	if validatedAt.Valid {
		remittance.ValidatedAt = &validatedAt.Time
	}
	if rejectedBy.Valid {
		remittance.RejectedBy = &rejectedBy.UUID
	}
	if rejectedAt.Valid {
		remittance.RejectedAt = &rejectedAt.Time
	}
	if processingBy.Valid {
		remittance.ProcessingBy = &processingBy.UUID
	}
	if processingAt.Valid {
		remittance.ProcessingAt = &processingAt.Time
	}
	if deliveredBy.Valid {
		remittance.DeliveredBy = &deliveredBy.UUID
	}
	if deliveredAt.Valid {
		remittance.DeliveredAt = &deliveredAt.Time
	}
	if completedBy.Valid {
		remittance.CompletedBy = &completedBy.UUID
	}
	if completedAt.Valid {
		remittance.CompletedAt = &completedAt.Time
	}
	if cancelledBy.Valid {
		remittance.CancelledBy = &cancelledBy.UUID
	}
	if cancelledAt.Valid {
		remittance.CancelledAt = &cancelledAt.Time
	}

	return &remittance, nil
}
