package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

const offerColumns = `
	id, code, discount_type, discount_value, max_uses, max_uses_per_user,
	used_count, starts_at, ends_at, is_active, created_at, updated_at
`

type offerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *sql.DB, logger *zap.Logger) *offerRepository {
	return &offerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = now
	}
	if offer.UpdatedAt.IsZero() {
		offer.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.Code,
		offer.DiscountType,
		offer.DiscountValue,
		offer.MaxUses,
		offer.MaxUsesPerUser,
		offer.UsedCount,
		offer.StartsAt,
		offer.EndsAt,
		offer.IsActive,
		offer.CreatedAt,
		offer.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create offer", zap.Error(err))
		return err
	}

	return nil
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get offer by ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}

	return r.scanOffer(rows)
}

func (r *offerRepository) GetByCode(ctx context.Context, code string) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE code = $1`

	rows, err := r.db.QueryContext(ctx, query, code)
	if err != nil {
		r.logger.Error("Failed to get offer by code", zap.Error(err), zap.String("code", code))
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, &errors.ErrNotFound{Resource: "offer", ID: code}
	}

	return r.scanOffer(rows)
}

func (r *offerRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list offers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var offers []*domain.Offer
	for rows.Next() {
		offer, err := r.scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	query := `
		UPDATE offers
		SET code = $2, discount_type = $3, discount_value = $4, max_uses = $5,
			max_uses_per_user = $6, starts_at = $7, ends_at = $8, is_active = $9,
			updated_at = $10
		WHERE id = $1
	`

	offer.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.Code,
		offer.DiscountType,
		offer.DiscountValue,
		offer.MaxUses,
		offer.MaxUsesPerUser,
		offer.StartsAt,
		offer.EndsAt,
		offer.IsActive,
		offer.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update offer", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "offer", ID: offer.ID.String()}
	}

	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM offers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete offer", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}

	return nil
}

func (r *offerRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE offers SET used_count = used_count + 1, updated_at = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		r.logger.Error("Failed to increment offer usage", zap.Error(err))
		return err
	}

	return nil
}

func (r *offerRepository) scanOffer(rows *sql.Rows) (*domain.Offer, error) {
	var offer domain.Offer
	var maxUses sql.NullInt64
	var maxUsesPerUser sql.NullInt64

	err := rows.Scan(
		&offer.ID,
		&offer.Code,
		&offer.DiscountType,
		&offer.DiscountValue,
		&maxUses,
		&maxUsesPerUser,
		&offer.UsedCount,
		&offer.StartsAt,
		&offer.EndsAt,
		&offer.IsActive,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if maxUses.Valid {
		v := int(maxUses.Int64)
		offer.MaxUses = &v
	}
	if maxUsesPerUser.Valid {
		v := int(maxUsesPerUser.Int64)
		offer.MaxUsesPerUser = &v
	}

	return &offer, nil
}
