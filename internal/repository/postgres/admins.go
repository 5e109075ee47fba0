package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

type adminUserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *sql.DB, logger *zap.Logger) *adminUserRepository {
	return &adminUserRepository{
		db:     db,
		logger: logger,
	}
}

// APIKeyLookupHash returns the SHA256 hex of an API key, used as the
// indexed lookup column. bcrypt verification still runs on the match.
func APIKeyLookupHash(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}

func (r *adminUserRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminUser, error) {
	query := `
		SELECT id, name, email, api_key_hash, is_admin, is_active, created_at, updated_at
		FROM admin_users
		WHERE is_active = true AND api_key_lookup = $1
	`

	var user domain.AdminUser
	err := r.db.QueryRowContext(ctx, query, APIKeyLookupHash(apiKey)).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.APIKeyHash,
		&user.IsAdmin,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	if err != nil {
		r.logger.Error("Failed to look up admin user by API key", zap.Error(err))
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.APIKeyHash), []byte(apiKey)) != nil {
		r.logger.Debug("API key lookup matched but bcrypt verification failed", zap.String("admin_id", user.ID.String()))
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}

	return &user, nil
}

func (r *adminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminUser, error) {
	query := `
		SELECT id, name, email, api_key_hash, is_admin, is_active, created_at, updated_at
		FROM admin_users
		WHERE id = $1
	`

	var user domain.AdminUser
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.APIKeyHash,
		&user.IsAdmin,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "admin_user", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get admin user by ID", zap.Error(err))
		return nil, err
	}

	return &user, nil
}

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, name, email, api_key_hash, api_key_lookup, is_admin, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.APIKeyHash,
		user.APIKeyLookup,
		user.IsAdmin,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create admin user", zap.Error(err))
		return err
	}

	return nil
}

func (r *adminUserRepository) List(ctx context.Context) ([]*domain.AdminUser, error) {
	query := `
		SELECT id, name, email, api_key_hash, is_admin, is_active, created_at, updated_at
		FROM admin_users
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list admin users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*domain.AdminUser
	for rows.Next() {
		var user domain.AdminUser
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.APIKeyHash,
			&user.IsAdmin,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
