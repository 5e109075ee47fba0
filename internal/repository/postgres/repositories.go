package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		AdminUser:   NewAdminUserRepository(db, logger),
		Order:       NewOrderRepository(db, logger),
		Remittance:  NewRemittanceRepository(db, logger),
		Offer:       NewOfferRepository(db, logger),
		ActivityLog: NewActivityLogRepository(db, logger),
	}
}
