package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
)

// DashboardStats is the read-side aggregation for the financial dashboard
type DashboardStats struct {
	Orders              []*domain.StatusBucket
	Remittances         []*domain.StatusBucket
	OrderRevenue        decimal.Decimal // sum of completed order totals
	RemittanceVolume    decimal.Decimal // sum of completed remittance amounts
	OpenOrderCount      int             // orders in a non-terminal status
	OpenRemittanceCount int
}

type dashboardService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repository.Repositories, logger *zap.Logger) *dashboardService {
	return &dashboardService{
		repos:  repos,
		logger: logger,
	}
}

// Overview aggregates per-status counts and monetary sums for both entities
func (s *dashboardService) Overview(ctx context.Context) (*DashboardStats, error) {
	orderBuckets, err := s.repos.Order.StatsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	remittanceBuckets, err := s.repos.Remittance.StatsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Orders:           orderBuckets,
		Remittances:      remittanceBuckets,
		OrderRevenue:     decimal.Zero,
		RemittanceVolume: decimal.Zero,
	}

	for _, b := range orderBuckets {
		if b.Status == string(domain.OrderStatusCompleted) {
			stats.OrderRevenue = stats.OrderRevenue.Add(b.Total)
		}
		if !domain.OrderStatus(b.Status).IsTerminal() {
			stats.OpenOrderCount += b.Count
		}
	}
	for _, b := range remittanceBuckets {
		if b.Status == string(domain.RemittanceStatusCompleted) {
			stats.RemittanceVolume = stats.RemittanceVolume.Add(b.Total)
		}
		if !domain.RemittanceStatus(b.Status).IsTerminal() {
			stats.OpenRemittanceCount += b.Count
		}
	}

	return stats, nil
}
