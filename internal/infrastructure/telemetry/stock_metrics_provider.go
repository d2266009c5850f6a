// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider using GORM.
// It queries the raffle_items ledger table directly for aggregated metrics.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// GetRemainingStockByRaffle returns total remaining units per raffle that is
// not yet completed.
func (p *GormStockMetricsProvider) GetRemainingStockByRaffle(ctx context.Context) (map[uuid.UUID]int64, error) {
	type result struct {
		RaffleID  uuid.UUID `gorm:"column:raffle_id"`
		Remaining int64     `gorm:"column:remaining"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("raffle_items").
		Select("raffle_items.raffle_id, COALESCE(SUM(raffle_items.remaining_quantity), 0) as remaining").
		Joins("JOIN raffles ON raffles.id = raffle_items.raffle_id").
		Where("raffles.status <> ?", "completed").
		Group("raffle_items.raffle_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.RaffleID] = r.Remaining
	}

	return m, nil
}

// GetExhaustedRaffleCount returns how many ongoing raffles have no stock left.
func (p *GormStockMetricsProvider) GetExhaustedRaffleCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("raffles").
		Where("status = ?", "ongoing").
		Where("EXISTS (SELECT 1 FROM raffle_items WHERE raffle_items.raffle_id = raffles.id)").
		Where("NOT EXISTS (SELECT 1 FROM raffle_items WHERE raffle_items.raffle_id = raffles.id AND raffle_items.remaining_quantity > 0)").
		Count(&count).Error

	return count, err
}
