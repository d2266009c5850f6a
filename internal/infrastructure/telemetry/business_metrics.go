// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the raffle system.
// It tracks distribution activity and the health of stock ledgers.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	distributionTotal      *Counter
	distributionUnitsTotal *Counter

	// Gauge metrics (point-in-time values)
	stockRemaining       *Gauge
	exhaustedRaffleCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	stockProvider StockMetricsProvider
}

// StockMetricsProvider provides stock ledger data for periodic metrics
// collection. This interface allows the telemetry layer to query ledger state
// without depending on the raffle domain directly.
type StockMetricsProvider interface {
	// GetRemainingStockByRaffle returns total remaining units per raffle
	// that is not yet completed
	GetRemainingStockByRaffle(ctx context.Context) (map[uuid.UUID]int64, error)

	// GetExhaustedRaffleCount returns how many ongoing raffles have no
	// stock left to distribute
	GetExhaustedRaffleCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StockProvider   StockMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stockProvider: cfg.StockProvider,
	}

	var err error

	bm.distributionTotal, err = NewCounter(
		cfg.Meter,
		"raffle_distribution_total",
		"Total number of distribution records created",
		"{distributions}",
	)
	if err != nil {
		return nil, err
	}

	bm.distributionUnitsTotal, err = NewCounter(
		cfg.Meter,
		"raffle_distribution_units_total",
		"Total number of stock units distributed",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	bm.stockRemaining, err = NewGauge(
		cfg.Meter,
		"raffle_stock_remaining",
		"Remaining undistributed units per raffle",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	bm.exhaustedRaffleCount, err = NewGauge(
		cfg.Meter,
		"raffle_exhausted_count",
		"Number of ongoing raffles with no stock left",
		"{raffles}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Distribution Metrics
// =============================================================================

// RecordDistribution records one committed allocation. Mode distinguishes
// engine-picked allocations from explicit manual assignments; use the
// OperationDistribute* constants.
func (bm *BusinessMetrics) RecordDistribution(ctx context.Context, mode string, quantity int) {
	bm.distributionTotal.Inc(ctx,
		AttrDistributionMode.String(mode),
	)
	bm.distributionUnitsTotal.Add(ctx, int64(quantity),
		AttrDistributionMode.String(mode),
	)
}

// =============================================================================
// Stock Ledger Metrics
// =============================================================================

// RecordStockRemaining records the remaining units of one raffle's ledger.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordStockRemaining(ctx context.Context, raffleID uuid.UUID, remaining int64) {
	bm.stockRemaining.Record(ctx, remaining,
		AttrRaffleID.String(raffleID.String()),
	)
}

// RecordExhaustedRaffleCount records how many ongoing raffles are out of stock.
func (bm *BusinessMetrics) RecordExhaustedRaffleCount(ctx context.Context, count int64) {
	bm.exhaustedRaffleCount.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects ledger metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectStockMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectStockMetrics(ctx)
		}
	}
}

// collectStockMetrics collects ledger gauge metrics across all active raffles.
func (bm *BusinessMetrics) collectStockMetrics(ctx context.Context) {
	if bm.stockProvider == nil {
		bm.logger.Debug("No stock provider configured, skipping ledger metrics collection")
		return
	}

	remainingByRaffle, err := bm.stockProvider.GetRemainingStockByRaffle(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get remaining stock per raffle", zap.Error(err))
	} else {
		for raffleID, remaining := range remainingByRaffle {
			bm.RecordStockRemaining(ctx, raffleID, remaining)
		}
	}

	exhausted, err := bm.stockProvider.GetExhaustedRaffleCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get exhausted raffle count", zap.Error(err))
	} else {
		bm.RecordExhaustedRaffleCount(ctx, exhausted)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
