package raffle

import (
	"context"
	"fmt"

	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/raffle/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StockAllocatedHandler handles StockAllocatedEvent and keeps the allocation
// audit log and stock gauges current after each committed distribution.
type StockAllocatedHandler struct {
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewStockAllocatedHandler creates a new handler for stock allocated events.
// businessMetrics may be nil when metrics are disabled.
func NewStockAllocatedHandler(businessMetrics *telemetry.BusinessMetrics, logger *zap.Logger) *StockAllocatedHandler {
	return &StockAllocatedHandler{
		businessMetrics: businessMetrics,
		logger:          logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StockAllocatedHandler) EventTypes() []string {
	return []string{raffle.EventTypeStockAllocated}
}

// Handle processes a StockAllocatedEvent
func (h *StockAllocatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	allocated, ok := event.(*raffle.StockAllocatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", raffle.EventTypeStockAllocated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			raffle.EventTypeStockAllocated, event.EventType())
	}

	h.logger.Info("stock allocated",
		zap.String("raffle_id", allocated.RaffleID.String()),
		zap.String("distribution_id", allocated.DistributionID.String()),
		zap.String("member_id", allocated.MemberID.String()),
		zap.String("item_id", allocated.ItemID.String()),
		zap.Int("quantity", allocated.Quantity),
		zap.Int("remaining", allocated.Remaining),
	)

	if h.businessMetrics != nil {
		h.businessMetrics.RecordStockRemaining(ctx, allocated.RaffleID, int64(allocated.Remaining))
	}

	return nil
}
