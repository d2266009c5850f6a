package raffle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/raffle/backend/internal/infrastructure/telemetry"
)

// DistributionService allocates stock ledger units to roster members.
// Every allocation runs inside a transaction scope so the check-and-decrement
// on the ledger and the append to the distribution log commit atomically.
type DistributionService struct {
	txScope          TransactionScope
	distributionRepo raffle.DistributionRepository
	eventPublisher   shared.EventPublisher
	businessMetrics  *telemetry.BusinessMetrics
}

// NewDistributionService creates a new DistributionService
func NewDistributionService(txScope TransactionScope, distributionRepo raffle.DistributionRepository) *DistributionService {
	return &DistributionService{
		txScope:          txScope,
		distributionRepo: distributionRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DistributionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics enables allocation metrics recording
func (s *DistributionService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// allocation carries one committed ledger decrement out of the transaction
// scope so events and metrics fire only after commit.
type allocation struct {
	distribution *raffle.Distribution
	remaining    int
}

// DistributeAuto hands the member one unit of the first ledger entry, in
// attachment order, that still has stock remaining.
func (s *DistributionService) DistributeAuto(ctx context.Context, raffleID uuid.UUID, req AutoDistributionRequest) (*DistributionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "distribution", "distribute_auto")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRaffleID, raffleID.String(),
		telemetry.SpanAttrMemberID, req.MemberID.String(),
	)

	var result allocation
	var operationErr error
	telemetry.WithProfilingLabels(ctx, telemetry.DistributionOperationLabels(telemetry.OperationDistributeAuto), func(c context.Context) {
		operationErr = s.txScope.Execute(c, func(repos TransactionalRepositories) error {
			r, err := repos.RaffleRepo().FindByID(c, raffleID)
			if err != nil {
				return err
			}
			if !r.MemberOnRoster(req.MemberID) {
				return shared.NewDomainError("MEMBER_NOT_IN_RAFFLE", "Member is not on this raffle's roster")
			}

			entry, err := repos.StockRepo().FindFirstAvailableForUpdate(c, raffleID)
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NO_STOCK_AVAILABLE", "No stock remaining to distribute in this raffle")
			}
			if err != nil {
				return err
			}

			if err := entry.Allocate(1); err != nil {
				return err
			}

			d, err := raffle.NewDistribution(raffleID, req.MemberID, entry.ItemID, 1)
			if err != nil {
				return err
			}

			if err := repos.StockRepo().Save(c, entry); err != nil {
				return fmt.Errorf("failed to save stock entry: %w", err)
			}
			if err := repos.DistributionRepo().Create(c, d); err != nil {
				return fmt.Errorf("failed to record distribution: %w", err)
			}

			result = allocation{distribution: d, remaining: entry.RemainingQuantity}
			return nil
		})
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		return nil, operationErr
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrItemID, result.distribution.ItemID.String(),
		telemetry.SpanAttrQuantity, "1",
	)
	telemetry.AddEvent(span, "stock_allocated",
		"distribution_id", result.distribution.ID.String(),
		"remaining_quantity", fmt.Sprintf("%d", result.remaining),
	)

	s.afterCommit(ctx, telemetry.OperationDistributeAuto, result)

	resp := ToDistributionResponse(result.distribution)
	return &resp, nil
}

// DistributeManual assigns explicit item quantities to one member. The batch
// is all or nothing: if any entry cannot be satisfied, no ledger entry is
// decremented and no distribution is recorded.
func (s *DistributionService) DistributeManual(ctx context.Context, raffleID uuid.UUID, req ManualDistributionRequest) ([]DistributionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "distribution", "distribute_manual")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRaffleID, raffleID.String(),
		telemetry.SpanAttrMemberID, req.MemberID.String(),
		telemetry.SpanAttrBatchSize, fmt.Sprintf("%d", len(req.Entries)),
	)

	var results []allocation
	var operationErr error
	telemetry.WithProfilingLabels(ctx, telemetry.DistributionOperationLabels(telemetry.OperationDistributeManual), func(c context.Context) {
		operationErr = s.txScope.Execute(c, func(repos TransactionalRepositories) error {
			r, err := repos.RaffleRepo().FindByID(c, raffleID)
			if err != nil {
				return err
			}
			if !r.MemberOnRoster(req.MemberID) {
				return shared.NewDomainError("MEMBER_NOT_IN_RAFFLE", "Member is not on this raffle's roster")
			}

			results = results[:0]
			for _, entry := range req.Entries {
				stock, err := repos.StockRepo().FindForUpdate(c, raffleID, entry.ItemID)
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainError("ITEM_NOT_IN_RAFFLE",
						fmt.Sprintf("Item %s is not on this raffle's stock ledger", entry.ItemID))
				}
				if err != nil {
					return err
				}

				if err := stock.Allocate(entry.Quantity); err != nil {
					return err
				}

				d, err := raffle.NewDistribution(raffleID, req.MemberID, entry.ItemID, entry.Quantity)
				if err != nil {
					return err
				}

				if err := repos.StockRepo().Save(c, stock); err != nil {
					return fmt.Errorf("failed to save stock entry: %w", err)
				}
				if err := repos.DistributionRepo().Create(c, d); err != nil {
					return fmt.Errorf("failed to record distribution: %w", err)
				}

				results = append(results, allocation{distribution: d, remaining: stock.RemainingQuantity})
			}
			return nil
		})
	})
	if operationErr != nil {
		telemetry.RecordError(span, operationErr)
		return nil, operationErr
	}

	responses := make([]DistributionResponse, 0, len(results))
	for _, res := range results {
		s.afterCommit(ctx, telemetry.OperationDistributeManual, res)
		responses = append(responses, ToDistributionResponse(res.distribution))
	}
	return responses, nil
}

// Get returns a single distribution record
func (s *DistributionService) Get(ctx context.Context, id uuid.UUID) (*DistributionResponse, error) {
	d, err := s.distributionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDistributionResponse(d)
	return &resp, nil
}

// List returns distribution records matching the filter
func (s *DistributionService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[DistributionResponse], error) {
	f := filter.ToSharedFilter()

	distributions, err := s.distributionRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.distributionRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]DistributionResponse, 0, len(distributions))
	for i := range distributions {
		items = append(items, ToDistributionResponse(&distributions[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

func (s *DistributionService) afterCommit(ctx context.Context, operation string, res allocation) {
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, raffle.NewStockAllocatedEvent(res.distribution, res.remaining))
	}
	if s.businessMetrics != nil {
		s.businessMetrics.RecordDistribution(ctx, operation, res.distribution.Quantity)
	}
}
