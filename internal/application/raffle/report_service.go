package raffle

import (
	"context"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/raffle"
)

// ReportService builds read-only views over raffles and their allocation log
type ReportService struct {
	raffleRepo       raffle.RaffleRepository
	distributionRepo raffle.DistributionRepository
	memberRepo       catalog.MemberRepository
	itemRepo         catalog.ItemRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	raffleRepo raffle.RaffleRepository,
	distributionRepo raffle.DistributionRepository,
	memberRepo catalog.MemberRepository,
	itemRepo catalog.ItemRepository,
) *ReportService {
	return &ReportService{
		raffleRepo:       raffleRepo,
		distributionRepo: distributionRepo,
		memberRepo:       memberRepo,
		itemRepo:         itemRepo,
	}
}

// Summary returns the per-raffle stock and distribution overview
func (s *ReportService) Summary(ctx context.Context, raffleID uuid.UUID) (*RaffleSummaryResponse, error) {
	r, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.FindByRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByIDs(ctx, r.AttachedItemIDs())
	if err != nil {
		return nil, err
	}
	names := itemIndex(items)

	rows := make([]StockSummaryRow, 0, len(r.Stock))
	for i := range r.Stock {
		entry := &r.Stock[i]
		row := StockSummaryRow{
			ItemID:            entry.ItemID,
			InitialQuantity:   entry.InitialQuantity,
			RemainingQuantity: entry.RemainingQuantity,
			Distributed:       entry.InitialQuantity - entry.RemainingQuantity,
		}
		if item, ok := names[entry.ItemID]; ok {
			row.ItemName = item.Name
			row.Rarity = string(item.Rarity)
		}
		rows = append(rows, row)
	}

	return &RaffleSummaryResponse{
		RaffleID:      r.ID,
		Name:          r.Name,
		Status:        string(r.Status),
		RosterSize:    len(r.Roster),
		ItemCount:     len(r.Stock),
		Stock:         rows,
		Distributions: len(distributions),
	}, nil
}

// MemberWinnings lists everything one member won in a raffle.
// An empty result is valid: a roster member who has not won yet.
func (s *ReportService) MemberWinnings(ctx context.Context, raffleID, memberID uuid.UUID) (*MemberWinningsResponse, error) {
	if _, err := s.raffleRepo.FindByID(ctx, raffleID); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.FindByRaffleAndMember(ctx, raffleID, memberID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(distributions))
	for i := range distributions {
		itemIDs = append(itemIDs, distributions[i].ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	names := itemIndex(items)

	winnings := make([]WinningRow, 0, len(distributions))
	total := 0
	for i := range distributions {
		d := &distributions[i]
		row := WinningRow{
			DistributionID: d.ID,
			ItemID:         d.ItemID,
			Quantity:       d.Quantity,
			WonAt:          d.CreatedAt,
		}
		if item, ok := names[d.ItemID]; ok {
			row.ItemName = item.Name
			row.Rarity = string(item.Rarity)
		}
		winnings = append(winnings, row)
		total += d.Quantity
	}

	return &MemberWinningsResponse{
		RaffleID:   raffleID,
		MemberID:   memberID,
		MemberName: member.Name,
		Winnings:   winnings,
		TotalUnits: total,
	}, nil
}

// ItemWinners lists who won a given item in a raffle
func (s *ReportService) ItemWinners(ctx context.Context, raffleID, itemID uuid.UUID) (*ItemWinnersResponse, error) {
	if _, err := s.raffleRepo.FindByID(ctx, raffleID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.FindByRaffleAndItem(ctx, raffleID, itemID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]uuid.UUID, 0, len(distributions))
	for i := range distributions {
		memberIDs = append(memberIDs, distributions[i].MemberID)
	}
	members, err := s.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	names := memberIndex(members)

	winners := make([]WinnerRow, 0, len(distributions))
	total := 0
	for i := range distributions {
		d := &distributions[i]
		row := WinnerRow{
			DistributionID: d.ID,
			MemberID:       d.MemberID,
			Quantity:       d.Quantity,
			WonAt:          d.CreatedAt,
		}
		if m, ok := names[d.MemberID]; ok {
			row.MemberName = m.Name
		}
		winners = append(winners, row)
		total += d.Quantity
	}

	return &ItemWinnersResponse{
		RaffleID:   raffleID,
		ItemID:     itemID,
		ItemName:   item.Name,
		Winners:    winners,
		TotalUnits: total,
	}, nil
}

// Report groups winnings across the full roster, including members who
// have not won anything yet.
func (s *ReportService) Report(ctx context.Context, raffleID uuid.UUID) (*RaffleReportResponse, error) {
	r, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.FindByRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]uuid.UUID, 0, len(r.Roster))
	for i := range r.Roster {
		memberIDs = append(memberIDs, r.Roster[i].MemberID)
	}
	members, err := s.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	memberNames := memberIndex(members)

	items, err := s.itemRepo.FindByIDs(ctx, r.AttachedItemIDs())
	if err != nil {
		return nil, err
	}
	itemNames := itemIndex(items)

	byMember := make(map[uuid.UUID][]WinningRow, len(memberIDs))
	totals := make(map[uuid.UUID]int, len(memberIDs))
	for i := range distributions {
		d := &distributions[i]
		row := WinningRow{
			DistributionID: d.ID,
			ItemID:         d.ItemID,
			Quantity:       d.Quantity,
			WonAt:          d.CreatedAt,
		}
		if item, ok := itemNames[d.ItemID]; ok {
			row.ItemName = item.Name
			row.Rarity = string(item.Rarity)
		}
		byMember[d.MemberID] = append(byMember[d.MemberID], row)
		totals[d.MemberID] += d.Quantity
	}

	rows := make([]MemberWinningsResponse, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		winnings := byMember[memberID]
		if winnings == nil {
			winnings = []WinningRow{}
		}
		row := MemberWinningsResponse{
			RaffleID:   raffleID,
			MemberID:   memberID,
			Winnings:   winnings,
			TotalUnits: totals[memberID],
		}
		if m, ok := memberNames[memberID]; ok {
			row.MemberName = m.Name
		}
		rows = append(rows, row)
	}

	return &RaffleReportResponse{
		RaffleID: r.ID,
		Name:     r.Name,
		Members:  rows,
	}, nil
}

func itemIndex(items []catalog.Item) map[uuid.UUID]*catalog.Item {
	index := make(map[uuid.UUID]*catalog.Item, len(items))
	for i := range items {
		index[items[i].ID] = &items[i]
	}
	return index
}

func memberIndex(members []catalog.Member) map[uuid.UUID]*catalog.Member {
	index := make(map[uuid.UUID]*catalog.Member, len(members))
	for i := range members {
		index[members[i].ID] = &members[i]
	}
	return index
}
