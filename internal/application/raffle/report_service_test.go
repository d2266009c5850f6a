package raffle

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportServiceSummary(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	member := f.seedMember("Aeryn")
	blade := f.seedItem("Winter Blade", catalog.RarityEpic)
	cloak := f.seedItem("Frost Cloak", catalog.RarityRare)
	created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
		Name: "Winter Drop", Date: raffleDate(),
		MemberIDs: []uuid.UUID{member.ID},
		Items: []StockAttachmentRequest{
			{ItemID: blade.ID, InitialQuantity: 3},
			{ItemID: cloak.ID, InitialQuantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = f.distribution.DistributeAuto(ctx, created.ID, AutoDistributionRequest{MemberID: member.ID})
	require.NoError(t, err)

	summary, err := f.reports.Summary(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Winter Drop", summary.Name)
	assert.Equal(t, 1, summary.RosterSize)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 1, summary.Distributions)
	require.Len(t, summary.Stock, 2)
	assert.Equal(t, "Winter Blade", summary.Stock[0].ItemName)
	assert.Equal(t, "epic", summary.Stock[0].Rarity)
	assert.Equal(t, 1, summary.Stock[0].Distributed)
	assert.Equal(t, 2, summary.Stock[0].RemainingQuantity)
	assert.Equal(t, 0, summary.Stock[1].Distributed)
}

func TestReportServiceMemberWinnings(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves item identity per winning", func(t *testing.T) {
		f := newFixture()
		member := f.seedMember("Aeryn")
		blade := f.seedItem("Winter Blade", catalog.RarityEpic)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			MemberIDs: []uuid.UUID{member.ID},
			Items:     []StockAttachmentRequest{{ItemID: blade.ID, InitialQuantity: 5}},
		})
		require.NoError(t, err)

		_, err = f.distribution.DistributeManual(ctx, created.ID, ManualDistributionRequest{
			MemberID: member.ID,
			Entries:  []ManualDistributionEntry{{ItemID: blade.ID, Quantity: 3}},
		})
		require.NoError(t, err)

		winnings, err := f.reports.MemberWinnings(ctx, created.ID, member.ID)
		require.NoError(t, err)

		assert.Equal(t, "Aeryn", winnings.MemberName)
		assert.Equal(t, 3, winnings.TotalUnits)
		require.Len(t, winnings.Winnings, 1)
		assert.Equal(t, "Winter Blade", winnings.Winnings[0].ItemName)
		assert.Equal(t, "epic", winnings.Winnings[0].Rarity)
	})

	t.Run("empty winnings is a valid answer", func(t *testing.T) {
		f := newFixture()
		member := f.seedMember("Aeryn")
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			MemberIDs: []uuid.UUID{member.ID},
		})
		require.NoError(t, err)

		winnings, err := f.reports.MemberWinnings(ctx, created.ID, member.ID)
		require.NoError(t, err)

		assert.Empty(t, winnings.Winnings)
		assert.Equal(t, 0, winnings.TotalUnits)
	})

	t.Run("unknown member", func(t *testing.T) {
		f := newFixture()
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{Name: "Winter Drop", Date: raffleDate()})
		require.NoError(t, err)

		_, err = f.reports.MemberWinnings(ctx, created.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReportServiceItemWinners(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	first := f.seedMember("Aeryn")
	second := f.seedMember("Brennan")
	blade := f.seedItem("Winter Blade", catalog.RarityEpic)
	created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
		Name: "Winter Drop", Date: raffleDate(),
		MemberIDs: []uuid.UUID{first.ID, second.ID},
		Items:     []StockAttachmentRequest{{ItemID: blade.ID, InitialQuantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.distribution.DistributeManual(ctx, created.ID, ManualDistributionRequest{
		MemberID: first.ID,
		Entries:  []ManualDistributionEntry{{ItemID: blade.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = f.distribution.DistributeManual(ctx, created.ID, ManualDistributionRequest{
		MemberID: second.ID,
		Entries:  []ManualDistributionEntry{{ItemID: blade.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	winners, err := f.reports.ItemWinners(ctx, created.ID, blade.ID)
	require.NoError(t, err)

	assert.Equal(t, "Winter Blade", winners.ItemName)
	assert.Equal(t, 3, winners.TotalUnits)
	require.Len(t, winners.Winners, 2)
	assert.Equal(t, "Aeryn", winners.Winners[0].MemberName)
	assert.Equal(t, "Brennan", winners.Winners[1].MemberName)
}

func TestReportServiceReport(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	winner := f.seedMember("Aeryn")
	empty := f.seedMember("Brennan")
	blade := f.seedItem("Winter Blade", catalog.RarityEpic)
	created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
		Name: "Winter Drop", Date: raffleDate(),
		MemberIDs: []uuid.UUID{winner.ID, empty.ID},
		Items:     []StockAttachmentRequest{{ItemID: blade.ID, InitialQuantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.distribution.DistributeAuto(ctx, created.ID, AutoDistributionRequest{MemberID: winner.ID})
	require.NoError(t, err)

	report, err := f.reports.Report(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Winter Drop", report.Name)
	require.Len(t, report.Members, 2)

	byMember := make(map[uuid.UUID]MemberWinningsResponse)
	for _, row := range report.Members {
		byMember[row.MemberID] = row
	}
	assert.Equal(t, 1, byMember[winner.ID].TotalUnits)
	assert.Len(t, byMember[winner.ID].Winnings, 1)
	assert.Equal(t, 0, byMember[empty.ID].TotalUnits)
	assert.Empty(t, byMember[empty.ID].Winnings)
}
