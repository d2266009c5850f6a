package raffle

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raffleDate() time.Time {
	return time.Date(2025, 12, 20, 20, 0, 0, 0, time.UTC)
}

func TestRaffleServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates raffle with roster and ledger in one call", func(t *testing.T) {
		f := newFixture()
		member := f.seedMember("Aeryn")
		item := f.seedItem("Winter Blade", catalog.RarityEpic)

		resp, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name:      "Winter Drop",
			Date:      raffleDate(),
			MemberIDs: []uuid.UUID{member.ID},
			Items: []StockAttachmentRequest{
				{ItemID: item.ID, InitialQuantity: 3},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Winter Drop", resp.Name)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Roster, 1)
		require.Len(t, resp.Stock, 1)
		assert.Equal(t, 3, resp.Stock[0].InitialQuantity)
		assert.Equal(t, 3, resp.Stock[0].RemainingQuantity)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		f := newFixture()

		_, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{Name: "Winter Drop", Date: raffleDate()})
		require.NoError(t, err)

		_, err = f.raffleSvc.Create(ctx, CreateRaffleRequest{Name: "Winter Drop", Date: raffleDate()})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown member", func(t *testing.T) {
		f := newFixture()

		_, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name:      "Winter Drop",
			Date:      raffleDate(),
			MemberIDs: []uuid.UUID{uuid.New()},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MEMBER", domainErr.Code)
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		f := newFixture()

		_, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name:  "Winter Drop",
			Date:  raffleDate(),
			Items: []StockAttachmentRequest{{ItemID: uuid.New(), InitialQuantity: 1}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ITEM", domainErr.Code)
	})
}

func TestRaffleServiceChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("walks the lifecycle forward", func(t *testing.T) {
		f := newFixture()
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{Name: "Winter Drop", Date: raffleDate()})
		require.NoError(t, err)

		resp, err := f.raffleSvc.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "ongoing"})
		require.NoError(t, err)
		assert.Equal(t, "ongoing", resp.Status)

		resp, err = f.raffleSvc.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "completed"})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("rejects skipping ahead", func(t *testing.T) {
		f := newFixture()
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{Name: "Winter Drop", Date: raffleDate()})
		require.NoError(t, err)

		_, err = f.raffleSvc.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "completed"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", domainErr.Code)
	})
}

func TestRaffleServiceAttach(t *testing.T) {
	ctx := context.Background()

	t.Run("attaching the same member twice fails", func(t *testing.T) {
		f := newFixture()
		member := f.seedMember("Aeryn")
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(), MemberIDs: []uuid.UUID{member.ID},
		})
		require.NoError(t, err)

		_, err = f.raffleSvc.AttachMembers(ctx, created.ID, AttachMembersRequest{MemberIDs: []uuid.UUID{member.ID}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_MEMBER", domainErr.Code)
	})

	t.Run("attaching the same item twice fails", func(t *testing.T) {
		f := newFixture()
		item := f.seedItem("Winter Blade", catalog.RarityEpic)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			Items: []StockAttachmentRequest{{ItemID: item.ID, InitialQuantity: 2}},
		})
		require.NoError(t, err)

		_, err = f.raffleSvc.AttachItems(ctx, created.ID, AttachItemsRequest{
			Items: []StockAttachmentRequest{{ItemID: item.ID, InitialQuantity: 1}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_STOCK_ENTRY", domainErr.Code)
	})

	t.Run("later attachments keep the ledger order", func(t *testing.T) {
		f := newFixture()
		first := f.seedItem("Winter Blade", catalog.RarityEpic)
		second := f.seedItem("Frost Cloak", catalog.RarityRare)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			Items: []StockAttachmentRequest{{ItemID: first.ID, InitialQuantity: 1}},
		})
		require.NoError(t, err)

		resp, err := f.raffleSvc.AttachItems(ctx, created.ID, AttachItemsRequest{
			Items: []StockAttachmentRequest{{ItemID: second.ID, InitialQuantity: 1}},
		})

		require.NoError(t, err)
		require.Len(t, resp.Stock, 2)
		assert.Equal(t, int64(1), resp.Stock[0].Position)
		assert.Equal(t, int64(2), resp.Stock[1].Position)
	})
}

func TestRaffleServiceSyncMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the roster", func(t *testing.T) {
		f := newFixture()
		old := f.seedMember("Aeryn")
		kept := f.seedMember("Brennan")
		added := f.seedMember("Caelum")
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			MemberIDs: []uuid.UUID{old.ID, kept.ID},
		})
		require.NoError(t, err)

		resp, err := f.raffleSvc.SyncMembers(ctx, created.ID, SyncMembersRequest{
			MemberIDs: []uuid.UUID{kept.ID, added.ID},
		})

		require.NoError(t, err)
		require.Len(t, resp.Roster, 2)
		ids := []uuid.UUID{resp.Roster[0].MemberID, resp.Roster[1].MemberID}
		assert.Contains(t, ids, kept.ID)
		assert.Contains(t, ids, added.ID)
		assert.NotContains(t, ids, old.ID)
	})

	t.Run("blocked when a removed member already won", func(t *testing.T) {
		f := newFixture()
		winner := f.seedMember("Aeryn")
		other := f.seedMember("Brennan")
		item := f.seedItem("Winter Blade", catalog.RarityEpic)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			MemberIDs: []uuid.UUID{winner.ID, other.ID},
			Items:     []StockAttachmentRequest{{ItemID: item.ID, InitialQuantity: 2}},
		})
		require.NoError(t, err)

		_, err = f.distribution.DistributeAuto(ctx, created.ID, AutoDistributionRequest{MemberID: winner.ID})
		require.NoError(t, err)

		_, err = f.raffleSvc.SyncMembers(ctx, created.ID, SyncMembersRequest{MemberIDs: []uuid.UUID{other.ID}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_DISTRIBUTIONS", domainErr.Code)
	})

	t.Run("removing a member who has not won is fine", func(t *testing.T) {
		f := newFixture()
		winner := f.seedMember("Aeryn")
		loser := f.seedMember("Brennan")
		item := f.seedItem("Winter Blade", catalog.RarityEpic)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			MemberIDs: []uuid.UUID{winner.ID, loser.ID},
			Items:     []StockAttachmentRequest{{ItemID: item.ID, InitialQuantity: 2}},
		})
		require.NoError(t, err)

		_, err = f.distribution.DistributeAuto(ctx, created.ID, AutoDistributionRequest{MemberID: winner.ID})
		require.NoError(t, err)

		resp, err := f.raffleSvc.SyncMembers(ctx, created.ID, SyncMembersRequest{MemberIDs: []uuid.UUID{winner.ID}})

		require.NoError(t, err)
		require.Len(t, resp.Roster, 1)
		assert.Equal(t, winner.ID, resp.Roster[0].MemberID)
	})
}

func TestRaffleServiceSyncItems(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the ledger and resets quantities", func(t *testing.T) {
		f := newFixture()
		old := f.seedItem("Winter Blade", catalog.RarityEpic)
		replacement := f.seedItem("Frost Cloak", catalog.RarityRare)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			Items: []StockAttachmentRequest{{ItemID: old.ID, InitialQuantity: 5}},
		})
		require.NoError(t, err)

		resp, err := f.raffleSvc.SyncItems(ctx, created.ID, SyncItemsRequest{
			Items: []StockAttachmentRequest{{ItemID: replacement.ID, InitialQuantity: 2}},
		})

		require.NoError(t, err)
		require.Len(t, resp.Stock, 1)
		assert.Equal(t, replacement.ID, resp.Stock[0].ItemID)
		assert.Equal(t, int64(1), resp.Stock[0].Position)
		assert.Equal(t, 2, resp.Stock[0].RemainingQuantity)
	})

	t.Run("blocked once the raffle has distributions", func(t *testing.T) {
		f := newFixture()
		member := f.seedMember("Aeryn")
		item := f.seedItem("Winter Blade", catalog.RarityEpic)
		created, err := f.raffleSvc.Create(ctx, CreateRaffleRequest{
			Name: "Winter Drop", Date: raffleDate(),
			MemberIDs: []uuid.UUID{member.ID},
			Items:     []StockAttachmentRequest{{ItemID: item.ID, InitialQuantity: 2}},
		})
		require.NoError(t, err)

		_, err = f.distribution.DistributeAuto(ctx, created.ID, AutoDistributionRequest{MemberID: member.ID})
		require.NoError(t, err)

		_, err = f.raffleSvc.SyncItems(ctx, created.ID, SyncItemsRequest{
			Items: []StockAttachmentRequest{{ItemID: item.ID, InitialQuantity: 10}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_DISTRIBUTIONS", domainErr.Code)
	})
}
