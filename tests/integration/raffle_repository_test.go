package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raffle/backend/internal/domain/catalog"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"github.com/raffle/backend/internal/infrastructure/persistence"
)

// TestMain runs before any tests and handles cleanup
func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

// seedCatalog inserts a category, the given members, and items so raffles
// have valid foreign keys to point at.
func seedCatalog(t *testing.T, testDB *TestDB, categoryName string, memberNames []string, itemNames []string) ([]uuid.UUID, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	categoryRepo := persistence.NewGormCategoryRepository(testDB.DB)
	memberRepo := persistence.NewGormMemberRepository(testDB.DB)
	itemRepo := persistence.NewGormItemRepository(testDB.DB)

	category, err := catalog.NewCategory(categoryName)
	require.NoError(t, err)
	require.NoError(t, categoryRepo.Save(ctx, category))

	memberIDs := make([]uuid.UUID, 0, len(memberNames))
	for _, name := range memberNames {
		member, err := catalog.NewMember(name, "Warrior", "DPS", 60, decimal.NewFromInt(1200))
		require.NoError(t, err)
		require.NoError(t, memberRepo.Save(ctx, member))
		memberIDs = append(memberIDs, member.ID)
	}

	itemIDs := make([]uuid.UUID, 0, len(itemNames))
	for _, name := range itemNames {
		item, err := catalog.NewItem(name, catalog.RarityEpic, category.ID, true)
		require.NoError(t, err)
		require.NoError(t, itemRepo.Save(ctx, item))
		itemIDs = append(itemIDs, item.ID)
	}

	return memberIDs, itemIDs
}

// TestRaffleRepository_Integration tests the RaffleRepository against a real PostgreSQL database
func TestRaffleRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	repo := persistence.NewGormRaffleRepository(testDB.DB)
	ctx := context.Background()

	memberIDs, itemIDs := seedCatalog(t, testDB, "Weapons",
		[]string{"Aria", "Borin", "Cael"},
		[]string{"Flaming Sword", "Ice Dagger", "Storm Bow"},
	)

	raffleDate := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	t.Run("Save and FindByID with roster and ledger", func(t *testing.T) {
		r, err := raffle.NewRaffle("Spring Raid Loot", "Post-raid distribution", raffleDate)
		require.NoError(t, err)
		require.NoError(t, r.AttachMembers(memberIDs[:2]))
		require.NoError(t, r.AttachItems([]raffle.StockAttachment{
			{ItemID: itemIDs[0], InitialQuantity: 3},
			{ItemID: itemIDs[1], InitialQuantity: 1},
		}))

		err = repo.Save(ctx, r)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, found.ID)
		assert.Equal(t, "Spring Raid Loot", found.Name)
		assert.Equal(t, raffle.StatusPending, found.Status)
		assert.Len(t, found.Roster, 2)
		require.Len(t, found.Stock, 2)

		// Ledger entries come back in attachment order
		assert.Equal(t, itemIDs[0], found.Stock[0].ItemID)
		assert.Equal(t, itemIDs[1], found.Stock[1].ItemID)
		assert.Less(t, found.Stock[0].Position, found.Stock[1].Position)
		assert.Equal(t, 3, found.Stock[0].InitialQuantity)
		assert.Equal(t, 3, found.Stock[0].RemainingQuantity)
	})

	t.Run("FindByID not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("SyncMembers shrink deletes roster rows", func(t *testing.T) {
		r, err := raffle.NewRaffle("Roster Shrink", "", raffleDate)
		require.NoError(t, err)
		require.NoError(t, r.AttachMembers(memberIDs))
		require.NoError(t, repo.Save(ctx, r))

		require.NoError(t, r.SyncMembers(memberIDs[:1]))
		require.NoError(t, repo.Save(ctx, r))

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		require.Len(t, found.Roster, 1)
		assert.Equal(t, memberIDs[0], found.Roster[0].MemberID)

		var rosterCount int64
		testDB.DB.Table("raffle_members").Where("raffle_id = ?", r.ID).Count(&rosterCount)
		assert.Equal(t, int64(1), rosterCount)
	})

	t.Run("SyncItems overwrite resets quantities", func(t *testing.T) {
		r, err := raffle.NewRaffle("Ledger Overwrite", "", raffleDate)
		require.NoError(t, err)
		require.NoError(t, r.AttachItems([]raffle.StockAttachment{
			{ItemID: itemIDs[0], InitialQuantity: 5},
			{ItemID: itemIDs[1], InitialQuantity: 2},
		}))
		require.NoError(t, repo.Save(ctx, r))

		require.NoError(t, r.SyncItems([]raffle.StockAttachment{
			{ItemID: itemIDs[0], InitialQuantity: 1},
			{ItemID: itemIDs[2], InitialQuantity: 4},
		}))
		require.NoError(t, repo.Save(ctx, r))

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		require.Len(t, found.Stock, 2)
		assert.Equal(t, itemIDs[0], found.Stock[0].ItemID)
		assert.Equal(t, 1, found.Stock[0].InitialQuantity)
		assert.Equal(t, 1, found.Stock[0].RemainingQuantity)
		assert.Equal(t, itemIDs[2], found.Stock[1].ItemID)

		var stockCount int64
		testDB.DB.Table("raffle_items").Where("raffle_id = ? AND item_id = ?", r.ID, itemIDs[1]).Count(&stockCount)
		assert.Equal(t, int64(0), stockCount)
	})

	t.Run("Delete cascades to roster and ledger", func(t *testing.T) {
		r, err := raffle.NewRaffle("Doomed Raffle", "", raffleDate)
		require.NoError(t, err)
		require.NoError(t, r.AttachMembers(memberIDs[:1]))
		require.NoError(t, r.AttachItems([]raffle.StockAttachment{
			{ItemID: itemIDs[0], InitialQuantity: 2},
		}))
		require.NoError(t, repo.Save(ctx, r))

		require.NoError(t, repo.Delete(ctx, r.ID))

		_, err = repo.FindByID(ctx, r.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var rosterCount, stockCount int64
		testDB.DB.Table("raffle_members").Where("raffle_id = ?", r.ID).Count(&rosterCount)
		testDB.DB.Table("raffle_items").Where("raffle_id = ?", r.ID).Count(&stockCount)
		assert.Equal(t, int64(0), rosterCount)
		assert.Equal(t, int64(0), stockCount)
	})

	t.Run("member and item deletes cascade to dependent rows", func(t *testing.T) {
		doomedMembers, doomedItems := seedCatalog(t, testDB, "Relics",
			[]string{"Gale"},
			[]string{"Cursed Ring"},
		)

		r, err := raffle.NewRaffle("Cascade Check", "", raffleDate)
		require.NoError(t, err)
		require.NoError(t, r.AttachMembers(doomedMembers))
		require.NoError(t, r.AttachItems([]raffle.StockAttachment{
			{ItemID: doomedItems[0], InitialQuantity: 1},
		}))
		require.NoError(t, repo.Save(ctx, r))

		require.NoError(t, testDB.DB.Exec("DELETE FROM members WHERE id = ?", doomedMembers[0]).Error)
		require.NoError(t, testDB.DB.Exec("DELETE FROM items WHERE id = ?", doomedItems[0]).Error)

		var rosterCount, stockCount int64
		testDB.DB.Table("raffle_members").Where("raffle_id = ?", r.ID).Count(&rosterCount)
		testDB.DB.Table("raffle_items").Where("raffle_id = ?", r.ID).Count(&stockCount)
		assert.Equal(t, int64(0), rosterCount)
		assert.Equal(t, int64(0), stockCount)
	})

	t.Run("ExistsByName", func(t *testing.T) {
		r, err := raffle.NewRaffle("Named Raffle", "", raffleDate)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, r))

		exists, err := repo.ExistsByName(ctx, "Named Raffle")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, "No Such Raffle")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("FindAll filters by status", func(t *testing.T) {
		r, err := raffle.NewRaffle("Ongoing Raffle", "", raffleDate)
		require.NoError(t, err)
		require.NoError(t, r.ChangeStatus(raffle.StatusOngoing))
		require.NoError(t, repo.Save(ctx, r))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(raffle.StatusOngoing)

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.NotEmpty(t, found)
		for _, row := range found {
			assert.Equal(t, raffle.StatusOngoing, row.Status)
		}
	})
}
