package raffle

import (
	"context"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// RaffleRepository defines the interface for raffle persistence.
// FindByID loads the aggregate with its roster and stock ledger.
type RaffleRepository interface {
	// FindByID finds a raffle by its ID, roster and ledger included
	FindByID(ctx context.Context, id uuid.UUID) (*Raffle, error)

	// FindAll finds all raffles matching the filter (roster/ledger not loaded)
	FindAll(ctx context.Context, filter shared.Filter) ([]Raffle, error)

	// Save creates or updates a raffle including roster and ledger changes.
	// Roster/ledger rows absent from the aggregate are removed.
	Save(ctx context.Context, r *Raffle) error

	// Delete deletes a raffle; roster, ledger, and distributions cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts raffles matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks the global raffle name uniqueness rule
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// StockRepository provides lock-aware access to stock ledger rows.
// The ForUpdate variants take a row-level exclusive lock and are only valid
// inside a transaction scope; concurrent allocations against the same item
// serialize on that lock.
type StockRepository interface {
	// FindFirstAvailableForUpdate locks and returns the earliest-attached
	// entry with remaining > 0, or shared.ErrNotFound when the raffle is
	// exhausted.
	FindFirstAvailableForUpdate(ctx context.Context, raffleID uuid.UUID) (*StockEntry, error)

	// FindForUpdate locks and returns the entry for (raffle, item), or
	// shared.ErrNotFound when the item is not attached.
	FindForUpdate(ctx context.Context, raffleID, itemID uuid.UUID) (*StockEntry, error)

	// FindByRaffle returns all ledger entries for a raffle in attachment order
	FindByRaffle(ctx context.Context, raffleID uuid.UUID) ([]StockEntry, error)

	// Save persists a mutated ledger entry
	Save(ctx context.Context, entry *StockEntry) error
}

// DistributionRepository defines persistence for the append-only allocation log
type DistributionRepository interface {
	// Create appends a distribution record
	Create(ctx context.Context, d *Distribution) error

	// FindByID finds a distribution by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Distribution, error)

	// FindAll finds all distributions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Distribution, error)

	// FindByRaffle returns all distributions of a raffle, oldest first
	FindByRaffle(ctx context.Context, raffleID uuid.UUID) ([]Distribution, error)

	// FindByRaffleAndMember returns one member's winnings in a raffle
	FindByRaffleAndMember(ctx context.Context, raffleID, memberID uuid.UUID) ([]Distribution, error)

	// FindByRaffleAndItem returns all allocations of one item in a raffle
	FindByRaffleAndItem(ctx context.Context, raffleID, itemID uuid.UUID) ([]Distribution, error)

	// Count counts distributions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsForMembers checks whether any of the members hold distributions
	// in the raffle
	ExistsForMembers(ctx context.Context, raffleID uuid.UUID, memberIDs []uuid.UUID) (bool, error)

	// ExistsForRaffle checks whether the raffle has any distributions at all
	ExistsForRaffle(ctx context.Context, raffleID uuid.UUID) (bool, error)
}
