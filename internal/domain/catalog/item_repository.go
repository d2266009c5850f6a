package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByIDs finds all items with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByIdentity checks the (name, rarity, category, tradeable) uniqueness rule
	ExistsByIdentity(ctx context.Context, name string, rarity Rarity, categoryID uuid.UUID, tradeable bool) (bool, error)
}
