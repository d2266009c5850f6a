package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	// FindByID finds a member by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// FindByIDs finds all members with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Member, error)

	// FindAll finds all members matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Member, error)

	// Save creates or updates a member
	Save(ctx context.Context, member *Member) error

	// Delete deletes a member
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts members matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a member with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}
