package raffle

import (
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// Distribution is an immutable record of one allocation: quantity units of an
// item handed to a member within a raffle. Records are append-only; the stock
// ledger's remaining_quantity is derivable from them (initial - sum of
// quantities) and must stay consistent with the log.
type Distribution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RaffleID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Distribution) TableName() string {
	return "raffle_distributions"
}

// NewDistribution creates a new allocation record
func NewDistribution(raffleID, memberID, itemID uuid.UUID, quantity int) (*Distribution, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Distribution quantity must be at least 1")
	}
	return &Distribution{
		ID:        uuid.New(),
		RaffleID:  raffleID,
		MemberID:  memberID,
		ItemID:    itemID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}, nil
}
