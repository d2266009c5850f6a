package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
// The ForUpdate methods rely on SELECT ... FOR UPDATE row locks and must run
// inside a transaction scope; outside one the lock is released immediately
// and provides no protection.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindFirstAvailableForUpdate locks and returns the earliest-attached ledger
// entry that still has units. Concurrent allocations against the same raffle
// serialize on this lock, so check-and-decrement stays race free.
func (r *GormStockRepository) FindFirstAvailableForUpdate(ctx context.Context, raffleID uuid.UUID) (*raffle.StockEntry, error) {
	var entry raffle.StockEntry
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("raffle_id = ? AND remaining_quantity > 0", raffleID).
		Order("position ASC").
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, translateError(err)
	}
	return &entry, nil
}

// FindForUpdate locks and returns the ledger entry for (raffle, item)
func (r *GormStockRepository) FindForUpdate(ctx context.Context, raffleID, itemID uuid.UUID) (*raffle.StockEntry, error) {
	var entry raffle.StockEntry
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("raffle_id = ? AND item_id = ?", raffleID, itemID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, translateError(err)
	}
	return &entry, nil
}

// FindByRaffle returns all ledger entries for a raffle in attachment order
func (r *GormStockRepository) FindByRaffle(ctx context.Context, raffleID uuid.UUID) ([]raffle.StockEntry, error) {
	var entries []raffle.StockEntry
	if err := r.db.WithContext(ctx).
		Where("raffle_id = ?", raffleID).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save persists a mutated ledger entry
func (r *GormStockRepository) Save(ctx context.Context, entry *raffle.StockEntry) error {
	return translateError(r.db.WithContext(ctx).Save(entry).Error)
}

// Ensure GormStockRepository implements StockRepository
var _ raffle.StockRepository = (*GormStockRepository)(nil)
