package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRaffleRepository implements RaffleRepository using GORM
type GormRaffleRepository struct {
	db *gorm.DB
}

// NewGormRaffleRepository creates a new GormRaffleRepository
func NewGormRaffleRepository(db *gorm.DB) *GormRaffleRepository {
	return &GormRaffleRepository{db: db}
}

// FindByID finds a raffle by its ID with roster and stock ledger loaded.
// The ledger comes back in attachment order.
func (r *GormRaffleRepository) FindByID(ctx context.Context, id uuid.UUID) (*raffle.Raffle, error) {
	var entity raffle.Raffle
	if err := r.db.WithContext(ctx).
		Preload("Roster", func(db *gorm.DB) *gorm.DB {
			return db.Order("raffle_members.created_at ASC")
		}).
		Preload("Stock", func(db *gorm.DB) *gorm.DB {
			return db.Order("raffle_items.position ASC")
		}).
		First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, translateError(err)
	}
	return &entity, nil
}

// FindAll finds all raffles matching the filter. Roster and ledger are not
// loaded; list views only need the raffle header.
func (r *GormRaffleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]raffle.Raffle, error) {
	var raffles []raffle.Raffle
	query := r.applyFilter(r.db.WithContext(ctx).Model(&raffle.Raffle{}), filter)

	if err := query.Find(&raffles).Error; err != nil {
		return nil, err
	}
	return raffles, nil
}

// Save persists the raffle together with its roster and stock ledger.
// Association rows absent from the aggregate are deleted, so a sync that
// shrinks the roster or replaces the ledger lands as a single consistent
// write.
func (r *GormRaffleRepository) Save(ctx context.Context, entity *raffle.Raffle) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roster", "Stock").Save(entity).Error; err != nil {
			return err
		}

		if err := r.syncRoster(tx, entity); err != nil {
			return err
		}
		return r.syncStock(tx, entity)
	}))
}

func (r *GormRaffleRepository) syncRoster(tx *gorm.DB, entity *raffle.Raffle) error {
	keep := make([]uuid.UUID, 0, len(entity.Roster))
	for i := range entity.Roster {
		keep = append(keep, entity.Roster[i].ID)
	}

	del := tx.Where("raffle_id = ?", entity.ID)
	if len(keep) > 0 {
		del = del.Where("id NOT IN ?", keep)
	}
	if err := del.Delete(&raffle.RosterEntry{}).Error; err != nil {
		return err
	}

	for i := range entity.Roster {
		if err := tx.Save(&entity.Roster[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormRaffleRepository) syncStock(tx *gorm.DB, entity *raffle.Raffle) error {
	keep := make([]uuid.UUID, 0, len(entity.Stock))
	for i := range entity.Stock {
		keep = append(keep, entity.Stock[i].ID)
	}

	del := tx.Where("raffle_id = ?", entity.ID)
	if len(keep) > 0 {
		del = del.Where("id NOT IN ?", keep)
	}
	if err := del.Delete(&raffle.StockEntry{}).Error; err != nil {
		return err
	}

	for i := range entity.Stock {
		if err := tx.Save(&entity.Stock[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a raffle. Roster, ledger, and distribution rows are removed
// by the database's ON DELETE CASCADE constraints.
func (r *GormRaffleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&raffle.Raffle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts raffles matching the filter
func (r *GormRaffleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&raffle.Raffle{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks the global raffle name uniqueness rule
func (r *GormRaffleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&raffle.Raffle{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormRaffleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RaffleSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRaffleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date <= ?", value)
		}
	}

	return query
}

// Ensure GormRaffleRepository implements RaffleRepository
var _ raffle.RaffleRepository = (*GormRaffleRepository)(nil)
