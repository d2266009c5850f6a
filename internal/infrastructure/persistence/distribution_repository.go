package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/raffle"
	"github.com/raffle/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDistributionRepository implements DistributionRepository using GORM.
// Distribution records are append-only; there is no update or delete path.
type GormDistributionRepository struct {
	db *gorm.DB
}

// NewGormDistributionRepository creates a new GormDistributionRepository
func NewGormDistributionRepository(db *gorm.DB) *GormDistributionRepository {
	return &GormDistributionRepository{db: db}
}

// Create appends a distribution record
func (r *GormDistributionRepository) Create(ctx context.Context, d *raffle.Distribution) error {
	return translateError(r.db.WithContext(ctx).Create(d).Error)
}

// FindByID finds a distribution by its ID
func (r *GormDistributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*raffle.Distribution, error) {
	var d raffle.Distribution
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds all distributions matching the filter
func (r *GormDistributionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]raffle.Distribution, error) {
	var distributions []raffle.Distribution
	query := r.applyFilter(r.db.WithContext(ctx).Model(&raffle.Distribution{}), filter)

	if err := query.Find(&distributions).Error; err != nil {
		return nil, err
	}
	return distributions, nil
}

// FindByRaffle returns all distributions of a raffle, oldest first
func (r *GormDistributionRepository) FindByRaffle(ctx context.Context, raffleID uuid.UUID) ([]raffle.Distribution, error) {
	var distributions []raffle.Distribution
	if err := r.db.WithContext(ctx).
		Where("raffle_id = ?", raffleID).
		Order("created_at ASC").
		Find(&distributions).Error; err != nil {
		return nil, err
	}
	return distributions, nil
}

// FindByRaffleAndMember returns one member's winnings in a raffle
func (r *GormDistributionRepository) FindByRaffleAndMember(ctx context.Context, raffleID, memberID uuid.UUID) ([]raffle.Distribution, error) {
	var distributions []raffle.Distribution
	if err := r.db.WithContext(ctx).
		Where("raffle_id = ? AND member_id = ?", raffleID, memberID).
		Order("created_at ASC").
		Find(&distributions).Error; err != nil {
		return nil, err
	}
	return distributions, nil
}

// FindByRaffleAndItem returns all allocations of one item in a raffle
func (r *GormDistributionRepository) FindByRaffleAndItem(ctx context.Context, raffleID, itemID uuid.UUID) ([]raffle.Distribution, error) {
	var distributions []raffle.Distribution
	if err := r.db.WithContext(ctx).
		Where("raffle_id = ? AND item_id = ?", raffleID, itemID).
		Order("created_at ASC").
		Find(&distributions).Error; err != nil {
		return nil, err
	}
	return distributions, nil
}

// Count counts distributions matching the filter
func (r *GormDistributionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&raffle.Distribution{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForMembers checks whether any of the members hold distributions in the raffle
func (r *GormDistributionRepository) ExistsForMembers(ctx context.Context, raffleID uuid.UUID, memberIDs []uuid.UUID) (bool, error) {
	if len(memberIDs) == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&raffle.Distribution{}).
		Where("raffle_id = ? AND member_id IN ?", raffleID, memberIDs).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsForRaffle checks whether the raffle has any distributions at all
func (r *GormDistributionRepository) ExistsForRaffle(ctx context.Context, raffleID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&raffle.Distribution{}).
		Where("raffle_id = ?", raffleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormDistributionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DistributionSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDistributionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "raffle_id":
			query = query.Where("raffle_id = ?", value)
		case "member_id":
			query = query.Where("member_id = ?", value)
		case "item_id":
			query = query.Where("item_id = ?", value)
		}
	}

	return query
}

// Ensure GormDistributionRepository implements DistributionRepository
var _ raffle.DistributionRepository = (*GormDistributionRepository)(nil)
