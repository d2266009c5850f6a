package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// Rarity classifies how hard an item is to obtain
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ValidRarities lists all accepted rarity values
var ValidRarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// IsValid reports whether the rarity is one of the known values
func (r Rarity) IsValid() bool {
	for _, v := range ValidRarities {
		if r == v {
			return true
		}
	}
	return false
}

// Item is a prize that can be staged in raffle stock ledgers.
// Item names are unique within the (rarity, category, tradeable) combination,
// not globally: "Sword" may exist as both a common and a legendary drop.
type Item struct {
	shared.BaseAggregateRoot
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_item_identity,priority:1"`
	Rarity     Rarity    `gorm:"type:varchar(20);not null;uniqueIndex:idx_item_identity,priority:2"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_identity,priority:3;index"`
	Tradeable  bool      `gorm:"not null;default:false;uniqueIndex:idx_item_identity,priority:4"`
	ImageKey   string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(name string, rarity Rarity, categoryID uuid.UUID, tradeable bool) (*Item, error) {
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if !rarity.IsValid() {
		return nil, shared.NewDomainError("INVALID_RARITY", "Unknown item rarity: "+string(rarity))
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Item category is required")
	}

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Rarity:            rarity,
		CategoryID:        categoryID,
		Tradeable:         tradeable,
	}

	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's attributes
func (i *Item) Update(name string, rarity Rarity, categoryID uuid.UUID, tradeable bool) error {
	if err := validateItemName(name); err != nil {
		return err
	}
	if !rarity.IsValid() {
		return shared.NewDomainError("INVALID_RARITY", "Unknown item rarity: "+string(rarity))
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Item category is required")
	}

	i.Name = name
	i.Rarity = rarity
	i.CategoryID = categoryID
	i.Tradeable = tradeable
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewItemUpdatedEvent(i))

	return nil
}

// SetImageKey records the object storage key of the item's artwork
func (i *Item) SetImageKey(key string) {
	i.ImageKey = key
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

func validateItemName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 100 characters")
	}
	return nil
}
