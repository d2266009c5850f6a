package catalog

import (
	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeItem = "Item"

// Event type constants
const (
	EventTypeItemCreated = "ItemCreated"
	EventTypeItemUpdated = "ItemUpdated"
)

// ItemCreatedEvent is published when a new item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	CategoryID uuid.UUID `json:"category_id"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, AggregateTypeItem, item.ID),
		ItemID:          item.ID,
		Name:            item.Name,
		Rarity:          item.Rarity,
		CategoryID:      item.CategoryID,
	}
}

// ItemUpdatedEvent is published when an item is updated
type ItemUpdatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
}

// NewItemUpdatedEvent creates a new ItemUpdatedEvent
func NewItemUpdatedEvent(item *Item) *ItemUpdatedEvent {
	return &ItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemUpdated, AggregateTypeItem, item.ID),
		ItemID:          item.ID,
		Name:            item.Name,
	}
}
