package raffle

import (
	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRaffle = "Raffle"

// Event type constants
const (
	EventTypeRaffleCreated         = "RaffleCreated"
	EventTypeRaffleUpdated         = "RaffleUpdated"
	EventTypeRaffleStatusChanged   = "RaffleStatusChanged"
	EventTypeRaffleMembersAttached = "RaffleMembersAttached"
	EventTypeRaffleItemsAttached   = "RaffleItemsAttached"
	EventTypeRaffleMembersSynced   = "RaffleMembersSynced"
	EventTypeRaffleItemsSynced     = "RaffleItemsSynced"
	EventTypeStockAllocated        = "StockAllocated"
)

// RaffleCreatedEvent is published when a new raffle is created
type RaffleCreatedEvent struct {
	shared.BaseDomainEvent
	RaffleID uuid.UUID `json:"raffle_id"`
	Name     string    `json:"name"`
}

// NewRaffleCreatedEvent creates a new RaffleCreatedEvent
func NewRaffleCreatedEvent(r *Raffle) *RaffleCreatedEvent {
	return &RaffleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleCreated, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		Name:            r.Name,
	}
}

// RaffleUpdatedEvent is published when a raffle's descriptive fields change
type RaffleUpdatedEvent struct {
	shared.BaseDomainEvent
	RaffleID uuid.UUID `json:"raffle_id"`
	Name     string    `json:"name"`
}

// NewRaffleUpdatedEvent creates a new RaffleUpdatedEvent
func NewRaffleUpdatedEvent(r *Raffle) *RaffleUpdatedEvent {
	return &RaffleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleUpdated, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		Name:            r.Name,
	}
}

// RaffleStatusChangedEvent is published on a lifecycle transition
type RaffleStatusChangedEvent struct {
	shared.BaseDomainEvent
	RaffleID  uuid.UUID `json:"raffle_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewRaffleStatusChangedEvent creates a new RaffleStatusChangedEvent
func NewRaffleStatusChangedEvent(r *Raffle, from, to Status) *RaffleStatusChangedEvent {
	return &RaffleStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleStatusChanged, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		OldStatus:       from,
		NewStatus:       to,
	}
}

// RaffleMembersAttachedEvent is published when members join the roster
type RaffleMembersAttachedEvent struct {
	shared.BaseDomainEvent
	RaffleID  uuid.UUID   `json:"raffle_id"`
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// NewRaffleMembersAttachedEvent creates a new RaffleMembersAttachedEvent
func NewRaffleMembersAttachedEvent(r *Raffle, memberIDs []uuid.UUID) *RaffleMembersAttachedEvent {
	return &RaffleMembersAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleMembersAttached, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		MemberIDs:       memberIDs,
	}
}

// RaffleItemsAttachedEvent is published when items are staged on the ledger
type RaffleItemsAttachedEvent struct {
	shared.BaseDomainEvent
	RaffleID uuid.UUID         `json:"raffle_id"`
	Items    []StockAttachment `json:"items"`
}

// NewRaffleItemsAttachedEvent creates a new RaffleItemsAttachedEvent
func NewRaffleItemsAttachedEvent(r *Raffle, items []StockAttachment) *RaffleItemsAttachedEvent {
	return &RaffleItemsAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleItemsAttached, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		Items:           items,
	}
}

// RaffleMembersSyncedEvent is published when the roster is fully replaced
type RaffleMembersSyncedEvent struct {
	shared.BaseDomainEvent
	RaffleID  uuid.UUID   `json:"raffle_id"`
	MemberIDs []uuid.UUID `json:"member_ids"`
}

// NewRaffleMembersSyncedEvent creates a new RaffleMembersSyncedEvent
func NewRaffleMembersSyncedEvent(r *Raffle, memberIDs []uuid.UUID) *RaffleMembersSyncedEvent {
	return &RaffleMembersSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleMembersSynced, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		MemberIDs:       memberIDs,
	}
}

// RaffleItemsSyncedEvent is published when the stock ledger is fully replaced
type RaffleItemsSyncedEvent struct {
	shared.BaseDomainEvent
	RaffleID uuid.UUID         `json:"raffle_id"`
	Items    []StockAttachment `json:"items"`
}

// NewRaffleItemsSyncedEvent creates a new RaffleItemsSyncedEvent
func NewRaffleItemsSyncedEvent(r *Raffle, items []StockAttachment) *RaffleItemsSyncedEvent {
	return &RaffleItemsSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRaffleItemsSynced, AggregateTypeRaffle, r.ID),
		RaffleID:        r.ID,
		Items:           items,
	}
}

// StockAllocatedEvent is published after a distribution commits
type StockAllocatedEvent struct {
	shared.BaseDomainEvent
	RaffleID       uuid.UUID `json:"raffle_id"`
	DistributionID uuid.UUID `json:"distribution_id"`
	MemberID       uuid.UUID `json:"member_id"`
	ItemID         uuid.UUID `json:"item_id"`
	Quantity       int       `json:"quantity"`
	Remaining      int       `json:"remaining"`
}

// NewStockAllocatedEvent creates a new StockAllocatedEvent
func NewStockAllocatedEvent(d *Distribution, remaining int) *StockAllocatedEvent {
	return &StockAllocatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAllocated, AggregateTypeRaffle, d.RaffleID),
		RaffleID:        d.RaffleID,
		DistributionID:  d.ID,
		MemberID:        d.MemberID,
		ItemID:          d.ItemID,
		Quantity:        d.Quantity,
		Remaining:       remaining,
	}
}
