package raffle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a raffle
type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
// The machine is pending -> ongoing -> completed; completed is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusOngoing
	case StatusOngoing:
		return target == StatusCompleted
	}
	return false
}

// RosterEntry links a member to a raffle. One entry per (raffle, member).
type RosterEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RaffleID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_raffle_member,priority:1"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roster_raffle_member,priority:2"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (RosterEntry) TableName() string {
	return "raffle_members"
}

// StockEntry is the per-(raffle, item) ledger row: how many units were staged
// and how many are still available. Position records attachment order and
// drives auto-distribution FIFO.
type StockEntry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	RaffleID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_raffle_item,priority:1"`
	ItemID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_raffle_item,priority:2"`
	Position          int64     `gorm:"not null"`
	InitialQuantity   int       `gorm:"not null"`
	RemainingQuantity int       `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "raffle_items"
}

// Available reports whether the entry still has undistributed units
func (s *StockEntry) Available() bool {
	return s.RemainingQuantity > 0
}

// Allocate removes quantity units from the entry. The ledger invariant
// 0 <= remaining <= initial always holds afterwards.
func (s *StockEntry) Allocate(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Allocation quantity must be at least 1")
	}
	if s.RemainingQuantity < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Not enough stock for item %s: available %d", s.ItemID, s.RemainingQuantity))
	}
	s.RemainingQuantity -= quantity
	s.UpdatedAt = time.Now()
	return nil
}

// StockAttachment is the input for attaching an item to the stock ledger
type StockAttachment struct {
	ItemID          uuid.UUID
	InitialQuantity int
}

// Raffle is the aggregate root: lifecycle state plus the member roster and
// the stock ledger it owns.
type Raffle struct {
	shared.BaseAggregateRoot
	Name        string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"not null"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'pending'"`
	Roster      []RosterEntry `gorm:"foreignKey:RaffleID;constraint:OnDelete:CASCADE"`
	Stock       []StockEntry  `gorm:"foreignKey:RaffleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Raffle) TableName() string {
	return "raffles"
}

// NewRaffle creates a new raffle in pending state with an empty roster and ledger
func NewRaffle(name, description string, date time.Time) (*Raffle, error) {
	if err := validateRaffleName(name); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Raffle date is required")
	}

	r := &Raffle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Date:              date,
		Status:            StatusPending,
	}

	r.AddDomainEvent(NewRaffleCreatedEvent(r))

	return r, nil
}

// Update updates the raffle's descriptive fields
func (r *Raffle) Update(name, description string, date time.Time) error {
	if err := validateRaffleName(name); err != nil {
		return err
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Raffle date is required")
	}

	r.Name = name
	r.Description = description
	r.Date = date
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRaffleUpdatedEvent(r))

	return nil
}

// ChangeStatus advances the raffle lifecycle. Only pending -> ongoing and
// ongoing -> completed are permitted; completed is terminal.
func (r *Raffle) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown raffle status: "+string(target))
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("Cannot change raffle status from %s to %s", r.Status, target))
	}

	from := r.Status
	r.Status = target
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRaffleStatusChangedEvent(r, from, target))

	return nil
}

// MemberOnRoster reports whether the member has joined this raffle
func (r *Raffle) MemberOnRoster(memberID uuid.UUID) bool {
	for i := range r.Roster {
		if r.Roster[i].MemberID == memberID {
			return true
		}
	}
	return false
}

// StockFor returns the ledger entry for the item, or nil if the item is not attached
func (r *Raffle) StockFor(itemID uuid.UUID) *StockEntry {
	for i := range r.Stock {
		if r.Stock[i].ItemID == itemID {
			return &r.Stock[i]
		}
	}
	return nil
}

// FirstAvailableStock returns the earliest-attached ledger entry that still
// has units, or nil when the raffle is exhausted.
func (r *Raffle) FirstAvailableStock() *StockEntry {
	var pick *StockEntry
	for i := range r.Stock {
		entry := &r.Stock[i]
		if !entry.Available() {
			continue
		}
		if pick == nil || entry.Position < pick.Position {
			pick = entry
		}
	}
	return pick
}

// AttachMembers adds members to the roster. A member can join at most once.
func (r *Raffle) AttachMembers(memberIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(r.Roster))
	for i := range r.Roster {
		seen[r.Roster[i].MemberID] = true
	}

	for _, memberID := range memberIDs {
		if seen[memberID] {
			return shared.NewDomainError("DUPLICATE_MEMBER",
				fmt.Sprintf("Member %s is already on the roster", memberID))
		}
		seen[memberID] = true
		r.Roster = append(r.Roster, RosterEntry{
			ID:        uuid.New(),
			RaffleID:  r.ID,
			MemberID:  memberID,
			CreatedAt: time.Now(),
		})
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRaffleMembersAttachedEvent(r, memberIDs))

	return nil
}

// AttachItems stages items in the stock ledger with remaining = initial.
// Attachment order is recorded so auto-distribution can pick FIFO.
func (r *Raffle) AttachItems(attachments []StockAttachment) error {
	seen := make(map[uuid.UUID]bool, len(r.Stock))
	position := int64(0)
	for i := range r.Stock {
		seen[r.Stock[i].ItemID] = true
		if r.Stock[i].Position > position {
			position = r.Stock[i].Position
		}
	}

	for _, att := range attachments {
		if att.InitialQuantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Initial quantity must be at least 1")
		}
		if seen[att.ItemID] {
			return shared.NewDomainError("DUPLICATE_STOCK_ENTRY",
				fmt.Sprintf("Item %s is already attached to the raffle", att.ItemID))
		}
		seen[att.ItemID] = true
		position++
		now := time.Now()
		r.Stock = append(r.Stock, StockEntry{
			ID:                uuid.New(),
			RaffleID:          r.ID,
			ItemID:            att.ItemID,
			Position:          position,
			InitialQuantity:   att.InitialQuantity,
			RemainingQuantity: att.InitialQuantity,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRaffleItemsAttachedEvent(r, attachments))

	return nil
}

// RemovedMembers returns the roster member IDs absent from the new set.
// Used to decide whether a sync would orphan distribution records.
func (r *Raffle) RemovedMembers(memberIDs []uuid.UUID) []uuid.UUID {
	keep := make(map[uuid.UUID]bool, len(memberIDs))
	for _, id := range memberIDs {
		keep[id] = true
	}
	var removed []uuid.UUID
	for i := range r.Roster {
		if !keep[r.Roster[i].MemberID] {
			removed = append(removed, r.Roster[i].MemberID)
		}
	}
	return removed
}

// AttachedItemIDs returns the IDs of all items currently on the ledger
func (r *Raffle) AttachedItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Stock))
	for i := range r.Stock {
		ids = append(ids, r.Stock[i].ItemID)
	}
	return ids
}

// SyncMembers replaces the full roster: entries absent from the new set are
// removed, new ones added. Callers must verify beforehand that no removed
// member has distribution records.
func (r *Raffle) SyncMembers(memberIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(memberIDs))
	existing := make(map[uuid.UUID]RosterEntry, len(r.Roster))
	for i := range r.Roster {
		existing[r.Roster[i].MemberID] = r.Roster[i]
	}

	roster := make([]RosterEntry, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		if seen[memberID] {
			return shared.NewDomainError("DUPLICATE_MEMBER",
				fmt.Sprintf("Member %s appears more than once", memberID))
		}
		seen[memberID] = true
		if entry, ok := existing[memberID]; ok {
			roster = append(roster, entry)
			continue
		}
		roster = append(roster, RosterEntry{
			ID:        uuid.New(),
			RaffleID:  r.ID,
			MemberID:  memberID,
			CreatedAt: time.Now(),
		})
	}

	r.Roster = roster
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRaffleMembersSyncedEvent(r, memberIDs))

	return nil
}

// SyncItems replaces the full stock ledger. Every entry in the new set gets
// remaining = initial again, and attachment order restarts from the input
// order. Callers must verify beforehand that the raffle has no distribution
// records against the ledger.
func (r *Raffle) SyncItems(attachments []StockAttachment) error {
	seen := make(map[uuid.UUID]bool, len(attachments))
	stock := make([]StockEntry, 0, len(attachments))

	for i, att := range attachments {
		if att.InitialQuantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Initial quantity must be at least 1")
		}
		if seen[att.ItemID] {
			return shared.NewDomainError("DUPLICATE_STOCK_ENTRY",
				fmt.Sprintf("Item %s appears more than once", att.ItemID))
		}
		seen[att.ItemID] = true
		now := time.Now()
		stock = append(stock, StockEntry{
			ID:                uuid.New(),
			RaffleID:          r.ID,
			ItemID:            att.ItemID,
			Position:          int64(i + 1),
			InitialQuantity:   att.InitialQuantity,
			RemainingQuantity: att.InitialQuantity,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	r.Stock = stock
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRaffleItemsSyncedEvent(r, attachments))

	return nil
}

func validateRaffleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Raffle name is required")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Raffle name cannot exceed 150 characters")
	}
	return nil
}
