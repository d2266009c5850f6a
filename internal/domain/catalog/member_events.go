package catalog

import (
	"github.com/google/uuid"
	"github.com/raffle/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMember = "Member"

// Event type constants
const (
	EventTypeMemberCreated = "MemberCreated"
	EventTypeMemberUpdated = "MemberUpdated"
)

// MemberCreatedEvent is published when a new member is registered
type MemberCreatedEvent struct {
	shared.BaseDomainEvent
	MemberID uuid.UUID `json:"member_id"`
	Name     string    `json:"name"`
	Class    string    `json:"class"`
	Level    int       `json:"level"`
}

// NewMemberCreatedEvent creates a new MemberCreatedEvent
func NewMemberCreatedEvent(member *Member) *MemberCreatedEvent {
	return &MemberCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberCreated, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		Name:            member.Name,
		Class:           member.Class,
		Level:           member.Level,
	}
}

// MemberUpdatedEvent is published when a member's profile changes
type MemberUpdatedEvent struct {
	shared.BaseDomainEvent
	MemberID uuid.UUID `json:"member_id"`
	Name     string    `json:"name"`
}

// NewMemberUpdatedEvent creates a new MemberUpdatedEvent
func NewMemberUpdatedEvent(member *Member) *MemberUpdatedEvent {
	return &MemberUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberUpdated, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		Name:            member.Name,
	}
}
