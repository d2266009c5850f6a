package catalog

import (
	"strings"
	"time"

	"github.com/raffle/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Member is a guild member eligible for raffle rosters.
// Members are referenced by raffles, never owned by them.
type Member struct {
	shared.BaseAggregateRoot
	Name  string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Class string          `gorm:"type:varchar(50);not null"`
	Role  string          `gorm:"type:varchar(50);not null"`
	Level int             `gorm:"not null;default:1"`
	Power decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "members"
}

// NewMember creates a new guild member
func NewMember(name, class, role string, level int, power decimal.Decimal) (*Member, error) {
	if err := validateMemberName(name); err != nil {
		return nil, err
	}
	if err := validateMemberStats(level, power); err != nil {
		return nil, err
	}

	member := &Member{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Class:             class,
		Role:              role,
		Level:             level,
		Power:             power,
	}

	member.AddDomainEvent(NewMemberCreatedEvent(member))

	return member, nil
}

// Update updates the member's profile
func (m *Member) Update(name, class, role string, level int, power decimal.Decimal) error {
	if err := validateMemberName(name); err != nil {
		return err
	}
	if err := validateMemberStats(level, power); err != nil {
		return err
	}

	m.Name = name
	m.Class = class
	m.Role = role
	m.Level = level
	m.Power = power
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberUpdatedEvent(m))

	return nil
}

func validateMemberName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Member name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Member name cannot exceed 100 characters")
	}
	return nil
}

func validateMemberStats(level int, power decimal.Decimal) error {
	if level < 1 {
		return shared.NewDomainError("INVALID_LEVEL", "Member level must be at least 1")
	}
	if power.IsNegative() {
		return shared.NewDomainError("INVALID_POWER", "Member power cannot be negative")
	}
	return nil
}
