package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	t.Run("creates member successfully", func(t *testing.T) {
		power := decimal.NewFromFloat(12345.67)
		member, err := NewMember("Aeryn", "mage", "dps", 60, power)

		require.NoError(t, err)
		assert.Equal(t, "Aeryn", member.Name)
		assert.Equal(t, "mage", member.Class)
		assert.Equal(t, "dps", member.Role)
		assert.Equal(t, 60, member.Level)
		assert.True(t, member.Power.Equal(power))

		events := member.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMemberCreated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewMember("", "mage", "dps", 60, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects level below 1", func(t *testing.T) {
		_, err := NewMember("Aeryn", "mage", "dps", 0, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative power", func(t *testing.T) {
		_, err := NewMember("Aeryn", "mage", "dps", 60, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestMemberUpdate(t *testing.T) {
	t.Run("updates profile and bumps version", func(t *testing.T) {
		member, err := NewMember("Aeryn", "mage", "dps", 60, decimal.NewFromInt(100))
		require.NoError(t, err)
		member.ClearDomainEvents()

		err = member.Update("Aeryn", "mage", "healer", 61, decimal.NewFromInt(150))

		require.NoError(t, err)
		assert.Equal(t, "healer", member.Role)
		assert.Equal(t, 61, member.Level)
		assert.Equal(t, 2, member.GetVersion())

		events := member.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeMemberUpdated, events[0].EventType())
	})

	t.Run("invalid update leaves member unchanged", func(t *testing.T) {
		member, err := NewMember("Aeryn", "mage", "dps", 60, decimal.NewFromInt(100))
		require.NoError(t, err)

		err = member.Update("Aeryn", "mage", "dps", -5, decimal.NewFromInt(100))

		require.Error(t, err)
		assert.Equal(t, 60, member.Level)
		assert.Equal(t, 1, member.GetVersion())
	})
}
