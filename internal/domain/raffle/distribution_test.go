package raffle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistribution(t *testing.T) {
	raffleID, memberID, itemID := uuid.New(), uuid.New(), uuid.New()

	t.Run("creates record", func(t *testing.T) {
		d, err := NewDistribution(raffleID, memberID, itemID, 3)

		require.NoError(t, err)
		assert.Equal(t, raffleID, d.RaffleID)
		assert.Equal(t, memberID, d.MemberID)
		assert.Equal(t, itemID, d.ItemID)
		assert.Equal(t, 3, d.Quantity)
		assert.False(t, d.CreatedAt.IsZero())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewDistribution(raffleID, memberID, itemID, 0)
		require.Error(t, err)

		_, err = NewDistribution(raffleID, memberID, itemID, -2)
		require.Error(t, err)
	})
}
