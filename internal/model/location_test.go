package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("trims and validates", func(t *testing.T) {
		l, err := NewLocation("  Casa de Festas  ", " Rua A 100 ", 10, 4)
		require.NoError(t, err)
		assert.Equal(t, "Casa de Festas", l.Name)
		assert.Equal(t, "Rua A 100", l.Address)
	})

	t.Run("enforces the capacity invariants", func(t *testing.T) {
		_, err := NewLocation("ab", "Rua A", 10, 4)
		assert.ErrorIs(t, err, ErrLocationNameTooShort)

		_, err = NewLocation("Casa", "Rua A", 0, 4)
		assert.ErrorIs(t, err, ErrNonPositiveTables)

		_, err = NewLocation("Casa", "Rua A", 10, 0)
		assert.ErrorIs(t, err, ErrNonPositiveSeats)
	})
}

func TestLocationApply(t *testing.T) {
	l, err := NewLocation("Casa de Festas", "Rua A 100", 10, 4)
	require.NoError(t, err)

	t.Run("partial updates leave the rest alone", func(t *testing.T) {
		tables := 20
		require.NoError(t, l.Apply(LocationUpdate{MaxTables: &tables}))
		assert.Equal(t, 20, l.MaxTables)
		assert.Equal(t, "Casa de Festas", l.Name)
	})

	t.Run("a failed update leaves the venue untouched", func(t *testing.T) {
		short := "ab"
		zero := 0
		err := l.Apply(LocationUpdate{Name: &short, MaxTables: &zero})
		assert.ErrorIs(t, err, ErrLocationNameTooShort)
		assert.Equal(t, "Casa de Festas", l.Name)
		assert.Equal(t, 20, l.MaxTables)
	})
}
