package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	t.Run("creates a valid event", func(t *testing.T) {
		e, err := NewEvent("Annual Gala", nil, future, "org-1", "loc-1")
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "org-1", e.OrganizerID)
		assert.Nil(t, e.Description)
	})

	t.Run("enforces the title length", func(t *testing.T) {
		_, err := NewEvent("Gala", nil, future, "org-1", "loc-1")
		assert.ErrorIs(t, err, ErrTitleTooShort)
	})

	t.Run("rejects past dates", func(t *testing.T) {
		_, err := NewEvent("Annual Gala", nil, time.Now().Add(-time.Minute), "org-1", "loc-1")
		assert.ErrorIs(t, err, ErrDateInPast)
	})
}

func TestEventMutations(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	e, err := NewEvent("Annual Gala", nil, future, "org-1", "loc-1")
	require.NoError(t, err)

	assert.ErrorIs(t, e.Rename("Gala"), ErrTitleTooShort)
	assert.Equal(t, "Annual Gala", e.Title)

	require.NoError(t, e.Rename("Winter Gala"))
	assert.Equal(t, "Winter Gala", e.Title)

	assert.ErrorIs(t, e.Reschedule(time.Now().Add(-time.Hour)), ErrDateInPast)
	later := future.Add(time.Hour)
	require.NoError(t, e.Reschedule(later))
	assert.True(t, e.Date.Equal(later))

	desc := "black tie"
	e.UpdateDescription(&desc)
	require.NotNil(t, e.Description)
	e.UpdateDescription(nil)
	assert.Nil(t, e.Description)
}

func TestEventOwnership(t *testing.T) {
	e := RestoreEvent("e1", "Annual Gala", nil, time.Now().Add(-time.Hour), "org-1", "loc-1")
	assert.True(t, e.IsOwnedBy("org-1"))
	assert.False(t, e.IsOwnedBy("org-2"))
}
