package mentorship

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturehub/backend/internal/domain/shared/valueobject"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	slot, err := valueobject.NewTimeRange(start, start.Add(time.Hour))
	require.NoError(t, err)
	s, err := NewSession(uuid.New(), uuid.New(), slot, "fundraising")
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, SessionStatusPending, s.Status)
	assert.Equal(t, time.Hour, s.Slot().Duration())

	changes := s.GetStatusChanges()
	require.Len(t, changes, 1)
	assert.Equal(t, "PENDING", changes[0].ToStatus)
}

func TestSession_Lifecycle(t *testing.T) {
	t.Run("confirm then complete", func(t *testing.T) {
		s := newTestSession(t)
		require.NoError(t, s.Confirm(nil))
		require.NoError(t, s.Complete("productive", nil))

		assert.Equal(t, SessionStatusCompleted, s.Status)
		assert.Equal(t, "productive", s.Notes)
		assert.NotNil(t, s.CompletedAt)
	})

	t.Run("pending cannot complete directly", func(t *testing.T) {
		s := newTestSession(t)
		assert.Error(t, s.Complete("", nil))
	})

	t.Run("confirmed can be marked no-show", func(t *testing.T) {
		s := newTestSession(t)
		require.NoError(t, s.Confirm(nil))
		require.NoError(t, s.MarkNoShow(nil))
		assert.Equal(t, SessionStatusNoShow, s.Status)
	})

	t.Run("cancel frees capacity", func(t *testing.T) {
		s := newTestSession(t)
		assert.True(t, s.CountsAgainstCapacity())

		require.NoError(t, s.Cancel("mentor unavailable", nil))
		assert.False(t, s.CountsAgainstCapacity())
		assert.NotNil(t, s.CancelledAt)
	})
}

func TestSessionStatus_TerminalStates(t *testing.T) {
	all := []SessionStatus{
		SessionStatusPending, SessionStatusConfirmed, SessionStatusCompleted,
		SessionStatusCancelled, SessionStatusNoShow,
	}

	for _, terminal := range []SessionStatus{SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range all {
			assert.False(t, terminal.CanTransitionTo(target))
		}
	}
}

func TestNewMentor(t *testing.T) {
	t.Run("valid mentor", func(t *testing.T) {
		m, err := NewMentor("Sam Advisor", "sam@venturehub.io", "go-to-market", 3)
		require.NoError(t, err)
		assert.True(t, m.Active)
		assert.Equal(t, 3, m.MaxSessionsPerWeek)
	})

	t.Run("non-positive weekly cap rejected", func(t *testing.T) {
		_, err := NewMentor("Sam", "sam@venturehub.io", "", 0)
		assert.Error(t, err)
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		m, err := NewMentor("Sam", "sam@venturehub.io", "", 3)
		require.NoError(t, err)

		m.Deactivate()
		assert.False(t, m.Active)

		m.Activate()
		assert.True(t, m.Active)
	})
}
