package incubation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturehub/backend/internal/domain/shared"
)

func newTestCohort(t *testing.T, capacity int) *Cohort {
	t.Helper()
	c, err := NewCohort("Spring 2026", capacity)
	require.NoError(t, err)
	return c
}

func TestNewCohort(t *testing.T) {
	t.Run("valid cohort", func(t *testing.T) {
		c := newTestCohort(t, 10)
		assert.Equal(t, CohortStatusDraft, c.Status)
		assert.Equal(t, 0, c.AcceptedCount)
	})

	t.Run("non-positive capacity rejected", func(t *testing.T) {
		_, err := NewCohort("X", 0)
		assert.Error(t, err)
	})
}

func TestCohort_Lifecycle(t *testing.T) {
	c := newTestCohort(t, 10)

	require.NoError(t, c.OpenApplications(nil))
	assert.True(t, c.IsAcceptingApplications())

	require.NoError(t, c.StartReviewing(nil))
	assert.False(t, c.IsAcceptingApplications())

	require.NoError(t, c.Activate(nil))
	require.NoError(t, c.Complete(nil))
	require.NoError(t, c.Archive(nil))

	assert.Equal(t, CohortStatusArchived, c.Status)
	assert.Len(t, c.GetStatusChanges(), 6)
}

func TestCohort_SkippingStagesRejected(t *testing.T) {
	c := newTestCohort(t, 10)
	assert.Error(t, c.Activate(nil))
	assert.Error(t, c.Archive(nil))
	assert.Equal(t, CohortStatusDraft, c.Status)
}

func TestCohort_Capacity(t *testing.T) {
	c := newTestCohort(t, 2)

	assert.True(t, c.HasCapacity())
	require.NoError(t, c.IncrementAccepted())
	require.NoError(t, c.IncrementAccepted())

	assert.False(t, c.HasCapacity())
	assert.ErrorIs(t, c.IncrementAccepted(), shared.ErrCohortFull)
	assert.Equal(t, 2, c.AcceptedCount)

	c.DecrementAccepted()
	assert.True(t, c.HasCapacity())

	c.DecrementAccepted()
	c.DecrementAccepted()
	assert.Equal(t, 0, c.AcceptedCount, "counter clamps at zero")
}

func TestCohortStatus_TerminalState(t *testing.T) {
	all := []CohortStatus{
		CohortStatusDraft, CohortStatusOpenForApplications, CohortStatusReviewing,
		CohortStatusActive, CohortStatusCompleted, CohortStatusArchived,
	}

	assert.True(t, CohortStatusArchived.IsTerminal())
	for _, target := range all {
		assert.False(t, CohortStatusArchived.CanTransitionTo(target))
	}
}
