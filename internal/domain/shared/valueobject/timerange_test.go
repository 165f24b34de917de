package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end time.Time) TimeRange {
	t.Helper()
	r, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewTimeRange(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("valid range", func(t *testing.T) {
		r, err := NewTimeRange(base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, r.Duration())
	})

	t.Run("end equal to start rejected", func(t *testing.T) {
		_, err := NewTimeRange(base, base)
		assert.Error(t, err)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		_, err := NewTimeRange(base, base.Add(-time.Minute))
		assert.Error(t, err)
	})
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := mustRange(t, base, base.Add(time.Hour))

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		overlap bool
	}{
		{"identical interval", base, base.Add(time.Hour), true},
		{"partial overlap at end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"partial overlap at start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"fully contained", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"fully containing", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"back to back after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"back to back before", base.Add(-time.Hour), base, false},
		{"disjoint after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.overlap, candidate.Overlaps(existing))
			assert.Equal(t, tt.overlap, existing.Overlaps(candidate))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	r := mustRange(t, base, base.Add(time.Hour))

	assert.True(t, r.Contains(base), "start is inclusive")
	assert.True(t, r.Contains(base.Add(30*time.Minute)))
	assert.False(t, r.Contains(base.Add(time.Hour)), "end is exclusive")
	assert.False(t, r.Contains(base.Add(-time.Second)))
}
