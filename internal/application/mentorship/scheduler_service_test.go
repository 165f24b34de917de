package mentorship

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venturehub/backend/internal/domain/mentorship"
	"github.com/venturehub/backend/internal/domain/shared"
)

type memMentorRepo struct {
	mu      sync.Mutex
	mentors map[uuid.UUID]*mentorship.Mentor
}

func newMemMentorRepo() *memMentorRepo {
	return &memMentorRepo{mentors: map[uuid.UUID]*mentorship.Mentor{}}
}

func (r *memMentorRepo) FindByID(_ context.Context, id uuid.UUID) (*mentorship.Mentor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mentors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *memMentorRepo) FindAll(_ context.Context, _ shared.Filter) ([]mentorship.Mentor, error) {
	return nil, nil
}

func (r *memMentorRepo) Save(_ context.Context, m *mentorship.Mentor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// buffered events and status changes are not columns, they must not
	// survive the round trip
	copied := *m
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.mentors[m.ID] = &copied
	return nil
}

func (r *memMentorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.mentors, id)
	return nil
}

func (r *memMentorRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.mentors)), nil
}

func (r *memMentorRepo) FindByEmail(_ context.Context, email string) (*mentorship.Mentor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mentors {
		if m.Email == email {
			copied := *m
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*mentorship.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[uuid.UUID]*mentorship.Session{}}
}

func (r *memSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*mentorship.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) FindAll(_ context.Context, _ shared.Filter) ([]mentorship.Session, error) {
	return nil, nil
}

func (r *memSessionRepo) Save(_ context.Context, s *mentorship.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	copied.ClearDomainEvents()
	copied.ClearStatusChanges()
	r.sessions[s.ID] = &copied
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.sessions)), nil
}

func (r *memSessionRepo) FindByMentorBetween(_ context.Context, mentorID uuid.UUID, from, to time.Time) ([]mentorship.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []mentorship.Session
	for _, s := range r.sessions {
		if s.MentorID == mentorID && s.StartAt.Before(to) && s.EndAt.After(from) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) FindByApplicationID(_ context.Context, applicationID uuid.UUID) ([]mentorship.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []mentorship.Session
	for _, s := range r.sessions {
		if s.ApplicationID == applicationID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type memHistoryRepo struct {
	mu      sync.Mutex
	entries []shared.StatusHistoryEntry
}

func (r *memHistoryRepo) Record(_ context.Context, entry *shared.StatusHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memHistoryRepo) FindByEntity(_ context.Context, entityType shared.EntityType, entityID uuid.UUID) ([]shared.StatusHistoryEntry, error) {
	var out []shared.StatusHistoryEntry
	for _, e := range r.entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) FindLatest(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID) (*shared.StatusHistoryEntry, error) {
	all, _ := r.FindByEntity(ctx, entityType, entityID)
	if len(all) == 0 {
		return nil, shared.ErrNotFound
	}
	return &all[len(all)-1], nil
}

type schedulerFixture struct {
	service *SchedulerService
	mentors *memMentorRepo
	history *memHistoryRepo
	mentor  *MentorResponse
}

func newSchedulerFixture(t *testing.T, weeklyCap int) *schedulerFixture {
	t.Helper()

	f := &schedulerFixture{
		mentors: newMemMentorRepo(),
		history: &memHistoryRepo{},
	}
	scope := NewNoOpTransactionScope(f.mentors, newMemSessionRepo(), f.history)
	f.service = NewSchedulerService(scope, zap.NewNop())

	mentor, err := f.service.CreateMentor(context.Background(), CreateMentorRequest{
		Name:               "Dana",
		Email:              "dana@example.com",
		Expertise:          "go-to-market",
		MaxSessionsPerWeek: weeklyCap,
	})
	require.NoError(t, err)
	f.mentor = mentor

	return f
}

// slotAt returns a one-hour slot h hours after a fixed Monday morning
func slotAt(h int) (time.Time, time.Time) {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC) // a Monday
	start := base.Add(time.Duration(h) * time.Hour)
	return start, start.Add(time.Hour)
}

func (f *schedulerFixture) book(t *testing.T, h int) (*SessionResponse, error) {
	t.Helper()
	start, end := slotAt(h)
	return f.service.BookSession(context.Background(), BookSessionRequest{
		MentorID:      f.mentor.ID,
		ApplicationID: uuid.New(),
		StartAt:       start,
		EndAt:         end,
		Topic:         "pricing",
	})
}

func TestSchedulerService_BookSession(t *testing.T) {
	f := newSchedulerFixture(t, 5)

	resp, err := f.book(t, 0)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)

	trail, err := f.history.FindByEntity(context.Background(), shared.EntityTypeSession, resp.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "PENDING", trail[0].ToStatus)
}

func TestSchedulerService_OverlapRejected(t *testing.T) {
	f := newSchedulerFixture(t, 5)

	_, err := f.book(t, 0)
	require.NoError(t, err)

	t.Run("same slot conflicts", func(t *testing.T) {
		_, err := f.book(t, 0)
		assert.ErrorIs(t, err, shared.ErrSessionConflict)
	})

	t.Run("half overlapping slot conflicts", func(t *testing.T) {
		start, _ := slotAt(0)
		_, err := f.service.BookSession(context.Background(), BookSessionRequest{
			MentorID:      f.mentor.ID,
			ApplicationID: uuid.New(),
			StartAt:       start.Add(30 * time.Minute),
			EndAt:         start.Add(90 * time.Minute),
		})
		assert.ErrorIs(t, err, shared.ErrSessionConflict)
	})

	t.Run("back to back slot does not conflict", func(t *testing.T) {
		_, err := f.book(t, 1)
		assert.NoError(t, err)
	})
}

func TestSchedulerService_WeeklyCap(t *testing.T) {
	f := newSchedulerFixture(t, 2)

	_, err := f.book(t, 0)
	require.NoError(t, err)
	_, err = f.book(t, 2)
	require.NoError(t, err)

	_, err = f.book(t, 4)
	assert.ErrorIs(t, err, shared.ErrMentorOverbooked)

	t.Run("next week is a fresh budget", func(t *testing.T) {
		_, err := f.book(t, 7*24)
		assert.NoError(t, err)
	})

	t.Run("cancelled session frees its cap share", func(t *testing.T) {
		blocked, err := f.book(t, 4)
		require.ErrorIs(t, err, shared.ErrMentorOverbooked)
		assert.Nil(t, blocked)

		sessions, err := f.service.ListMentorSessions(context.Background(), f.mentor.ID,
			time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotEmpty(t, sessions)

		_, err = f.service.CancelSession(context.Background(), sessions[0].ID,
			CancelSessionRequest{Reason: "mentor sick"}, nil)
		require.NoError(t, err)

		_, err = f.book(t, 4)
		assert.NoError(t, err)
	})
}

func TestSchedulerService_InactiveMentor(t *testing.T) {
	f := newSchedulerFixture(t, 5)

	_, err := f.service.SetMentorActive(context.Background(), f.mentor.ID, false)
	require.NoError(t, err)

	_, err = f.book(t, 0)
	assert.ErrorIs(t, err, shared.ErrMentorInactive)
}

func TestSchedulerService_SessionLifecycle(t *testing.T) {
	f := newSchedulerFixture(t, 5)
	actor := uuid.New()

	resp, err := f.book(t, 0)
	require.NoError(t, err)

	resp, err = f.service.ConfirmSession(context.Background(), resp.ID, &actor)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	resp, err = f.service.CompleteSession(context.Background(), resp.ID,
		CompleteSessionRequest{Notes: "good progress"}, &actor)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "good progress", resp.Notes)

	_, err = f.service.CancelSession(context.Background(), resp.ID, CancelSessionRequest{Reason: "x"}, &actor)
	require.Error(t, err, "completed session is terminal")

	trail, err := f.history.FindByEntity(context.Background(), shared.EntityTypeSession, resp.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 3)
}

func TestSchedulerService_NoShow(t *testing.T) {
	f := newSchedulerFixture(t, 5)

	resp, err := f.book(t, 0)
	require.NoError(t, err)

	_, err = f.service.MarkNoShow(context.Background(), resp.ID, nil)
	require.Error(t, err, "pending session cannot be a no show")

	_, err = f.service.ConfirmSession(context.Background(), resp.ID, nil)
	require.NoError(t, err)

	marked, err := f.service.MarkNoShow(context.Background(), resp.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "NO_SHOW", marked.Status)
}
