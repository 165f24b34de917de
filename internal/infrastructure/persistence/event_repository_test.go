package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/domain/ticketing"
)

func setupEventTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&ticketing.Event{}))
	return db
}

func mustNewEvent(t *testing.T, name, slug string) *ticketing.Event {
	t.Helper()
	starts := time.Now().Add(24 * time.Hour)
	event, err := ticketing.NewEvent(name, slug, starts, starts.Add(2*time.Hour))
	require.NoError(t, err)
	return event
}

func TestGormEventRepository_SaveAndFind(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	event := mustNewEvent(t, "Demo Day", "demo-day")
	require.NoError(t, repo.Save(ctx, event))

	t.Run("finds by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "Demo Day", found.Name)
		assert.Equal(t, "demo-day", found.Slug)
	})

	t.Run("finds by slug", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "demo-day")
		require.NoError(t, err)
		assert.Equal(t, event.ID, found.ID)
	})

	t.Run("missing slug yields not found", func(t *testing.T) {
		_, err := repo.FindBySlug(ctx, "no-such-event")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormEventRepository_SaveWithLock(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	event := mustNewEvent(t, "Pitch Night", "pitch-night")
	require.NoError(t, repo.Save(ctx, event))

	t.Run("updates row carrying the expected version", func(t *testing.T) {
		expectedVersion := event.Version
		event.Publish()
		require.NoError(t, repo.SaveWithLock(ctx, event, expectedVersion))

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.True(t, found.Published)
		assert.Equal(t, expectedVersion+1, found.Version)
	})

	t.Run("stale version yields conflict", func(t *testing.T) {
		staleVersion := event.Version - 1
		err := repo.SaveWithLock(ctx, event, staleVersion)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormEventRepository_FindAll(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	published := mustNewEvent(t, "Published Event", "published-event")
	published.Publish()
	require.NoError(t, repo.Save(ctx, published))

	draft := mustNewEvent(t, "Draft Event", "draft-event")
	require.NoError(t, repo.Save(ctx, draft))

	t.Run("filters by published flag", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["published"] = true

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "published-event", events[0].Slug)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown filter keys are ignored", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["slug"] = "draft-event"

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 1
		filter.Page = 2
		filter.OrderBy = "slug"
		filter.OrderDir = "asc"

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "published-event", events[0].Slug)
	})
}

func TestGormEventRepository_Delete(t *testing.T) {
	db := setupEventTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()

	event := mustNewEvent(t, "Short Lived", "short-lived")
	require.NoError(t, repo.Save(ctx, event))

	require.NoError(t, repo.Delete(ctx, event.ID))

	_, err := repo.FindByID(ctx, event.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, event.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
