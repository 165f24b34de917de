package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venturehub/backend/internal/domain/shared"
)

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
// Entries are append-only; they are written in the same transaction as
// the aggregate whose transition they record.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GormStatusHistoryRepository
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Record appends one history entry
func (r *GormStatusHistoryRepository) Record(ctx context.Context, entry *shared.StatusHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByEntity returns the full history of one entity, oldest first
func (r *GormStatusHistoryRepository) FindByEntity(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID) ([]shared.StatusHistoryEntry, error) {
	var entries []shared.StatusHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindLatest returns the most recent entry for one entity
func (r *GormStatusHistoryRepository) FindLatest(ctx context.Context, entityType shared.EntityType, entityID uuid.UUID) (*shared.StatusHistoryEntry, error) {
	var entry shared.StatusHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Ensure GormStatusHistoryRepository implements StatusHistoryRepository
var _ shared.StatusHistoryRepository = (*GormStatusHistoryRepository)(nil)
