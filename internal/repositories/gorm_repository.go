package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// GormRepository is the GORM-backed implementation of Repository, reused
// by entity-specific repositories. Store failures are logged at error
// level and returned to the caller; no retry happens here.
type GormRepository[T any, PT Entity[T]] struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewGormRepository creates a new GormRepository over db.
func NewGormRepository[T any, PT Entity[T]](db *gorm.DB, log zerolog.Logger) *GormRepository[T, PT] {
	return &GormRepository[T, PT]{
		db:  db,
		log: log,
	}
}

// GetAll returns every non-deleted record in id order.
func (r *GormRepository[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Where("is_deleted = ?", false).Order("id").Find(&entities).Error; err != nil {
		r.log.Error().Err(err).Msg("failed to scan records")
		return nil, fmt.Errorf("failed to get all records: %w", err)
	}
	return entities, nil
}

// GetByID returns the non-deleted record with the given id, or (nil, nil)
// when there is none.
func (r *GormRepository[T, PT]) GetByID(ctx context.Context, id int) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("failed to get record by id")
		return nil, fmt.Errorf("failed to get record by ID %d: %w", id, err)
	}
	return &entity, nil
}

// Insert persists a new record. The store assigns the id and the insert
// time is stamped once here.
func (r *GormRepository[T, PT]) Insert(ctx context.Context, entity *T) error {
	PT(entity).StampCreated(time.Now().UTC())
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		r.log.Error().Err(err).Msg("failed to insert record")
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Update persists the full record and stamps the update time.
func (r *GormRepository[T, PT]) Update(ctx context.Context, entity *T) error {
	PT(entity).StampUpdated(time.Now().UTC())
	res := r.db.WithContext(ctx).Save(entity)
	if res.Error != nil {
		r.log.Error().Err(res.Error).Int("id", PT(entity).EntityID()).Msg("failed to update record")
		return fmt.Errorf("failed to update record %d: %w", PT(entity).EntityID(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record with ID %d not found for update", PT(entity).EntityID())
	}
	return nil
}

// SoftDelete marks the record deleted and persists the mutation. Nothing
// is physically removed.
func (r *GormRepository[T, PT]) SoftDelete(ctx context.Context, entity *T) error {
	p := PT(entity)
	p.MarkDeleted()
	p.StampUpdated(time.Now().UTC())
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		r.log.Error().Err(err).Int("id", p.EntityID()).Msg("failed to soft-delete record")
		return fmt.Errorf("failed to soft-delete record %d: %w", p.EntityID(), err)
	}
	return nil
}
