package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// GormProductRepository extends the generic GORM repository with the
// product-specific uniqueness check.
type GormProductRepository struct {
	*GormRepository[models.Product, *models.Product]
	db  *gorm.DB
	log zerolog.Logger
}

// NewGormProductRepository creates a new instance of GormProductRepository.
func NewGormProductRepository(db *gorm.DB, log zerolog.Logger) *GormProductRepository {
	return &GormProductRepository{
		GormRepository: NewGormRepository[models.Product, *models.Product](db, log),
		db:             db,
		log:            log,
	}
}

// Exists reports whether a non-deleted product already uses the name and
// brand pair.
func (r *GormProductRepository) Exists(ctx context.Context, name, brand string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("name = ? AND brand = ? AND is_deleted = ?", name, brand, false).
		Count(&count).Error
	if err != nil {
		r.log.Error().Err(err).Str("name", name).Str("brand", brand).Msg("failed to check product existence")
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}
