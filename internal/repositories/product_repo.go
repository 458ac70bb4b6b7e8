package repositories

import (
	"context"
	"time"

	"catalog/internal/models"
)

// Entity is the capability a stored record type must provide to the
// generic repository: identity plus soft-delete and timestamp stamping
// over its base columns.
type Entity[T any] interface {
	*T
	EntityID() int
	MarkDeleted()
	StampCreated(time.Time)
	StampUpdated(time.Time)
}

// Repository defines the store operations shared by every entity type.
// Reads exclude soft-deleted records and scan in stable id order; GetByID
// returns (nil, nil) when no live record has the id.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	Insert(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	SoftDelete(ctx context.Context, entity *T) error
}

// ProductRepository is the product store: the generic operations plus the
// name+brand uniqueness check backing the catalog invariant.
type ProductRepository interface {
	Repository[models.Product]
	Exists(ctx context.Context, name, brand string) (bool, error)
}
