package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"catalog/internal/models"
)

// InMemoryProductRepository is a mutex-guarded in-memory implementation of
// ProductRepository. It backs the no-database configuration and tests;
// records iterate in id order so paging is stable.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int]models.Product
	nextID   int
}

// NewInMemoryProductRepository creates an empty in-memory product store.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int]models.Product),
		nextID:   1,
	}
}

// GetAll returns every non-deleted product in id order.
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p := r.products[id]; !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID returns the non-deleted product with the given id, or (nil, nil)
// when there is none.
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.IsDeleted {
		return nil, nil
	}
	return &p, nil
}

// Insert assigns the next id, stamps the insert time and stores a copy.
func (r *InMemoryProductRepository) Insert(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	product.StampCreated(time.Now().UTC())
	r.products[product.ID] = *product
	return nil
}

// Update overwrites an existing record and stamps the update time.
func (r *InMemoryProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d not found for update", product.ID)
	}
	product.StampUpdated(time.Now().UTC())
	r.products[product.ID] = *product
	return nil
}

// SoftDelete marks the record deleted and keeps it in the map.
func (r *InMemoryProductRepository) SoftDelete(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d not found for deletion", product.ID)
	}
	product.MarkDeleted()
	product.StampUpdated(time.Now().UTC())
	r.products[product.ID] = *product
	return nil
}

// Exists reports whether a non-deleted product already uses the name and
// brand pair.
func (r *InMemoryProductRepository) Exists(ctx context.Context, name, brand string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if !p.IsDeleted && p.Name == name && p.Brand == brand {
			return true, nil
		}
	}
	return false, nil
}
