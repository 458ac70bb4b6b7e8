package dto

import (
	"fmt"

	"catalog/internal/models"
)

// ProductDTO is the external representation returned by every catalog
// operation. SelfLink is attached by the HTTP layer after the operation
// runs and is never persisted.
type ProductDTO struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Brand    models.Brand `json:"brand"`
	Price    float64      `json:"price"`
	SelfLink string       `json:"selfLink,omitempty"`
}

// MapProduct projects a stored record onto its DTO. The stored brand text
// must be a member of the brand enumeration; anything else means a corrupt
// record and surfaces as an error.
func MapProduct(p models.Product) (ProductDTO, error) {
	brand, err := models.ParseBrand(p.Brand)
	if err != nil {
		return ProductDTO{}, fmt.Errorf("product %d: %w", p.ID, err)
	}
	return ProductDTO{
		ID:    p.ID,
		Name:  p.Name,
		Brand: brand,
		Price: p.Price,
	}, nil
}

// MapProducts projects a slice of records, preserving order. The result is
// never nil.
func MapProducts(products []models.Product) ([]ProductDTO, error) {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		d, err := MapProduct(p)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
