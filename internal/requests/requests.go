// Package requests defines the command and query types accepted by the
// catalog operations, one per operation.
package requests

// CreateProductCommand describes a new product to add to the catalog.
type CreateProductCommand struct {
	Name  string  `json:"name" validate:"notblank,max=100"`
	Brand string  `json:"brand" validate:"brand"`
	Price float64 `json:"price" validate:"gt=0,lte=999999.99"`
}

// UpdateProductCommand overwrites the mutable fields of an existing
// product.
type UpdateProductCommand struct {
	ID    int     `json:"id" validate:"gt=0"`
	Name  string  `json:"name" validate:"notblank,max=100"`
	Brand string  `json:"brand" validate:"brand"`
	Price float64 `json:"price" validate:"gt=0,lte=999999.99"`
}

// DeleteProductCommand soft-deletes a product by id.
type DeleteProductCommand struct {
	ID int `json:"id" validate:"gt=0"`
}

// ProductQuery fetches a single product by id.
type ProductQuery struct {
	ID int `validate:"gt=0"`
}

// ProductsQuery fetches a page of products. Name filters by case-sensitive
// substring containment, Brand by exact match; both are optional.
type ProductsQuery struct {
	Page     int     `validate:"gt=0"`
	PageSize int     `validate:"min=1,max=100"`
	Name     *string `validate:"omitempty,notblank,max=100"`
	Brand    *string `validate:"omitempty,brand"`
}
