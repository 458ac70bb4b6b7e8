package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/requests"
)

// ProductService handles the catalog operations. Each call is stateless:
// it checks the request contract, consults the store and projects the
// outcome onto a DTO. Domain failures (duplicate, not-found) come back as
// result values with warning-level logs; a nil request is a caller bug and
// comes back as an error.
type ProductService struct {
	repo repositories.ProductRepository
	log  zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo: repo,
		log:  log,
	}
}

// Create adds a new product unless a non-deleted product already uses the
// name and brand pair. On success the returned DTO carries the
// store-assigned id.
func (s *ProductService) Create(ctx context.Context, cmd *requests.CreateProductCommand) (bool, *dto.ProductDTO, error) {
	if cmd == nil {
		err := requests.NewNilArgumentError("command")
		s.log.Error().Err(err).Msg(err.Error())
		return false, nil, err
	}

	exists, err := s.repo.Exists(ctx, cmd.Name, cmd.Brand)
	if err != nil {
		return false, nil, err
	}
	if exists {
		s.log.Warn().Msgf("Create failed: Product '%s' with brand '%s' already exists.", cmd.Name, cmd.Brand)
		return false, nil, nil
	}

	if err := ctx.Err(); err != nil {
		return false, nil, err
	}

	product := &models.Product{
		Name:  cmd.Name,
		Brand: cmd.Brand,
		Price: cmd.Price,
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		return false, nil, err
	}

	d, err := dto.MapProduct(*product)
	if err != nil {
		return false, nil, err
	}
	return true, &d, nil
}

// Update overwrites name, brand and price of an existing product. The
// conflict check does not exclude the record being updated, so
// re-submitting a product's current name and brand is rejected as a
// duplicate.
func (s *ProductService) Update(ctx context.Context, cmd *requests.UpdateProductCommand) (bool, string, *dto.ProductDTO, error) {
	if cmd == nil {
		err := requests.NewNilArgumentError("command")
		s.log.Error().Err(err).Msg(err.Error())
		return false, "", nil, err
	}

	// Can only update an existing product.
	existing, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return false, "", nil, err
	}
	if existing == nil {
		s.log.Warn().Msgf("Update failed: Product with ID %d not found.", cmd.ID)
		return false, fmt.Sprintf("Product with ID %d not found.", cmd.ID), nil, nil
	}

	exists, err := s.repo.Exists(ctx, cmd.Name, cmd.Brand)
	if err != nil {
		return false, "", nil, err
	}
	if exists {
		s.log.Warn().Msgf("Update failed: Product '%s' with brand '%s' already exists.", cmd.Name, cmd.Brand)
		return false, fmt.Sprintf("Product '%s' with brand '%s' already exists.", cmd.Name, cmd.Brand), nil, nil
	}

	if err := ctx.Err(); err != nil {
		return false, "", nil, err
	}

	existing.Name = cmd.Name
	existing.Brand = cmd.Brand
	existing.Price = cmd.Price
	if err := s.repo.Update(ctx, existing); err != nil {
		return false, "", nil, err
	}

	d, err := dto.MapProduct(*existing)
	if err != nil {
		return false, "", nil, err
	}
	return true, "", &d, nil
}

// Delete soft-deletes a product by id. The record is never physically
// removed; it only becomes invisible to reads and uniqueness checks.
func (s *ProductService) Delete(ctx context.Context, cmd *requests.DeleteProductCommand) (bool, error) {
	if cmd == nil {
		err := requests.NewNilArgumentError("command")
		s.log.Error().Err(err).Msg(err.Error())
		return false, err
	}

	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return false, err
	}
	if product == nil {
		s.log.Warn().Msgf("Delete failed: Product with ID %d not found.", cmd.ID)
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	product.IsDeleted = true
	if err := s.repo.SoftDelete(ctx, product); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID retrieves a single product. Absence is not an error: the result
// is (nil, nil) when no live product has the id.
func (s *ProductService) GetByID(ctx context.Context, query *requests.ProductQuery) (*dto.ProductDTO, error) {
	if query == nil {
		err := requests.NewNilArgumentError("query")
		s.log.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	d, err := dto.MapProduct(*product)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetPage retrieves one page of products after applying the optional name
// and brand filters over the store's id-ordered scan. The result is never
// nil, only possibly empty.
func (s *ProductService) GetPage(ctx context.Context, query *requests.ProductsQuery) ([]dto.ProductDTO, error) {
	if query == nil {
		err := requests.NewNilArgumentError("query")
		s.log.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterProducts(products, query)

	start := (query.Page - 1) * query.PageSize
	if start >= len(filtered) {
		return []dto.ProductDTO{}, nil
	}
	end := start + query.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return dto.MapProducts(filtered[start:end])
}

// filterProducts applies the case-sensitive name substring filter and the
// exact brand filter, preserving scan order.
func filterProducts(products []models.Product, query *requests.ProductsQuery) []models.Product {
	out := products
	if query.Name != nil && strings.TrimSpace(*query.Name) != "" {
		name := *query.Name
		matched := make([]models.Product, 0, len(out))
		for _, p := range out {
			if strings.Contains(p.Name, name) {
				matched = append(matched, p)
			}
		}
		out = matched
	}
	if query.Brand != nil && strings.TrimSpace(*query.Brand) != "" {
		brand := *query.Brand
		matched := make([]models.Product, 0, len(out))
		for _, p := range out {
			if p.Brand == brand {
				matched = append(matched, p)
			}
		}
		out = matched
	}
	return out
}
