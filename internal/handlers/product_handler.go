package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"catalog/internal/requests"
	"catalog/internal/services"
	"catalog/internal/validators"
)

// ProductHandler exposes the catalog operations over HTTP. Requests are
// validated before dispatch; domain outcomes map to status codes here.
type ProductHandler struct {
	service *services.ProductService
	log     zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/products", h.HandleGetPage)
	products.Get("/product/:id", h.HandleGetByID)
	products.Post("/product", h.HandleCreate)
	products.Put("/product/:id", h.HandleUpdate)
	products.Delete("/product/:id", h.HandleDelete)
}

// HandleGetPage retrieves a page of products with optional name and brand
// filters.
func (h *ProductHandler) HandleGetPage(c *fiber.Ctx) error {
	query := requests.ProductsQuery{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 10),
	}
	// A present-but-blank filter is a validation error, so absence has to
	// be told apart from the empty string.
	args := c.Context().QueryArgs()
	if args.Has("name") {
		name := c.Query("name")
		query.Name = &name
	}
	if args.Has("brand") {
		brand := c.Query("brand")
		query.Brand = &brand
	}

	if errs := validators.ValidateProductsQuery(query); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	productDtos, err := h.service.GetPage(c.UserContext(), &query)
	if err != nil {
		return h.internalError(c, err, "Could not retrieve products")
	}

	for i := range productDtos {
		productDtos[i].SelfLink = selfLink(productDtos[i].ID)
	}
	return c.JSON(productDtos)
}

// HandleGetByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	query := requests.ProductQuery{ID: id}

	if errs := validators.ValidateProductQuery(query); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	productDto, err := h.service.GetByID(c.UserContext(), &query)
	if err != nil {
		return h.internalError(c, err, "Could not retrieve product")
	}
	if productDto == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found.",
		})
	}

	productDto.SelfLink = selfLink(productDto.ID)
	return c.JSON(productDto)
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var cmd requests.CreateProductCommand
	if err := c.BodyParser(&cmd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errs := validators.ValidateCreateProduct(cmd); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ok, productDto, err := h.service.Create(c.UserContext(), &cmd)
	if err != nil {
		return h.internalError(c, err, "Could not create product")
	}
	if !ok || productDto == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Product already exists.",
		})
	}

	productDto.SelfLink = selfLink(productDto.ID)
	c.Location(productDto.SelfLink)
	return c.Status(fiber.StatusCreated).JSON(productDto)
}

// HandleUpdate updates an existing product by its ID.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var cmd requests.UpdateProductCommand
	if err := c.BodyParser(&cmd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	cmd.ID, _ = c.ParamsInt("id")

	if errs := validators.ValidateUpdateProduct(cmd); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ok, errMsg, productDto, err := h.service.Update(c.UserContext(), &cmd)
	if err != nil {
		return h.internalError(c, err, "Could not update product")
	}
	if !ok {
		status := fiber.StatusConflict
		if strings.Contains(errMsg, "not found") {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": errMsg,
		})
	}

	productDto.SelfLink = selfLink(productDto.ID)
	return c.JSON(productDto)
}

// HandleDelete soft-deletes a product by its ID.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	cmd := requests.DeleteProductCommand{ID: id}

	if errs := validators.ValidateDeleteProduct(cmd); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	ok, err := h.service.Delete(c.UserContext(), &cmd)
	if err != nil {
		return h.internalError(c, err, "Could not delete product")
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("Product with ID %d not found.", id),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) internalError(c *fiber.Ctx, err error, message string) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// selfLink returns the canonical URL of a product, attached to DTOs after
// handler execution.
func selfLink(id int) string {
	return fmt.Sprintf("/api/products/product/%d", id)
}
