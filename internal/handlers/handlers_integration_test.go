package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/dto"
	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validators"
)

// setupApp builds a Fiber app for testing over an in-memory SQLite store,
// seeded with four products.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Product{}))

	repo := repositories.NewGormProductRepository(db, zerolog.Nop())
	seedProductsForTest(t, repo)

	service := services.NewProductService(repo, zerolog.Nop())
	handler := handlers.NewProductHandler(service, zerolog.Nop())

	app := fiber.New()
	api := app.Group("/api")
	handler.RegisterRoutes(api)
	return app
}

// seedProductsForTest populates the product repository for tests.
func seedProductsForTest(t *testing.T, repo repositories.ProductRepository) {
	t.Helper()
	products := []models.Product{
		{Name: "Advisory Services", Brand: "GHDWoodhead", Price: 100.00},
		{Name: "Architecture & Design", Brand: "GHDWoodhead", Price: 55.00},
		{Name: "Engineering & Construction", Brand: "GHDWoodhead", Price: 71.00},
		{Name: "Environmental Services", Brand: "GHDDigital", Price: 1000.00},
	}
	for i := range products {
		assert.NoError(t, repo.Insert(context.Background(), &products[i]))
	}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeProduct(t *testing.T, resp *http.Response) dto.ProductDTO {
	t.Helper()
	defer resp.Body.Close()
	var d dto.ProductDTO
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	return d
}

func decodeProducts(t *testing.T, resp *http.Response) []dto.ProductDTO {
	t.Helper()
	defer resp.Body.Close()
	var ds []dto.ProductDTO
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&ds))
	return ds
}

func decodeFieldErrors(t *testing.T, resp *http.Response) []validators.FieldError {
	t.Helper()
	defer resp.Body.Close()
	var errs []validators.FieldError
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errs))
	return errs
}

func TestCreateThenGetProduct(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products/product", map[string]any{
		"name":  "Digital Twin",
		"brand": "GHDDigital",
		"price": 250.00,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/products/product/5", resp.Header.Get("Location"))

	created := decodeProduct(t, resp)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, "Digital Twin", created.Name)
	assert.Equal(t, models.BrandGHDDigital, created.Brand)
	assert.Equal(t, 250.00, created.Price)
	assert.Equal(t, "/api/products/product/5", created.SelfLink)

	// Round-trip: the created product reads back identically.
	resp = doJSON(t, app, http.MethodGet, "/api/products/product/5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeProduct(t, resp)
	assert.Equal(t, created, fetched)
}

func TestCreateDuplicateProduct(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products/product", map[string]any{
		"name":  "Advisory Services",
		"brand": "GHDWoodhead",
		"price": 100.00,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Product already exists.", body["error"])
}

func TestCreateProductValidation(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products/product", map[string]any{
		"name":  "",
		"brand": "NotABrand",
		"price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs := decodeFieldErrors(t, resp)
	got := make([]string, 0, len(errs))
	for _, e := range errs {
		got = append(got, e.Message)
	}
	assert.ElementsMatch(t, []string{
		"Name is required.",
		"Not a valid brand name.",
		"Price must be greater than zero.",
	}, got)
}

func TestGetProductNotFoundAndInvalidID(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/product/999", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/product/0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeFieldErrors(t, resp)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Product ID must be greater than zero.", errs[0].Message)
}

func TestGetProductsPagingAndFilters(t *testing.T) {
	app := setupApp(t)

	// One page of one returns the first product in stable order.
	resp := doJSON(t, app, http.MethodGet, "/api/products/products?page=1&pageSize=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := decodeProducts(t, resp)
	assert.Len(t, products, 1)
	assert.Equal(t, "Advisory Services", products[0].Name)
	assert.Equal(t, "/api/products/product/1", products[0].SelfLink)

	// A large page returns all four seeded products.
	resp = doJSON(t, app, http.MethodGet, "/api/products/products?page=1&pageSize=100", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products = decodeProducts(t, resp)
	assert.Len(t, products, 4)

	// Case-sensitive name substring filter.
	resp = doJSON(t, app, http.MethodGet, "/api/products/products?pageSize=100&name=Architecture+%26+Desig", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products = decodeProducts(t, resp)
	assert.Len(t, products, 1)
	assert.Equal(t, "Architecture & Design", products[0].Name)

	// Name and brand filters intersect.
	resp = doJSON(t, app, http.MethodGet, "/api/products/products?pageSize=100&name=Services&brand=GHDDigital", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products = decodeProducts(t, resp)
	assert.Len(t, products, 1)
	assert.Equal(t, "Environmental Services", products[0].Name)

	// No matches still yields a JSON array, not null.
	resp = doJSON(t, app, http.MethodGet, "/api/products/products?pageSize=100&name=Nonexistent", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products = decodeProducts(t, resp)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGetProductsValidation(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/products?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeFieldErrors(t, resp)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Page must be greater than 0.", errs[0].Message)

	// A present-but-blank name filter is rejected.
	resp = doJSON(t, app, http.MethodGet, "/api/products/products?name=%20%20", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs = decodeFieldErrors(t, resp)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Name cannot be white space characters.", errs[0].Message)

	resp = doJSON(t, app, http.MethodGet, "/api/products/products?brand=NotABrand", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs = decodeFieldErrors(t, resp)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Not a valid brand name.", errs[0].Message)
}

func TestUpdateProduct(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/products/product/1", map[string]any{
		"name":  "Advisory Services Plus",
		"brand": "GHDAdvisory",
		"price": 150.00,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeProduct(t, resp)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "Advisory Services Plus", updated.Name)
	assert.Equal(t, models.BrandGHDAdvisory, updated.Brand)
	assert.Equal(t, 150.00, updated.Price)
	assert.Equal(t, "/api/products/product/1", updated.SelfLink)
}

func TestUpdateProductNotFound(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/products/product/999", map[string]any{
		"name":  "Advisory Services",
		"brand": "GHDAdvisory",
		"price": 150.00,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Product with ID 999 not found.", body["error"])
}

func TestUpdateProductConflict(t *testing.T) {
	app := setupApp(t)

	// Collide with another seeded product's name+brand pair.
	resp := doJSON(t, app, http.MethodPut, "/api/products/product/2", map[string]any{
		"name":  "Engineering & Construction",
		"brand": "GHDWoodhead",
		"price": 55.00,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Product 'Engineering & Construction' with brand 'GHDWoodhead' already exists.", body["error"])
}

func TestDeleteProduct(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/product/4", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The soft-deleted product disappears from every read path.
	resp = doJSON(t, app, http.MethodGet, "/api/products/product/4", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/products?pageSize=100", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := decodeProducts(t, resp)
	assert.Len(t, products, 3)
}

func TestDeleteProductNotFound(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/product/999", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Product with ID 999 not found.", body["error"])
}
