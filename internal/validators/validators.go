// Package validators checks shape and range constraints on each request
// type before it reaches an operation handler. Each validator is a pure
// predicate set returning every independent violation found; an empty
// result means the request is valid.
package validators

import (
	"errors"
	"strings"

	v10 "github.com/go-playground/validator/v10"

	"catalog/internal/models"
	"catalog/internal/requests"
)

// FieldError is one validation violation on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidate()

func newValidate() *v10.Validate {
	v := v10.New()
	// required rejects only the zero value; the catalog treats
	// whitespace-only names as missing too.
	_ = v.RegisterValidation("notblank", func(fl v10.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("brand", func(fl v10.FieldLevel) bool {
		return models.Brand(fl.Field().String()).Valid()
	})
	return v
}

var createMessages = map[string]string{
	"Name.notblank": "Name is required.",
	"Name.max":      "Name must not exceed 100 characters.",
	"Brand.brand":   "Not a valid brand name.",
	"Price.gt":      "Price must be greater than zero.",
	"Price.lte":     "Price must not exceed 999,999.99.",
}

var updateMessages = map[string]string{
	"ID.gt":         "Id must be greater than zero.",
	"Name.notblank": "Name is required.",
	"Name.max":      "Name must not exceed 100 characters.",
	"Brand.brand":   "Not a valid brand name.",
	"Price.gt":      "Price must be greater than zero.",
	"Price.lte":     "Price must not exceed 999,999.99.",
}

var idMessages = map[string]string{
	"ID.gt": "Product ID must be greater than zero.",
}

var pageMessages = map[string]string{
	"Page.gt":       "Page must be greater than 0.",
	"PageSize.min":  "PageSize must be between 1 and 100.",
	"PageSize.max":  "PageSize must be between 1 and 100.",
	"Name.notblank": "Name cannot be white space characters.",
	"Name.max":      "Name must not exceed 100 characters.",
	"Brand.brand":   "Not a valid brand name.",
}

// ValidateCreateProduct validates a CreateProductCommand.
func ValidateCreateProduct(cmd requests.CreateProductCommand) []FieldError {
	return collect(validate.Struct(cmd), createMessages)
}

// ValidateUpdateProduct validates an UpdateProductCommand.
func ValidateUpdateProduct(cmd requests.UpdateProductCommand) []FieldError {
	return collect(validate.Struct(cmd), updateMessages)
}

// ValidateDeleteProduct validates a DeleteProductCommand.
func ValidateDeleteProduct(cmd requests.DeleteProductCommand) []FieldError {
	return collect(validate.Struct(cmd), idMessages)
}

// ValidateProductQuery validates a single-product query.
func ValidateProductQuery(query requests.ProductQuery) []FieldError {
	return collect(validate.Struct(query), idMessages)
}

// ValidateProductsQuery validates a page query.
func ValidateProductsQuery(query requests.ProductsQuery) []FieldError {
	return collect(validate.Struct(query), pageMessages)
}

// collect converts validator output into the field+message list the API
// reports, resolving each violation to its fixed message text.
func collect(err error, messages map[string]string) []FieldError {
	if err == nil {
		return nil
	}
	var violations v10.ValidationErrors
	if !errors.As(err, &violations) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(violations))
	for _, fe := range violations {
		msg, ok := messages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, FieldError{Field: fe.StructField(), Message: msg})
	}
	return out
}
