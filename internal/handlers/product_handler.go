package handlers

import (
	"errors"
	"log"
	"strconv"

	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Messages returned with 404 responses.
const (
	msgNoProducts         = "Don't have product"
	msgProductNotFound    = "Not found product !!!"
	msgNoProductForUpdate = "Don't have product for update"
	msgNoProductForDelete = "Don't have product for delete"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	// okStatus is the status of successful non-create operations.
	okStatus int
}

// NewProductHandler creates a new ProductHandler.
// With legacyStatus set, every successful operation answers 201 Created.
func NewProductHandler(service *services.ProductService, legacyStatus bool) *ProductHandler {
	okStatus := fiber.StatusOK
	if legacyStatus {
		okStatus = fiber.StatusCreated
	}
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		okStatus: okStatus,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/product", h.HandleListProducts)
	router.Post("/product", h.HandleCreateProduct)
	router.Get("/product/:id", h.HandleGetProduct)
	router.Put("/product/:id", h.HandleReplaceProduct)
	router.Delete("/product/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns every product. An empty catalogue is reported as 404.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return h.respondError(c, err, msgNoProducts)
	}
	if len(products) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": msgNoProducts})
	}
	return c.Status(h.okStatus).JSON(models.ToRecords(products))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return h.respondError(c, err, "")
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		return h.respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(models.ToRecord(*product))
}

// HandleGetProduct returns a single product.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.respondError(c, err, "")
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return h.respondError(c, err, msgProductNotFound)
	}
	return c.Status(h.okStatus).JSON(models.ToRecord(*product))
}

// HandleReplaceProduct overwrites all fields of an existing product.
// The body is validated before the product is looked up.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.respondError(c, err, "")
	}
	input, err := h.parseInput(c)
	if err != nil {
		return h.respondError(c, err, "")
	}

	product, err := h.service.ReplaceProduct(id, input)
	if err != nil {
		return h.respondError(c, err, msgNoProductForUpdate)
	}
	return c.Status(h.okStatus).JSON(models.ToRecord(*product))
}

// HandleDeleteProduct deletes a product and returns its prior state.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return h.respondError(c, err, "")
	}

	product, err := h.service.DeleteProduct(id)
	if err != nil {
		return h.respondError(c, err, msgNoProductForDelete)
	}
	return c.Status(h.okStatus).JSON(models.ToRecord(*product))
}

func (h *ProductHandler) parseInput(c *fiber.Ctx) (models.ProductInput, error) {
	fields, err := readProductFields(c)
	if err != nil {
		return models.ProductInput{}, &badRequestError{err: err}
	}
	return ParseProductInput(h.validate, fields)
}

// badRequestError marks malformed requests that are not field-level validation failures.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func productID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, &ValidationError{Fields: map[string]string{"id": "must be a non-negative integer"}}
	}
	return uint(id), nil
}

// respondError maps service and validation errors to HTTP responses.
func (h *ProductHandler) respondError(c *fiber.Ctx, err error, notFoundMessage string) error {
	var validationErr *ValidationError
	var badRequestErr *badRequestError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	case errors.As(err, &badRequestErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": notFoundMessage})
	case errors.Is(err, repositories.ErrDuplicateProductName):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Product name already exists",
			"error":   err.Error(),
		})
	}

	log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process product request",
		"error":   err.Error(),
	})
}
