package repositories

import (
	"errors"

	"productstore/internal/models"
)

var (
	// ErrProductNotFound is returned when no product has the requested ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProductName is returned when another product already uses the name.
	ErrDuplicateProductName = errors.New("product name already exists")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(id uint, input models.ProductInput) (*models.Product, error)
	Delete(id uint) (*models.Product, error)
}
