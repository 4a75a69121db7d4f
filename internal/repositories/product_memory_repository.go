package repositories

import (
	"fmt"
	"sort"
	"sync"

	"productstore/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the relational constraints: sequential IDs and unique names.
type MemoryProductRepository struct {
	products map[uint]models.Product
	names    map[string]uint
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		names:    make(map[string]uint),
		nextID:   1,
	}
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID < productList[j].ID
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return &product, nil
}

// Create adds a new product and assigns the next ID.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.names[product.Name]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateProductName, product.Name)
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	r.names[product.Name] = product.ID
	return nil
}

// Update replaces the business fields of an existing product.
func (r *MemoryProductRepository) Update(id uint, input models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	if owner, taken := r.names[input.Name]; taken && owner != id {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateProductName, input.Name)
	}

	delete(r.names, product.Name)
	product.Apply(input)
	r.products[id] = product
	r.names[product.Name] = id
	return &product, nil
}

// Delete removes a product by its ID and returns its last state.
func (r *MemoryProductRepository) Delete(id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	delete(r.products, id)
	delete(r.names, product.Name)
	return &product, nil
}
