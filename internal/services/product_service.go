package services

import (
	"log"

	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/pkg/rabbitmq"
)

// Routing keys of the product events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes domain events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	PublishEvent(event rabbitmq.Event) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService.
// A nil publisher disables event publication.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts retrieves all products. An empty result is not an error here.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product built from a validated input.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	product := &models.Product{}
	product.Apply(input)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, product)
	return product, nil
}

// ReplaceProduct overwrites every business field of an existing product.
func (s *ProductService) ReplaceProduct(id uint, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.Update(id, input)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns its prior state.
func (s *ProductService) DeleteProduct(id uint) (*models.Product, error) {
	product, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductDeleted, product)
	return product, nil
}

// publish never fails the caller; the mutation has already been committed.
func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.NewEvent(eventType, models.ToRecord(*product))
	if err := s.publisher.PublishEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", eventType, product.ID, err)
	}
}
