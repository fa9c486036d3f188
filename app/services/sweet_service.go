package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/mithai/app/models"
	"github.com/shashiranjanraj/mithai/app/repositories"
	"github.com/shashiranjanraj/mithai/pkg/metrics"
	"gorm.io/gorm"
)

// SweetFields are the writable attributes of a sweet. Create and Update
// take the full set; there is no partial patch.
type SweetFields struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// Capability decides whether a user may perform a catalogue write. The
// default allows any authenticated user. An is_admin check was planned
// upstream but never added; this seam is where it would go.
type Capability func(user models.User) bool

// AnyAuthenticated is the default capability: every resolved identity may
// create, update, delete and purchase.
func AnyAuthenticated(models.User) bool { return true }

// SweetService implements catalogue CRUD and the purchase transaction.
type SweetService struct {
	sweets *repositories.SweetRepository
	can    Capability
}

func NewSweetService(sweets *repositories.SweetRepository) *SweetService {
	return &SweetService{sweets: sweets, can: AnyAuthenticated}
}

// WithCapability replaces the write-permission check.
func (s *SweetService) WithCapability(can Capability) *SweetService {
	s.can = can
	return s
}

// Create validates and persists a new sweet on behalf of requester.
func (s *SweetService) Create(fields SweetFields, requester models.User) (models.Sweet, error) {
	if !s.can(requester) {
		return models.Sweet{}, ErrUnauthenticated
	}
	if fields.Price < 0 || fields.Quantity < 0 {
		return models.Sweet{}, ErrInvalidInput
	}

	sweet := models.Sweet{
		Name:     fields.Name,
		Category: fields.Category,
		Price:    fields.Price,
		Quantity: fields.Quantity,
	}
	if err := s.sweets.Create(&sweet); err != nil {
		return models.Sweet{}, fmt.Errorf("sweets: create: %w", err)
	}

	metrics.SweetsCreated.Inc()
	return sweet, nil
}

// List returns the whole catalogue in insertion order. Unauthenticated.
func (s *SweetService) List() ([]models.Sweet, error) {
	sweets, err := s.sweets.All()
	if err != nil {
		return nil, fmt.Errorf("sweets: list: %w", err)
	}
	return sweets, nil
}

// Search returns sweets whose name contains the given substring
// (case-sensitive). An empty filter returns the whole catalogue.
func (s *SweetService) Search(name string) ([]models.Sweet, error) {
	sweets, err := s.sweets.SearchByName(name)
	if err != nil {
		return nil, fmt.Errorf("sweets: search: %w", err)
	}
	return sweets, nil
}

// Update replaces all four writable fields of the sweet wholesale.
func (s *SweetService) Update(id uint, fields SweetFields, requester models.User) (models.Sweet, error) {
	if !s.can(requester) {
		return models.Sweet{}, ErrUnauthenticated
	}
	if fields.Price < 0 || fields.Quantity < 0 {
		return models.Sweet{}, ErrInvalidInput
	}

	sweet, err := s.sweets.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Sweet{}, ErrNotFound
		}
		return models.Sweet{}, fmt.Errorf("sweets: find %d: %w", id, err)
	}

	sweet.Name = fields.Name
	sweet.Category = fields.Category
	sweet.Price = fields.Price
	sweet.Quantity = fields.Quantity

	if err := s.sweets.Save(&sweet); err != nil {
		return models.Sweet{}, fmt.Errorf("sweets: update %d: %w", id, err)
	}
	return sweet, nil
}

// Delete removes a sweet permanently.
func (s *SweetService) Delete(id uint, requester models.User) error {
	if !s.can(requester) {
		return ErrUnauthenticated
	}

	if err := s.sweets.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("sweets: delete %d: %w", id, err)
	}
	return nil
}

// Purchase decrements the sweet's stock by one and returns the remaining
// quantity. The decrement is atomic at the record store, so concurrent
// purchases of the last unit leave exactly one winner and never drive the
// quantity negative.
func (s *SweetService) Purchase(id uint, requester models.User) (int, error) {
	if !s.can(requester) {
		return 0, ErrUnauthenticated
	}

	sweet, err := s.sweets.PurchaseOne(id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		metrics.PurchasesTotal.WithLabelValues("not_found").Inc()
		return 0, ErrNotFound
	case errors.Is(err, repositories.ErrNoStock):
		metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		return 0, ErrOutOfStock
	case err != nil:
		return 0, fmt.Errorf("sweets: purchase %d: %w", id, err)
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	return sweet.Quantity, nil
}
