// Package service provides field business logic,
// delegating persistence to a FieldRepository.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avaolo/gatekeeper/internal/models"
)

// ErrInvalidField is returned when a field to be created fails validation.
var ErrInvalidField = errors.New("invalid field")

// FieldRepository defines the persistence operations
// required by the field service.
type FieldRepository interface {
	// ListByFarmer returns all fields owned by the given farmer.
	ListByFarmer(ctx context.Context, farmer string) ([]models.Field, error)
	// GetByID returns the farmer's field with the given id.
	GetByID(ctx context.Context, farmer, id string) (models.Field, error)
	// Create persists a new field record.
	Create(ctx context.Context, field models.Field) error
}

// FieldService implements field operations by delegating
// to a FieldRepository.
type FieldService struct {
	// repo performs the data-layer operations.
	repo FieldRepository
}

// NewFieldService constructs a new FieldService using the provided repository.
// repo must implement FieldRepository.
func NewFieldService(repo FieldRepository) *FieldService {
	return &FieldService{repo: repo}
}

// ListFields returns all fields owned by the given farmer.
func (s *FieldService) ListFields(ctx context.Context, farmer string) ([]models.Field, error) {
	return s.repo.ListByFarmer(ctx, farmer)
}

// GetField returns the farmer's field with the given id, or
// repository.ErrNotFound if it does not exist.
func (s *FieldService) GetField(ctx context.Context, farmer, id string) (models.Field, error) {
	return s.repo.GetByID(ctx, farmer, id)
}

// CreateField validates the input, assigns a new id, and persists the
// field for the given farmer. Name must be non-empty and the area positive.
func (s *FieldService) CreateField(ctx context.Context, farmer, name string, areaHa float64, crop string) (models.Field, error) {
	if name == "" {
		return models.Field{}, errors.Join(ErrInvalidField, errors.New("name is required"))
	}
	if areaHa <= 0 {
		return models.Field{}, errors.Join(ErrInvalidField, errors.New("area_ha must be positive"))
	}

	field := models.Field{
		ID:     uuid.NewString(),
		Farmer: farmer,
		Name:   name,
		AreaHa: areaHa,
		Crop:   crop,
	}
	if err := s.repo.Create(ctx, field); err != nil {
		return models.Field{}, err
	}
	return field, nil
}
