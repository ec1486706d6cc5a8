package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fitech-app/user-service/internal/domain"
	"github.com/fitech-app/user-service/internal/repository"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
	"github.com/fitech-app/user-service/pkg/pagination"
)

// UnitOfMeasureService implements the business logic for units of measure.
type UnitOfMeasureService struct {
	unitRepo repository.UnitOfMeasureRepository
	logger   *slog.Logger
}

// NewUnitOfMeasureService creates a new unit of measure service.
func NewUnitOfMeasureService(unitRepo repository.UnitOfMeasureRepository, logger *slog.Logger) *UnitOfMeasureService {
	return &UnitOfMeasureService{unitRepo: unitRepo, logger: logger}
}

// UnitOfMeasureInput holds the parameters for creating or updating a unit.
type UnitOfMeasureInput struct {
	Name   string
	Symbol string
}

// Create creates a new unit of measure. Names are unique; a duplicate is a
// conflict.
func (s *UnitOfMeasureService) Create(ctx context.Context, input UnitOfMeasureInput) (*domain.UnitOfMeasure, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Symbol == "" {
		return nil, apperrors.InvalidInput("symbol is required")
	}

	now := time.Now().UTC()
	unit := &domain.UnitOfMeasure{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Symbol:    input.Symbol,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, fmt.Errorf("create unit of measure: %w", err)
	}

	s.logger.InfoContext(ctx, "unit of measure created",
		slog.String("unit_id", unit.ID),
		slog.String("name", unit.Name),
	)

	return unit, nil
}

// Update modifies an existing unit of measure.
func (s *UnitOfMeasureService) Update(ctx context.Context, id string, input UnitOfMeasureInput) (*domain.UnitOfMeasure, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get unit of measure for update: %w", err)
	}

	if input.Name != "" {
		unit.Name = input.Name
	}
	if input.Symbol != "" {
		unit.Symbol = input.Symbol
	}
	unit.UpdatedAt = time.Now().UTC()

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, fmt.Errorf("update unit of measure: %w", err)
	}

	s.logger.InfoContext(ctx, "unit of measure updated",
		slog.String("unit_id", unit.ID),
	)

	return unit, nil
}

// Delete removes a unit of measure.
func (s *UnitOfMeasureService) Delete(ctx context.Context, id string) error {
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete unit of measure: %w", err)
	}

	s.logger.InfoContext(ctx, "unit of measure deleted",
		slog.String("unit_id", id),
	)

	return nil
}

// GetByID retrieves a unit of measure by ID.
func (s *UnitOfMeasureService) GetByID(ctx context.Context, id string) (*domain.UnitOfMeasure, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get unit of measure: %w", err)
	}
	return unit, nil
}

// List returns one page of units of measure. Unlike users and persons, an
// empty list is a valid result here.
func (s *UnitOfMeasureService) List(ctx context.Context, params pagination.Params) (*pagination.ResultPage[domain.UnitOfMeasure], error) {
	units, total, err := s.unitRepo.List(ctx, params.PerPage, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list units of measure: %w", err)
	}

	page := pagination.NewResultPage(units, total, params)
	return &page, nil
}
