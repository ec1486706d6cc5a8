package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fitech-app/user-service/internal/domain"
	"github.com/fitech-app/user-service/internal/repository"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
	"github.com/fitech-app/user-service/pkg/pagination"
)

// PersonService implements the business logic for standalone person records.
type PersonService struct {
	personRepo repository.PersonRepository
	logger     *slog.Logger
}

// NewPersonService creates a new person service.
func NewPersonService(personRepo repository.PersonRepository, logger *slog.Logger) *PersonService {
	return &PersonService{personRepo: personRepo, logger: logger}
}

// CreatePersonInput holds the parameters for creating a person.
type CreatePersonInput struct {
	FirstName      string
	LastName       string
	DocumentType   string
	DocumentNumber string
	PhoneNumber    string
	Email          string
}

// Create creates a new person record.
func (s *PersonService) Create(ctx context.Context, input CreatePersonInput) (*domain.Person, error) {
	if input.FirstName == "" {
		return nil, apperrors.InvalidInput("first name is required")
	}
	if input.LastName == "" {
		return nil, apperrors.InvalidInput("last name is required")
	}

	documentType := input.DocumentType
	if documentType == "" {
		documentType = domain.DefaultDocumentType
	}

	now := time.Now().UTC()
	person := &domain.Person{
		ID:             uuid.New().String(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DocumentType:   documentType,
		DocumentNumber: input.DocumentNumber,
		PhoneNumber:    input.PhoneNumber,
		Email:          input.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	s.logger.InfoContext(ctx, "person created",
		slog.String("person_id", person.ID),
	)

	return person, nil
}

// Update modifies an existing person. Nil fields are left unchanged.
func (s *PersonService) Update(ctx context.Context, id string, input UpdatePersonInput) (*domain.Person, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get person for update: %w", err)
	}

	if input.DocumentNumber != nil && person.HasDifferentDocumentNumber(*input.DocumentNumber) {
		s.logger.InfoContext(ctx, "person document number changed",
			slog.String("person_id", person.ID),
		)
	}

	applyPersonInput(person, &input)
	person.UpdatedAt = time.Now().UTC()

	if err := s.personRepo.Update(ctx, person); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}

	s.logger.InfoContext(ctx, "person updated",
		slog.String("person_id", person.ID),
	)

	return person, nil
}

// GetByID retrieves a person by ID.
func (s *PersonService) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return person, nil
}

// List returns one page of persons. An empty page is reported as not found,
// matching the user listing behavior.
func (s *PersonService) List(ctx context.Context, params pagination.Params) (*pagination.ResultPage[domain.Person], error) {
	persons, total, err := s.personRepo.List(ctx, params.PerPage, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}

	page := pagination.NewResultPage(persons, total, params)
	if page.IsEmpty() {
		return nil, apperrors.NotFound("person page", strconv.Itoa(params.Page))
	}

	return &page, nil
}
