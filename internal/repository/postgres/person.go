package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fitech-app/user-service/internal/domain"
	"github.com/fitech-app/user-service/pkg/database"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
)

// PersonRepository implements repository.PersonRepository using PostgreSQL.
type PersonRepository struct {
	pool database.DBTX
}

// NewPersonRepository creates a new PostgreSQL-backed person repository.
func NewPersonRepository(pool database.DBTX) *PersonRepository {
	return &PersonRepository{pool: pool}
}

// Create inserts a new person.
func (r *PersonRepository) Create(ctx context.Context, p *domain.Person) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO persons (id, first_name, last_name, document_type, document_number, phone_number, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber, p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	var p domain.Person
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, document_type, document_number, phone_number, email, created_at, updated_at
		FROM persons WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.DocumentType, &p.DocumentNumber,
		&p.PhoneNumber, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("person", id)
		}
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &p, nil
}

// Update modifies an existing person.
func (r *PersonRepository) Update(ctx context.Context, p *domain.Person) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE persons
		SET first_name = $1, last_name = $2, document_type = $3, document_number = $4,
		    phone_number = $5, email = $6, updated_at = $7
		WHERE id = $8`,
		p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
		p.PhoneNumber, p.Email, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("person", p.ID)
	}
	return nil
}

// List returns one page of persons and the total count.
func (r *PersonRepository) List(ctx context.Context, limit, offset int) ([]domain.Person, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, document_type, document_number, phone_number, email, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM persons
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var totalCount int
	persons := make([]domain.Person, 0)

	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.DocumentType, &p.DocumentNumber,
			&p.PhoneNumber, &p.Email, &p.CreatedAt, &p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan person row: %w", err)
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate person rows: %w", err)
	}

	return persons, totalCount, nil
}
