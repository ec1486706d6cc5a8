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

// UnitOfMeasureRepository implements repository.UnitOfMeasureRepository using PostgreSQL.
type UnitOfMeasureRepository struct {
	pool database.DBTX
}

// NewUnitOfMeasureRepository creates a new PostgreSQL-backed unit of measure repository.
func NewUnitOfMeasureRepository(pool database.DBTX) *UnitOfMeasureRepository {
	return &UnitOfMeasureRepository{pool: pool}
}

// Create inserts a new unit of measure.
func (r *UnitOfMeasureRepository) Create(ctx context.Context, u *domain.UnitOfMeasure) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO units_of_measure (id, name, symbol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Symbol, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("unit of measure", "name", u.Name)
		}
		return fmt.Errorf("insert unit of measure: %w", err)
	}
	return nil
}

// GetByID retrieves a unit of measure by ID.
func (r *UnitOfMeasureRepository) GetByID(ctx context.Context, id string) (*domain.UnitOfMeasure, error) {
	var u domain.UnitOfMeasure
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, symbol, created_at, updated_at
		FROM units_of_measure WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Symbol, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("unit of measure", id)
		}
		return nil, fmt.Errorf("get unit of measure: %w", err)
	}
	return &u, nil
}

// Update modifies an existing unit of measure.
func (r *UnitOfMeasureRepository) Update(ctx context.Context, u *domain.UnitOfMeasure) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE units_of_measure
		SET name = $1, symbol = $2, updated_at = $3
		WHERE id = $4`,
		u.Name, u.Symbol, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update unit of measure: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("unit of measure", u.ID)
	}
	return nil
}

// Delete removes a unit of measure.
func (r *UnitOfMeasureRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM units_of_measure WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit of measure: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("unit of measure", id)
	}
	return nil
}

// List returns one page of units of measure and the total count.
func (r *UnitOfMeasureRepository) List(ctx context.Context, limit, offset int) ([]domain.UnitOfMeasure, int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, symbol, created_at, updated_at,
		       count(*) OVER() AS total_count
		FROM units_of_measure
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list units of measure: %w", err)
	}
	defer rows.Close()

	var totalCount int
	units := make([]domain.UnitOfMeasure, 0)

	for rows.Next() {
		var u domain.UnitOfMeasure
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.CreatedAt, &u.UpdatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan unit of measure row: %w", err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate unit of measure rows: %w", err)
	}

	return units, totalCount, nil
}
