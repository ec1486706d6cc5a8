package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitech-app/user-service/internal/domain"
	"github.com/fitech-app/user-service/pkg/database"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
)

func newTestUnitRepo(t *testing.T) (*UnitOfMeasureRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewUnitOfMeasureRepository(mock)
	return repo, mock
}

func sampleUnit() *domain.UnitOfMeasure {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.UnitOfMeasure{
		ID:        "unit-001",
		Name:      "Kilogram",
		Symbol:    "kg",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUnitOfMeasureRepository_Create_Success(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	u := sampleUnit()

	mock.ExpectExec("INSERT INTO units_of_measure").
		WithArgs(u.ID, u.Name, u.Symbol, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), u)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	u := sampleUnit()
	rows := pgxmock.NewRows([]string{"id", "name", "symbol", "created_at", "updated_at"}).
		AddRow(u.ID, u.Name, u.Symbol, u.CreatedAt, u.UpdatedAt)

	mock.ExpectQuery("SELECT").
		WithArgs("unit-001").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "unit-001")
	require.NoError(t, err)
	assert.Equal(t, "Kilogram", got.Name)
	assert.Equal(t, "kg", got.Symbol)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectQuery("SELECT").
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "nonexistent")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	u := sampleUnit()

	mock.ExpectExec("UPDATE units_of_measure").
		WithArgs(u.Name, u.Symbol, u.UpdatedAt, u.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), u)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_Delete_Success(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectExec("DELETE FROM units_of_measure").
		WithArgs("unit-001").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "unit-001")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectExec("DELETE FROM units_of_measure").
		WithArgs("nonexistent").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_List_Success(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	u := sampleUnit()
	rows := pgxmock.NewRows([]string{"id", "name", "symbol", "created_at", "updated_at", "total_count"}).
		AddRow(u.ID, u.Name, u.Symbol, u.CreatedAt, u.UpdatedAt, 3).
		AddRow("unit-002", "Gram", "g", u.CreatedAt, u.UpdatedAt, 3)

	mock.ExpectQuery("SELECT .+ FROM units_of_measure").
		WithArgs(20, 0).
		WillReturnRows(rows)

	units, total, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, units, 2)
	assert.Equal(t, "Kilogram", units[0].Name)
	assert.Equal(t, "Gram", units[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfMeasureRepository_List_QueryError(t *testing.T) {
	repo, mock := newTestUnitRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectQuery("SELECT .+ FROM units_of_measure").
		WithArgs(20, 0).
		WillReturnError(errors.New("database timeout"))

	units, total, err := repo.List(context.Background(), 20, 0)
	assert.Nil(t, units)
	assert.Equal(t, 0, total)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "list units of measure")

	assert.NoError(t, mock.ExpectationsWereMet())
}
