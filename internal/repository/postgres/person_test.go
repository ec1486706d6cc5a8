package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitech-app/user-service/pkg/database"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
)

func newTestPersonRepo(t *testing.T) (*PersonRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewPersonRepository(mock)
	return repo, mock
}

func personRowColumns() []string {
	return []string{
		"id", "first_name", "last_name", "document_type", "document_number",
		"phone_number", "email", "created_at", "updated_at",
	}
}

func TestPersonRepository_Create_Success(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	p := samplePerson()

	mock.ExpectExec("INSERT INTO persons").
		WithArgs(
			p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
			p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_Create_ExecError(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	p := samplePerson()

	mock.ExpectExec("INSERT INTO persons").
		WithArgs(
			p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
			p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnError(errors.New("disk full"))

	err := repo.Create(context.Background(), p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert person")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	p := samplePerson()
	rows := pgxmock.NewRows(personRowColumns()).AddRow(
		p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
		p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt,
	)

	mock.ExpectQuery("SELECT").
		WithArgs("person-001").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "person-001")
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.FirstName)
	assert.Equal(t, "45678901", got.DocumentNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectQuery("SELECT").
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "nonexistent")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_Update_Success(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	p := samplePerson()
	p.PhoneNumber = "+51911111111"

	mock.ExpectExec("UPDATE persons").
		WithArgs(
			p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
			p.PhoneNumber, p.Email, p.UpdatedAt, p.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), p)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	p := samplePerson()

	mock.ExpectExec("UPDATE persons").
		WithArgs(
			p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
			p.PhoneNumber, p.Email, p.UpdatedAt, p.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_List_Success(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	p := samplePerson()
	cols := append(personRowColumns(), "total_count")
	rows := pgxmock.NewRows(cols).AddRow(
		p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber,
		p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt, 1,
	)

	mock.ExpectQuery("SELECT .+ FROM persons").
		WithArgs(10, 0).
		WillReturnRows(rows)

	persons, total, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, persons, 1)
	assert.Equal(t, "person-001", persons[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_List_Empty(t *testing.T) {
	repo, mock := newTestPersonRepo(t)
	defer mock.ExpectationsWereMet()

	cols := append(personRowColumns(), "total_count")
	mock.ExpectQuery("SELECT .+ FROM persons").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(cols))

	persons, total, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, persons)
	assert.NotNil(t, persons)

	assert.NoError(t, mock.ExpectationsWereMet())
}
