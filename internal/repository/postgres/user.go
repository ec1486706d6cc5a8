package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fitech-app/user-service/internal/domain"
	"github.com/fitech-app/user-service/pkg/database"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
)

// userColumns is the joined column list selected for every user read.
const userSelect = `
	SELECT u.id, u.username, u.password_hash, u.type, u.person_id,
	       u.is_email_verified, u.email_verification_token, u.email_token_expires_at,
	       u.created_at, u.updated_at,
	       p.id, p.first_name, p.last_name, p.document_type, p.document_number,
	       p.phone_number, p.email, p.created_at, p.updated_at
	FROM users u
	JOIN persons p ON p.id = u.person_id`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	pool database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool database.DBTX) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the person and the user in one transaction. The unique index
// on users.username is the source of truth for duplicate usernames; a 23505
// from it is mapped to DuplicateUser even when the pre-check passed.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Person == nil {
		return apperrors.InvalidInput("user has no person record")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p := u.Person
	_, err = tx.Exec(ctx, `
		INSERT INTO persons (id, first_name, last_name, document_type, document_number, phone_number, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.FirstName, p.LastName, p.DocumentType, p.DocumentNumber, p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, type, person_id, is_email_verified, email_verification_token, email_token_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.PasswordHash, u.Type, u.PersonID,
		u.IsEmailVerified, u.EmailVerificationToken, u.EmailTokenExpiresAt,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.DuplicateUser(u.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a user with its person by the user's ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(ctx, userSelect+` WHERE u.id = $1`, id)
}

// GetByUsername retrieves a user with its person by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, userSelect+` WHERE u.username = $1`, username)
}

// GetByVerificationToken retrieves the user holding the given token.
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.scanUser(ctx, userSelect+` WHERE u.email_verification_token = $1`, token)
}

// Update modifies the user row only.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, password_hash = $2, type = $3,
		    is_email_verified = $4, email_verification_token = $5, email_token_expires_at = $6,
		    updated_at = $7
		WHERE id = $8`,
		u.Username, u.PasswordHash, u.Type,
		u.IsEmailVerified, u.EmailVerificationToken, u.EmailTokenExpiresAt,
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.DuplicateUser(u.Username)
		}
		return fmt.Errorf("update user: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.UserNotFound(fmt.Sprintf("user not found with id %s", u.ID))
	}

	return nil
}

// UpdateWithPerson modifies the person row and the user row in one transaction.
func (r *UserRepository) UpdateWithPerson(ctx context.Context, u *domain.User) error {
	if u.Person == nil {
		return apperrors.InvalidInput("user has no person record")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p := u.Person
	ct, err := tx.Exec(ctx, `
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

	ct, err = tx.Exec(ctx, `
		UPDATE users
		SET username = $1, password_hash = $2, type = $3,
		    is_email_verified = $4, email_verification_token = $5, email_token_expires_at = $6,
		    updated_at = $7
		WHERE id = $8`,
		u.Username, u.PasswordHash, u.Type,
		u.IsEmailVerified, u.EmailVerificationToken, u.EmailTokenExpiresAt,
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.DuplicateUser(u.Username)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.UserNotFound(fmt.Sprintf("user not found with id %s", u.ID))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ExistsByUsername reports whether any user holds the given username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

// ExistsByPersonEmail reports whether any user's person holds the given email.
func (r *UserRepository) ExistsByPersonEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM users u JOIN persons p ON p.id = u.person_id
			WHERE p.email = $1
		)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check person email exists: %w", err)
	}
	return exists, nil
}

// List returns one page of users with their persons and the total count.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.type, u.person_id,
		       u.is_email_verified, u.email_verification_token, u.email_token_expires_at,
		       u.created_at, u.updated_at,
		       p.id, p.first_name, p.last_name, p.document_type, p.document_number,
		       p.phone_number, p.email, p.created_at, p.updated_at,
		       count(*) OVER() AS total_count
		FROM users u
		JOIN persons p ON p.id = u.person_id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var totalCount int
	users := make([]domain.User, 0)

	for rows.Next() {
		var (
			u domain.User
			p domain.Person
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.Type, &u.PersonID,
			&u.IsEmailVerified, &u.EmailVerificationToken, &u.EmailTokenExpiresAt,
			&u.CreatedAt, &u.UpdatedAt,
			&p.ID, &p.FirstName, &p.LastName, &p.DocumentType, &p.DocumentNumber,
			&p.PhoneNumber, &p.Email, &p.CreatedAt, &p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		u.Person = &p
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, totalCount, nil
}

// scanUser executes a query expected to return a single joined user row.
func (r *UserRepository) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var (
		u domain.User
		p domain.Person
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Type, &u.PersonID,
		&u.IsEmailVerified, &u.EmailVerificationToken, &u.EmailTokenExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
		&p.ID, &p.FirstName, &p.LastName, &p.DocumentType, &p.DocumentNumber,
		&p.PhoneNumber, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.Person = &p
	return &u, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
