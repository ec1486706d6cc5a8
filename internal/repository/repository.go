package repository

import (
	"context"

	"github.com/fitech-app/user-service/internal/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// Create inserts a new user together with its person record in a single
	// transaction; both rows are written or neither is. A username collision
	// surfaces as a DuplicateUser error backed by the unique constraint.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user (with its person) by the user's identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user (with its person) by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByVerificationToken retrieves the user currently holding the given
	// email verification token.
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)

	// Update modifies the user row only.
	Update(ctx context.Context, user *domain.User) error

	// UpdateWithPerson modifies the user row and its person row in a single
	// transaction; both updates apply or neither does.
	UpdateWithPerson(ctx context.Context, user *domain.User) error

	// ExistsByUsername reports whether any user holds the given username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByPersonEmail reports whether any user's person holds the given email.
	ExistsByPersonEmail(ctx context.Context, email string) (bool, error)

	// List returns one page of users (with persons) plus the total count.
	List(ctx context.Context, limit, offset int) ([]domain.User, int, error)
}

// PersonRepository defines the interface for person persistence.
type PersonRepository interface {
	// Create inserts a new person.
	Create(ctx context.Context, person *domain.Person) error

	// GetByID retrieves a person by their identifier.
	GetByID(ctx context.Context, id string) (*domain.Person, error)

	// Update modifies an existing person.
	Update(ctx context.Context, person *domain.Person) error

	// List returns one page of persons plus the total count.
	List(ctx context.Context, limit, offset int) ([]domain.Person, int, error)
}

// UnitOfMeasureRepository defines the interface for unit-of-measure persistence.
type UnitOfMeasureRepository interface {
	// Create inserts a new unit of measure.
	Create(ctx context.Context, uom *domain.UnitOfMeasure) error

	// GetByID retrieves a unit of measure by its identifier.
	GetByID(ctx context.Context, id string) (*domain.UnitOfMeasure, error)

	// Update modifies an existing unit of measure.
	Update(ctx context.Context, uom *domain.UnitOfMeasure) error

	// Delete removes a unit of measure by its identifier.
	Delete(ctx context.Context, id string) error

	// List returns one page of units of measure plus the total count.
	List(ctx context.Context, limit, offset int) ([]domain.UnitOfMeasure, int, error)
}
