package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitech-app/user-service/internal/auth"
	"github.com/fitech-app/user-service/internal/domain"
	"github.com/fitech-app/user-service/internal/mailer"
	"github.com/fitech-app/user-service/internal/repository"
	apperrors "github.com/fitech-app/user-service/pkg/errors"
	"github.com/fitech-app/user-service/pkg/pagination"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// UserService implements the registration and authentication lifecycle.
type UserService struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	mailer     mailer.Mailer
	logger     *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	jwtManager *auth.JWTManager,
	m mailer.Mailer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		mailer:     m,
		logger:     logger,
	}
}

// --- Input types ---

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Username       string
	Password       string
	Type           string
	FirstName      string
	LastName       string
	DocumentType   string
	DocumentNumber string
	PhoneNumber    string
	Email          string
}

// UpdateInput holds the parameters for updating a user. Nil fields are left
// unchanged.
type UpdateInput struct {
	Username *string
	Password *string
	Type     *string
	Person   *UpdatePersonInput
}

// UpdatePersonInput holds the nested person fields of an update.
type UpdatePersonInput struct {
	FirstName      *string
	LastName       *string
	DocumentType   *string
	DocumentNumber *string
	PhoneNumber    *string
	Email          *string
}

// --- Operations ---

// Register creates a new user account together with its person record. The
// account starts unverified and a verification email is sent to the person's
// address. A failed send is logged and does not fail the registration.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, apperrors.InvalidInput("username is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	accountType := input.Type
	if accountType == "" {
		accountType = domain.TypeCustomer
	}
	if !domain.IsValidAccountType(accountType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown account type %q", accountType))
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateUser(input.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	documentType := input.DocumentType
	if documentType == "" {
		documentType = domain.DefaultDocumentType
	}

	now := time.Now().UTC()
	expiresAt := now.Add(domain.VerificationTokenTTL)

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

	user := &domain.User{
		ID:                     uuid.New().String(),
		Username:               input.Username,
		PasswordHash:           string(hashedPassword),
		Type:                   accountType,
		PersonID:               person.ID,
		Person:                 person,
		IsEmailVerified:        false,
		EmailVerificationToken: uuid.New().String(),
		EmailTokenExpiresAt:    &expiresAt,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	// The unique index on username is the real guard; the pre-check above
	// only gives a friendlier fast path.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, person.Email, user.EmailVerificationToken); err != nil {
		s.logger.ErrorContext(ctx, "failed to send verification email",
			slog.String("code", "EMAIL_SEND_FAILED"),
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a user by username and password, returning a signed JWT
// and the user. Unknown usernames and wrong passwords are indistinguishable to
// the caller; the verified-email check runs only after the credentials pass.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.InvalidCredentials()
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	if !user.IsEmailVerified {
		return nil, apperrors.EmailNotVerified()
	}

	token, err := s.jwtManager.GenerateToken(user.Username, user.Type)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &domain.LoginResult{Token: token, User: user}, nil
}

// VerifyEmail marks the account holding the given token as verified. An
// expired token is rejected without touching the stored state, so the account
// keeps its token until a fresh one is issued.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperrors.InvalidToken()
	}

	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, apperrors.InvalidToken()
	}

	now := time.Now().UTC()
	if user.TokenExpiredAt(now) {
		return nil, apperrors.TokenExpired()
	}

	user.MarkEmailVerified(now)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("persist verified user: %w", err)
	}

	s.logger.InfoContext(ctx, "email verified",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Update modifies an existing user and its person record. A username change
// re-checks uniqueness; keeping the same username skips the check.
func (s *UserService) Update(ctx context.Context, id string, input UpdateInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.UserNotFound(fmt.Sprintf("user not found with id %s", id))
	}

	if input.Username != nil && *input.Username != user.Username {
		if *input.Username == "" {
			return nil, apperrors.InvalidInput("username must not be empty")
		}
		exists, err := s.userRepo.ExistsByUsername(ctx, *input.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if exists {
			return nil, apperrors.DuplicateUser(*input.Username)
		}
		user.Username = *input.Username
	}

	if input.Password != nil {
		if *input.Password == "" {
			return nil, apperrors.InvalidInput("password must not be empty")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.Type != nil {
		if !domain.IsValidAccountType(*input.Type) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown account type %q", *input.Type))
		}
		user.Type = *input.Type
	}

	now := time.Now().UTC()
	user.UpdatedAt = now

	if input.Person != nil && user.Person != nil {
		applyPersonInput(user.Person, input.Person)
		user.Person.UpdatedAt = now

		if err := s.userRepo.UpdateWithPerson(ctx, user); err != nil {
			return nil, fmt.Errorf("update user with person: %w", err)
		}
	} else {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.UserNotFound(fmt.Sprintf("user not found with id %s", id))
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.UserNotFound(fmt.Sprintf("user not found with username %s", username))
	}
	return user, nil
}

// UsernameExists reports whether the username is taken.
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

// EmailExists reports whether any account's person holds the email.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByPersonEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// List returns one page of users. An empty page, including a page past the
// end, is reported as UserNotFound rather than an empty result.
func (s *UserService) List(ctx context.Context, params pagination.Params) (*pagination.ResultPage[domain.User], error) {
	users, total, err := s.userRepo.List(ctx, params.PerPage, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	page := pagination.NewResultPage(users, total, params)
	if page.IsEmpty() {
		return nil, apperrors.UserNotFound("no users found")
	}

	return &page, nil
}

func applyPersonInput(p *domain.Person, input *UpdatePersonInput) {
	if input.FirstName != nil {
		p.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		p.LastName = *input.LastName
	}
	if input.DocumentType != nil {
		p.DocumentType = *input.DocumentType
	}
	if input.DocumentNumber != nil {
		p.DocumentNumber = *input.DocumentNumber
	}
	if input.PhoneNumber != nil {
		p.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		p.Email = *input.Email
	}
}
