package domain

import (
	"time"
)

// VerificationTokenTTL is how long an email verification token stays valid.
const VerificationTokenTTL = 24 * time.Hour

// User represents a login account linked to exactly one Person.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Type         string  `json:"type"`
	PersonID     string  `json:"person_id"`
	Person       *Person `json:"person,omitempty"`

	IsEmailVerified        bool       `json:"is_email_verified"`
	EmailVerificationToken string     `json:"-"`
	EmailTokenExpiresAt    *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenExpiredAt reports whether the verification token was already expired
// at the given instant. A user with no expiry on record (already verified)
// counts as expired.
func (u *User) TokenExpiredAt(now time.Time) bool {
	return u.EmailTokenExpiresAt == nil || u.EmailTokenExpiresAt.Before(now)
}

// MarkEmailVerified flips the account to verified and clears the token and
// its expiry. The transition is one-way; nothing un-verifies an account.
func (u *User) MarkEmailVerified(now time.Time) {
	u.IsEmailVerified = true
	u.EmailVerificationToken = ""
	u.EmailTokenExpiresAt = nil
	u.UpdatedAt = now
}

// LoginResult is a successful login: a session token plus the public account view.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
