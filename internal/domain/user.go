package domain

import (
	"context"
	"errors"
	"time"
)

// User roles.
const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
	RoleAdmin       = "admin"
)

// ErrDuplicateEmail is returned when signing up with an email already in use.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrUserNotFound is returned when a user lookup finds nothing.
var ErrUserNotFound = errors.New("user not found")

// ErrAccountSuspended is returned when a suspended user attempts to log in.
var ErrAccountSuspended = errors.New("account is suspended")

// User represents an account holder (organizer, participant, or admin).
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		Name:      name,
		Role:      role,
		Active:    true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user's id and role.
type TokenVerifier interface {
	Verify(token string) (userID, role string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ListByRoles(ctx context.Context, roles []string) ([]*User, error)
	SetActive(ctx context.Context, id string, active bool) (*User, error)
}

// AuthService defines signup, login, and profile lookup.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name, role string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
