package auth

import (
	"context"
	"time"

	userRepo "festa/database/repository/user"
)

// AuthResponse is returned on successful registration or authentication.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// AuthService is the session/identity gate. Every mutating call elsewhere
// in the engine requires a Session resolved here.
type AuthService interface {
	Register(ctx context.Context, email, password, name, role string) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// Resolve maps a bearer token to a live session. Returns an
	// AuthenticationError for unknown, expired, or logged-out tokens.
	Resolve(ctx context.Context, token string) (Session, error)
	// Logout invalidates the session immediately. Idempotent.
	Logout(ctx context.Context, token string) error
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Repo     userRepo.UserRepository
	Sessions SessionStore

	// MinPasswordLength and SessionTTL are set from config at wiring time.
	MinPasswordLength int
	SessionTTL        time.Duration
}
