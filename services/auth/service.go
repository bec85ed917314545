package auth

import (
	"context"
	"time"

	"festa/errs"
	"festa/models"
	"festa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var _ AuthService = (*DefaultAuthService)(nil)

// Register creates an account with an immutable role and opens a session.
func (s *DefaultAuthService) Register(ctx context.Context, email, password, name, role string) (*AuthResponse, error) {
	if email == "" || name == "" {
		return nil, errs.Validation("email and name are required")
	}
	userRole := models.Role(role)
	if !userRole.Valid() {
		return nil, errs.Validation("role must be %q or %q", models.RoleClient, models.RoleProvider)
	}
	if len(password) < s.MinPasswordLength {
		return nil, errs.Validation("password must be at least %d characters", s.MinPasswordLength)
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, errs.Validation("a user with email %s already exists", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Role:         userRole,
		PasswordHash: string(hashed),
	}
	if err := s.Repo.Create(&user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, &user)
}

// Authenticate verifies credentials and opens a session.
func (s *DefaultAuthService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.Authentication("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.Authentication("invalid email or password")
	}

	return s.openSession(ctx, user)
}

// Resolve validates the token signature and looks the session up in the
// store, so a logged-out token fails even before its JWT expiry.
func (s *DefaultAuthService) Resolve(ctx context.Context, token string) (Session, error) {
	if _, err := utils.ValidateToken(token); err != nil {
		return nil, errs.Authentication("invalid token")
	}
	rec, err := s.Sessions.Get(ctx, utils.HashToken(token))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.Authentication("session not found or expired")
	}
	return sessionFor(rec.UserID, rec.Role), nil
}

// Logout deletes the session. Unknown tokens are a no-op.
func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, utils.HashToken(token))
}

func (s *DefaultAuthService) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), ttl)
	if err != nil {
		utils.GetLogger().Error("openSession: failed to generate token", zap.Error(err))
		return nil, err
	}

	rec := sessionRecord{UserID: user.ID, Role: user.Role}
	if err := s.Sessions.Save(ctx, utils.HashToken(token), rec, ttl); err != nil {
		return nil, err
	}

	return &AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
		Token:  token,
	}, nil
}
