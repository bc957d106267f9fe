package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"property-expert/internal/config"
	"property-expert/internal/models"
	"property-expert/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrMissingFields      = errors.New("missing required fields")
)

// Service owns signup, login and admin checks. The JWT secret and the admin
// allowlist come from configuration; nothing here reads the environment or
// hardcodes an email.
type Service struct {
	store store.RecordStore
	cfg   config.AuthConfig
}

func NewService(st store.RecordStore, cfg config.AuthConfig) *Service {
	return &Service{store: st, cfg: cfg}
}

// SignUp hashes the password and stores a new user record.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
		CreatedAt:    &now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn verifies credentials and issues a token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IsAdmin checks the authenticated email against the configured allowlist.
func (s *Service) IsAdmin(email string) bool {
	return s.cfg.IsAdminEmail(email)
}
