package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"simulado/api/internal/config"
	"simulado/api/internal/ids"
	"simulado/api/internal/models"
	"simulado/api/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the credential store the auth flows need.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
}

type AuthService struct {
	users UserStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users UserStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		log:   log,
	}
}

// TokenResult is the credential pair returned by login and upgrade.
type TokenResult struct {
	AccessToken string
	TokenType   string
}

// Register creates a free-tier user. The username is stored as given (minus
// surrounding whitespace); duplicates surface as repository.ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("username and password required")
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.UserRoleFree,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a session token carrying the user's
// current role.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenResult, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return TokenResult{}, ErrInvalidCredentials
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return TokenResult{}, ErrInvalidCredentials
	}

	return s.issueToken(user.Username, user.Role)
}

// Upgrade moves the user to the premium tier and issues a fresh token that
// already carries the new role, so clients can swap credentials without
// logging in again. Tokens issued before the upgrade keep their embedded
// role claim until they expire.
func (s *AuthService) Upgrade(ctx context.Context, user models.User) (TokenResult, error) {
	if err := s.users.UpdateRole(ctx, user.ID, models.UserRolePremium); err != nil {
		return TokenResult{}, err
	}

	s.log.Info().Str("username", user.Username).Msg("user upgraded to premium")
	return s.issueToken(user.Username, models.UserRolePremium)
}

func (s *AuthService) issueToken(username string, role models.UserRole) (TokenResult, error) {
	token, err := security.GenerateSessionToken(s.cfg.Security.JWTSecret, username, string(role), s.cfg.Security.JWTTTL)
	if err != nil {
		return TokenResult{}, fmt.Errorf("issue token: %w", err)
	}
	return TokenResult{AccessToken: token, TokenType: "bearer"}, nil
}
