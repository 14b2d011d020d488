package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
	"github.com/pageturn/bookshelf-api/internal/metrics"
)

// AuthService implements registration and login against the credential store.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	ids    ports.IDGenerator
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, ids ports.IDGenerator, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, ids: ids, logger: logger}
}

// Register creates a new identity. The role set must be non-empty and drawn
// from the known roles; the pseudonym defaults to the username.
func (s *AuthService) Register(ctx context.Context, username, password, pseudonym string, roles []string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || len(roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return nil, domain.ErrInvalidInput
		}
	}
	if strings.TrimSpace(pseudonym) == "" {
		pseudonym = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:              s.ids.NewID(),
		Username:        username,
		AuthorPseudonym: pseudonym,
		PasswordHash:    string(hash),
		Roles:           roles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login validates the credentials and issues a bearer token. Unknown
// username and wrong password collapse into the same rejection so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return token, user, nil
}
