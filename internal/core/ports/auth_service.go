package ports

import (
	"context"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, pseudonym string, roles []string) (*domain.User, error)
	// Login validates the credentials and returns a signed bearer token on
	// success. Unknown username and wrong password are indistinguishable:
	// both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
