package ports

import (
	"context"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
)

// UserRepository is the credential store: it persists identities and is the
// single source of truth for username uniqueness and role sets.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
