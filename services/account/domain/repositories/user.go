package repositories

import (
	"context"

	"github.com/saschaorth/item-catalog/services/account/domain/models"
)

// UserRepository is the persistence interface for local user accounts.
type UserRepository interface {
	// FindByEmail returns the user or ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user or ErrUserNotFound when zero rows match.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// Create persists a new user and returns it with its store-assigned id.
	Create(ctx context.Context, name, email string) (*models.User, error)
}
