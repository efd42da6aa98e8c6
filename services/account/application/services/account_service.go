package services

import (
	"context"
	"errors"
	"fmt"

	accountdomain "github.com/saschaorth/item-catalog/services/account/domain"
	"github.com/saschaorth/item-catalog/services/account/domain/models"
	"github.com/saschaorth/item-catalog/services/account/domain/repositories"
)

// AccountService maps provider identities onto local user records.
type AccountService struct {
	users repositories.UserRepository
}

// NewAccountService returns an AccountService over the given repository.
func NewAccountService(users repositories.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// ResolveUser returns the user for the given email, creating one on first
// login. A concurrent first login for the same email loses the insert race
// and falls back to reading the winner's row.
func (s *AccountService) ResolveUser(ctx context.Context, name, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, accountdomain.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	user, err = s.users.Create(ctx, name, email)
	if err != nil {
		if existing, findErr := s.users.FindByEmail(ctx, email); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
