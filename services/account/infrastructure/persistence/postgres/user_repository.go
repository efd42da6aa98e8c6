package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saschaorth/item-catalog/pkg/database"
	accountdomain "github.com/saschaorth/item-catalog/services/account/domain"
	"github.com/saschaorth/item-catalog/services/account/domain/models"
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given pool.
func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, email, created_at, updated_at"

// FindByEmail returns the user with the given email, or ErrUserNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.DB().QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, accountdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return &u, nil
}

// GetByID returns the user with the given id, or ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.DB().QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, accountdomain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// Create persists a new user and returns it with its store-assigned id.
// The email column carries a unique constraint; a concurrent first login for
// the same email surfaces as a constraint violation rather than a second row.
func (r *UserRepository) Create(ctx context.Context, name, email string) (*models.User, error) {
	u := models.User{Name: name, Email: email}
	err := r.db.DB().QueryRowContext(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		name, email,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("user %s already exists: %w", email, err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}
