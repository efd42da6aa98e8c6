package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saschaorth/item-catalog/pkg/database"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db *database.Database
}

// NewCategoryRepository returns a CategoryRepository backed by the given pool.
func NewCategoryRepository(db *database.Database) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = "id, name, user_id, created_at, updated_at"

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByID returns the category with the given id.
// Returns ErrCategoryNotFound on zero rows and ErrRowAnomaly if the primary
// key somehow matches more than one row.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query category: %w", err)
		}
		return nil, catalogdomain.ErrCategoryNotFound
	}
	c, err := scanCategory(rows)
	if err != nil {
		return nil, err
	}
	if rows.Next() {
		return nil, fmt.Errorf("category %d: %w", id, catalogdomain.ErrRowAnomaly)
	}
	return c, rows.Err()
}

func scanCategory(rows *sql.Rows) (*models.Category, error) {
	var (
		c      models.Category
		userID sql.NullInt64
	)
	if err := rows.Scan(&c.ID, &c.Name, &userID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	if userID.Valid {
		c.UserID = &userID.Int64
	}
	return &c, nil
}
