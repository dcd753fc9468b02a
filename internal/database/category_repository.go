package database

import (
	"fmt"

	"github.com/example/flashquiz/pkg/models"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a new repository instance
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// GetAll returns all categories
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.store.db.Select(&categories, "SELECT name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %v", err)
	}
	return categories, nil
}

// GetOne returns a category by name
func (r *CategoryRepository) GetOne(name string) (*models.Category, error) {
	var category models.Category
	query := r.store.db.Rebind("SELECT name FROM categories WHERE name = ? LIMIT 1")
	err := r.store.db.Get(&category, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %q: %w", name, err)
	}
	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	query := r.store.db.Rebind("INSERT INTO categories (name) VALUES (?)")
	if _, err := r.store.db.Exec(query, category.Name); err != nil {
		return fmt.Errorf("failed to create category %q: %v", category.Name, err)
	}
	return nil
}

// Delete removes a category. Pools and cards referencing it keep their
// rows with the link set to null.
func (r *CategoryRepository) Delete(name string) error {
	query := r.store.db.Rebind("DELETE FROM categories WHERE name = ?")
	if _, err := r.store.db.Exec(query, name); err != nil {
		return fmt.Errorf("failed to delete category %q: %v", name, err)
	}
	return nil
}
