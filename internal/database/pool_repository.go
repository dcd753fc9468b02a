package database

import (
	"fmt"

	"github.com/example/flashquiz/pkg/models"
)

// PoolRepository handles database operations for pools
type PoolRepository struct {
	store *Store
}

// NewPoolRepository creates a new repository instance
func NewPoolRepository(store *Store) *PoolRepository {
	return &PoolRepository{store: store}
}

// GetAllInCategory returns all pools belonging to a category
func (r *PoolRepository) GetAllInCategory(categoryName string) ([]models.Pool, error) {
	var pools []models.Pool
	query := r.store.db.Rebind("SELECT id, category_name FROM pools WHERE category_name = ? ORDER BY id")
	err := r.store.db.Select(&pools, query, categoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools in category %q: %v", categoryName, err)
	}
	return pools, nil
}

// GetByID returns a pool by ID
func (r *PoolRepository) GetByID(id int64) (*models.Pool, error) {
	var pool models.Pool
	query := r.store.db.Rebind("SELECT id, category_name FROM pools WHERE id = ? LIMIT 1")
	err := r.store.db.Get(&pool, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool %d: %w", id, err)
	}
	return &pool, nil
}

// Create inserts a new pool
func (r *PoolRepository) Create(pool *models.Pool) error {
	query := r.store.db.Rebind("INSERT INTO pools (id, category_name) VALUES (?, ?)")
	if _, err := r.store.db.Exec(query, pool.ID, pool.CategoryName); err != nil {
		return fmt.Errorf("failed to create pool %d: %v", pool.ID, err)
	}
	return nil
}

// Delete removes a pool. Cards referencing it keep their rows with the
// pool link set to null.
func (r *PoolRepository) Delete(id int64) error {
	query := r.store.db.Rebind("DELETE FROM pools WHERE id = ?")
	if _, err := r.store.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete pool %d: %v", id, err)
	}
	return nil
}
