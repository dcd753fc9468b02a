package database

import (
	"database/sql"
	"fmt"

	"github.com/example/flashquiz/pkg/models"
)

// CardRepository handles database operations for cards
type CardRepository struct {
	store *Store
}

// NewCardRepository creates a new repository instance
func NewCardRepository(store *Store) *CardRepository {
	return &CardRepository{store: store}
}

const cardColumns = "id, front, back, front_image, back_image, score, pool_id, category_name"

// GetInPool returns all cards belonging to a pool
func (r *CardRepository) GetInPool(poolID int64) ([]models.Card, error) {
	var cards []models.Card
	query := r.store.db.Rebind("SELECT " + cardColumns + " FROM cards WHERE pool_id = ? ORDER BY id")
	err := r.store.db.Select(&cards, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards in pool %d: %v", poolID, err)
	}
	return cards, nil
}

// GetByID returns a card by ID
func (r *CardRepository) GetByID(id int64) (*models.Card, error) {
	var card models.Card
	query := r.store.db.Rebind("SELECT " + cardColumns + " FROM cards WHERE id = ? LIMIT 1")
	err := r.store.db.Get(&card, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card %d: %w", id, err)
	}
	return &card, nil
}

// Create inserts a new card and fills in its assigned ID.
func (r *CardRepository) Create(card *models.Card) error {
	if r.store.db.DriverName() == "postgres" {
		query := `
			INSERT INTO cards (front, back, front_image, back_image, score, pool_id, category_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		var id int64
		err := r.store.db.QueryRow(
			query,
			card.Front,
			card.Back,
			card.FrontImage,
			card.BackImage,
			card.CurrentScore(),
			card.PoolID,
			card.CategoryName,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create card: %v", err)
		}
		card.ID = sql.NullInt64{Int64: id, Valid: true}
		return nil
	}

	// SQLite has no RETURNING in the versions we target
	result, err := r.store.db.Exec(`
		INSERT INTO cards (front, back, front_image, back_image, score, pool_id, category_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		card.Front,
		card.Back,
		card.FrontImage,
		card.BackImage,
		card.CurrentScore(),
		card.PoolID,
		card.CategoryName,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	card.ID = sql.NullInt64{Int64: id, Valid: true}
	return nil
}

// Delete removes a card
func (r *CardRepository) Delete(id int64) error {
	query := r.store.db.Rebind("DELETE FROM cards WHERE id = ?")
	if _, err := r.store.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete card %d: %v", id, err)
	}
	return nil
}

// ChangeScore writes a new score for a card and returns the applied value.
func (r *CardRepository) ChangeScore(id int64, score int) (int, error) {
	query := r.store.db.Rebind("UPDATE cards SET score = ? WHERE id = ?")
	if _, err := r.store.db.Exec(query, score, id); err != nil {
		return 0, fmt.Errorf("failed to update score for card %d: %w", id, err)
	}
	return score, nil
}

// GetScore returns a card's stored score. The boolean reports whether a
// score was present; callers treat absent as 0.
func (r *CardRepository) GetScore(id int64) (int, bool, error) {
	var score sql.NullInt64
	query := r.store.db.Rebind("SELECT score FROM cards WHERE id = ? LIMIT 1")
	err := r.store.db.Get(&score, query, id)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get score for card %d: %w", id, err)
	}
	return int(score.Int64), score.Valid, nil
}

// CountScoredBelow returns the number of cards with a score under the
// given threshold. Used by the reminder scheduler.
func (r *CardRepository) CountScoredBelow(threshold int) (int, error) {
	var count int
	query := r.store.db.Rebind("SELECT COUNT(*) FROM cards WHERE score < ?")
	err := r.store.db.Get(&count, query, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards below score %d: %v", threshold, err)
	}
	return count, nil
}
