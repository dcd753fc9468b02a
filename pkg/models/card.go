package models

import "database/sql"

// Card is a single flashcard. Each face has a text and an image path,
// either of which may be empty. Pool and category links are nullable
// because the store sets them to null when the parent row is deleted;
// the quiz engine must tolerate such cards.
type Card struct {
	ID           sql.NullInt64  `db:"id"`
	Front        string         `db:"front"`
	Back         string         `db:"back"`
	FrontImage   string         `db:"front_image"`
	BackImage    string         `db:"back_image"`
	Score        sql.NullInt64  `db:"score"`
	PoolID       sql.NullInt64  `db:"pool_id"`
	CategoryName sql.NullString `db:"category_name"`
}

// CurrentScore returns the stored score, defaulting to 0 when unset.
func (c Card) CurrentScore() int {
	if c.Score.Valid {
		return int(c.Score.Int64)
	}
	return 0
}
