package models

import "database/sql"

// Pool is a bucket of related cards inside a category. The category link
// is nullable: deleting a category leaves its pools orphaned, not gone.
type Pool struct {
	ID           int64          `db:"id"`
	CategoryName sql.NullString `db:"category_name"`
}
