package models

// Category is a top-level grouping of pools, keyed by its unique name.
type Category struct {
	Name string `db:"name" json:"name"`
}
