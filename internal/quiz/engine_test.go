package quiz

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/example/flashquiz/internal/database"
	"github.com/example/flashquiz/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *database.Store) {
	t.Helper()
	store, err := database.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewEngine(store), store
}

func seedCategory(t *testing.T, store *database.Store, name string) {
	t.Helper()
	require.NoError(t, database.NewCategoryRepository(store).Create(&models.Category{Name: name}))
}

func seedPool(t *testing.T, store *database.Store, id int64, category string) {
	t.Helper()
	pool := models.Pool{ID: id, CategoryName: sql.NullString{String: category, Valid: true}}
	require.NoError(t, database.NewPoolRepository(store).Create(&pool))
}

func seedCard(t *testing.T, store *database.Store, poolID int64, category, front, back string) int64 {
	t.Helper()
	card := models.Card{
		Front:        front,
		Back:         back,
		PoolID:       sql.NullInt64{Int64: poolID, Valid: true},
		CategoryName: sql.NullString{String: category, Valid: true},
	}
	require.NoError(t, database.NewCardRepository(store).Create(&card))
	require.True(t, card.ID.Valid)
	return card.ID.Int64
}

// seedPoolOfCards fills a pool with n numbered cards and returns their ids.
func seedPoolOfCards(t *testing.T, store *database.Store, poolID int64, category string, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, seedCard(t, store, poolID, category,
			fmt.Sprintf("front-%d-%d", poolID, i), fmt.Sprintf("back-%d-%d", poolID, i)))
	}
	return ids
}

func TestPickCategoryEmptyStore(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.PickCategory("")
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestPickCategoryByName(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "jlpt-n5")
	seedCategory(t, store, "capitals")

	category, err := engine.PickCategory("capitals")
	require.NoError(t, err)
	assert.Equal(t, "capitals", category.Name)
}

func TestPickCategoryUnknownName(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "jlpt-n5")

	_, err := engine.PickCategory("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NotErrorIs(t, err, ErrNoCategories)
}

func TestPickCategoryRandom(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "only-one")

	// With a single category the random pick is deterministic.
	for i := 0; i < 5; i++ {
		category, err := engine.PickCategory("")
		require.NoError(t, err)
		assert.Equal(t, "only-one", category.Name)
	}
}

func TestPickCategoryRandomCoversAll(t *testing.T) {
	engine, store := newTestEngine(t)
	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		seedCategory(t, store, name)
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		category, err := engine.PickCategory("")
		require.NoError(t, err)
		seen[category.Name] = true
	}
	for _, name := range names {
		assert.True(t, seen[name], "category %q never picked", name)
	}
}
