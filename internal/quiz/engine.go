package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/flashquiz/internal/database"
	"github.com/example/flashquiz/pkg/models"
)

// Setup-fatal conditions. Distinct sentinels so callers can show the
// user which precondition failed.
var (
	// ErrNoCategories means the store holds no categories at all.
	ErrNoCategories = errors.New("no categories found")
	// ErrNoPools means the chosen category has no pools to sample from.
	ErrNoPools = errors.New("no pools found in category")
)

// Engine runs question sessions against the card store. All store access
// goes through the repositories it was constructed with; the engine keeps
// no state between sessions.
type Engine struct {
	categories *database.CategoryRepository
	pools      *database.PoolRepository
	cards      *database.CardRepository
	rnd        *rand.Rand
}

// NewEngine creates an engine bound to the given store handle.
func NewEngine(store *database.Store) *Engine {
	return &Engine{
		categories: database.NewCategoryRepository(store),
		pools:      database.NewPoolRepository(store),
		cards:      database.NewCardRepository(store),
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PickCategory resolves the category to quiz on. An empty name picks one
// uniformly at random; otherwise the named category must exist. Returns
// ErrNoCategories when the store has none.
func (e *Engine) PickCategory(name string) (*models.Category, error) {
	if name != "" {
		category, err := e.categories.GetOne(name)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		return category, nil
	}

	all, err := e.categories.GetAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoCategories
	}
	return &all[e.rnd.Intn(len(all))], nil
}
