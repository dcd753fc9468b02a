package quiz

import (
	"log/slog"

	"github.com/example/flashquiz/pkg/models"
)

// SelectCards draws a randomized working set of targetCount cards from
// the category. Each round picks a pool uniformly at random (the same
// pool may be picked again), shuffles its cards and appends them,
// trimming the final pool's contribution so the result never exceeds
// targetCount.
//
// A pool with no cards simply triggers another round. This assumes the
// category's pools are populated overall; a category whose pools are all
// empty would keep sampling forever.
func (e *Engine) SelectCards(category *models.Category, targetCount int) ([]models.Card, error) {
	slog.Debug("selecting question cards", "category", category.Name, "target", targetCount)

	pools, err := e.pools.GetAllInCategory(category.Name)
	if err != nil {
		return nil, err
	}
	if len(pools) == 0 {
		return nil, ErrNoPools
	}

	cards := make([]models.Card, 0, targetCount)
	for len(cards) < targetCount {
		pool := pools[e.rnd.Intn(len(pools))]
		poolCards, err := e.cards.GetInPool(pool.ID)
		if err != nil {
			return nil, err
		}
		slog.Debug("picked pool", "pool", pool.ID, "cards", len(poolCards))

		e.rnd.Shuffle(len(poolCards), func(i, j int) {
			poolCards[i], poolCards[j] = poolCards[j], poolCards[i]
		})

		if keep := targetCount - len(cards); len(poolCards) > keep {
			slog.Debug("trimming pool contribution", "pool", pool.ID, "keep", keep)
			poolCards = poolCards[:keep]
		}
		cards = append(cards, poolCards...)
	}

	return cards, nil
}
