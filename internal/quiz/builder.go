package quiz

import (
	"log/slog"

	"github.com/example/flashquiz/pkg/models"
)

// BuildQuestions turns sampled cards into multiple-choice questions, in
// input order. Distractors come from the other cards of the same pool
// (their back faces). Cards missing an id or pool id are skipped with a
// warning; a pool whose sibling set cannot fill choicesCount-1 distractor
// slots yields a degraded question with fewer options, also warned.
//
// Sampled cards are usually contiguous per pool, so the builder keeps a
// single-slot cache of the last pool's card list instead of re-fetching
// for every card. The cache is pure local state and never survives a call.
func (e *Engine) BuildQuestions(cards []models.Card, choicesCount int) []*Question {
	questions := make([]*Question, 0, len(cards))

	var cachedPoolID int64
	var cachedPoolCards []models.Card
	cached := false

	for _, card := range cards {
		if !card.ID.Valid {
			slog.Warn("card has no id, skipping")
			continue
		}
		if !card.PoolID.Valid {
			slog.Warn("card has no pool id, skipping", "card", card.ID.Int64)
			continue
		}
		cardID := card.ID.Int64
		poolID := card.PoolID.Int64

		if !cached || cachedPoolID != poolID {
			poolCards, err := e.cards.GetInPool(poolID)
			if err != nil {
				slog.Warn("cannot fetch cards in pool", "pool", poolID, "error", err)
				cached = false
				cachedPoolCards = nil
			} else {
				cachedPoolID = poolID
				cachedPoolCards = poolCards
				cached = true
			}
		}
		if !cached {
			// The refresh failed; without siblings there is no question to build.
			slog.Warn("no pool cards available, skipping card", "card", cardID, "pool", poolID)
			continue
		}

		siblings := make([]OptionPair, 0, len(cachedPoolCards))
		for _, sibling := range cachedPoolCards {
			if sibling.ID.Valid && sibling.ID.Int64 == cardID {
				continue
			}
			siblings = append(siblings, NewOptionPair(sibling.Back, sibling.BackImage))
		}
		e.rnd.Shuffle(len(siblings), func(i, j int) {
			siblings[i], siblings[j] = siblings[j], siblings[i]
		})

		wanted := choicesCount - 1
		if len(siblings) < wanted {
			slog.Warn("not enough sibling cards for distractors",
				"card", cardID, "pool", poolID, "have", len(siblings), "want", wanted)
			wanted = len(siblings)
		}

		questions = append(questions, &Question{
			CardID:           cardID,
			Score:            card.CurrentScore(),
			Front:            NewOptionPair(card.Front, card.FrontImage),
			CorrectOption:    NewOptionPair(card.Back, card.BackImage),
			IncorrectOptions: siblings[:wanted],
		})
	}

	return questions
}
