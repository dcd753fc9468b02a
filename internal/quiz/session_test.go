package quiz

import (
	"testing"

	"github.com/example/flashquiz/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizeOptions(t *testing.T) {
	engine, _ := newTestEngine(t)
	question := &Question{
		CorrectOption: NewOptionPair("right", ""),
		IncorrectOptions: []OptionPair{
			NewOptionPair("wrong-a", ""),
			NewOptionPair("wrong-b", ""),
			NewOptionPair("wrong-c", ""),
		},
	}

	for i := 0; i < 100; i++ {
		options, correct := engine.RandomizeOptions(question)
		require.Len(t, options, 4)
		assert.Equal(t, question.CorrectOption, options[correct])

		counts := map[string]int{}
		for _, option := range options {
			counts[option.Text]++
		}
		assert.Equal(t, map[string]int{"right": 1, "wrong-a": 1, "wrong-b": 1, "wrong-c": 1}, counts)
	}
}

func TestRandomizeOptionsDuplicateDistractors(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Distractors that render identically to the answer must not steal
	// the correct index.
	question := &Question{
		CorrectOption: NewOptionPair("dog", ""),
		IncorrectOptions: []OptionPair{
			NewOptionPair("dog", ""),
			NewOptionPair("dog", ""),
		},
	}

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		options, correct := engine.RandomizeOptions(question)
		require.Len(t, options, 3)
		assert.Equal(t, "dog", options[correct].Text)
		seen[correct] = true
	}
	assert.Len(t, seen, 3, "correct index never moved")
}

func TestScorePersistence(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "animals")
	seedPool(t, store, 1, "animals")
	cardID := seedCard(t, store, 1, "animals", "dog", "犬")

	question := &Question{CardID: cardID}

	score, err := engine.IncrementScore(question)
	require.NoError(t, err)
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, question.Score)

	score, err = engine.IncrementScore(question)
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	score, err = engine.DecrementScore(question)
	require.NoError(t, err)
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, question.Score)

	// The store, not the snapshot, is the source of truth.
	stored, present, err := database.NewCardRepository(store).GetScore(cardID)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 1, stored)
}

func TestScoreGoesNegative(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "animals")
	seedPool(t, store, 1, "animals")
	cardID := seedCard(t, store, 1, "animals", "dog", "犬")

	question := &Question{CardID: cardID}
	for i := 0; i < 3; i++ {
		_, err := engine.DecrementScore(question)
		require.NoError(t, err)
	}
	assert.Equal(t, -3, question.Score)
}

func TestNewSessionValidation(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.NewSession("", 0, 4)
	assert.ErrorContains(t, err, "question count")

	_, err = engine.NewSession("", 5, 1)
	assert.ErrorContains(t, err, "choices count")
}

func TestNewSessionEndToEnd(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "jlpt-n5")
	seedPool(t, store, 1, "jlpt-n5")
	seedPoolOfCards(t, store, 1, "jlpt-n5", 5)

	session, err := engine.NewSession("jlpt-n5", 3, 4)
	require.NoError(t, err)
	assert.Equal(t, "jlpt-n5", session.Category)
	require.Len(t, session.Questions, 3)
	assert.False(t, session.Done())
	assert.Equal(t, 0, session.CurrentIndex())
	for _, q := range session.Questions {
		assert.Len(t, q.IncorrectOptions, 3)
	}
}

func TestSessionAnswerFlow(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "animals")
	seedPool(t, store, 1, "animals")
	seedPoolOfCards(t, store, 1, "animals", 4)

	session, err := engine.NewSession("animals", 2, 3)
	require.NoError(t, err)
	require.Len(t, session.Questions, 2)

	first := session.Current()
	score, err := session.Answer(true)
	require.NoError(t, err)
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, first.Score)
	assert.Equal(t, AnsweredCorrect, session.Outcome(0))
	assert.Equal(t, 1, session.CurrentIndex())

	second := session.Current()
	score, err = session.Answer(false)
	require.NoError(t, err)
	assert.Equal(t, -1, score)
	assert.Equal(t, -1, second.Score)
	assert.Equal(t, AnsweredIncorrect, session.Outcome(1))

	assert.True(t, session.Done())
	assert.Nil(t, session.Current())
	assert.Equal(t, 1, session.CorrectCount())

	_, err = session.Answer(true)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSessionQuit(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "animals")
	seedPool(t, store, 1, "animals")
	seedPoolOfCards(t, store, 1, "animals", 4)

	session, err := engine.NewSession("animals", 3, 3)
	require.NoError(t, err)

	_, err = session.Answer(true)
	require.NoError(t, err)

	session.Quit()
	assert.True(t, session.Done())
	assert.Equal(t, AnsweredCorrect, session.Outcome(0))
	assert.Equal(t, Skipped, session.Outcome(1))
	assert.Equal(t, Skipped, session.Outcome(2))

	_, err = session.Answer(true)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSessionAnswerStoreFailure(t *testing.T) {
	engine, store := newTestEngine(t)
	seedCategory(t, store, "animals")
	seedPool(t, store, 1, "animals")
	seedPoolOfCards(t, store, 1, "animals", 4)

	session, err := engine.NewSession("animals", 2, 3)
	require.NoError(t, err)
	question := session.Current()
	before := question.Score

	require.NoError(t, store.Close())

	_, err = session.Answer(true)
	require.Error(t, err)

	// A failed write leaves both the snapshot and the position alone.
	assert.Equal(t, before, question.Score)
	assert.Equal(t, 0, session.CurrentIndex())
	assert.Equal(t, Unanswered, session.Outcome(0))
	assert.False(t, session.Done())
}
