package quiz

import (
	"errors"
	"fmt"
)

// Question is one session-scoped multiple-choice question. Score is a
// snapshot of the card's stored score at build time; it is only mutated
// through the engine's scoring operations, which write through to the
// store first.
type Question struct {
	CardID           int64
	Score            int
	Front            OptionPair
	CorrectOption    OptionPair
	IncorrectOptions []OptionPair
}

// AllOptions returns the correct option followed by the distractors.
func (q *Question) AllOptions() []OptionPair {
	all := make([]OptionPair, 0, 1+len(q.IncorrectOptions))
	all = append(all, q.CorrectOption)
	all = append(all, q.IncorrectOptions...)
	return all
}

// RandomizeOptions shuffles the question's options and returns them with
// the index of the correct one. The correct flag travels through the
// shuffle with its option, so duplicate-valued distractors cannot steal
// the correct index.
func (e *Engine) RandomizeOptions(q *Question) ([]OptionPair, int) {
	type tagged struct {
		value   OptionPair
		correct bool
	}

	all := make([]tagged, 0, 1+len(q.IncorrectOptions))
	all = append(all, tagged{value: q.CorrectOption, correct: true})
	for _, opt := range q.IncorrectOptions {
		all = append(all, tagged{value: opt})
	}
	e.rnd.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	options := make([]OptionPair, len(all))
	correct := 0
	for i, t := range all {
		options[i] = t.value
		if t.correct {
			correct = i
		}
	}
	return options, correct
}

// GetScore reads the card's current persisted score, defaulting to 0
// when the store has none.
func (e *Engine) GetScore(q *Question) (int, error) {
	score, _, err := e.cards.GetScore(q.CardID)
	if err != nil {
		return 0, err
	}
	return score, nil
}

// setScore writes a score to the store and mirrors the applied value
// into the in-memory snapshot. On a store error the snapshot is left
// untouched.
func (e *Engine) setScore(q *Question, score int) (int, error) {
	applied, err := e.cards.ChangeScore(q.CardID, score)
	if err != nil {
		return 0, err
	}
	q.Score = applied
	return applied, nil
}

// IncrementScore adds one to the card's persisted score and returns the
// new value.
func (e *Engine) IncrementScore(q *Question) (int, error) {
	current, err := e.GetScore(q)
	if err != nil {
		return 0, err
	}
	return e.setScore(q, current+1)
}

// DecrementScore subtracts one from the card's persisted score and
// returns the new value.
func (e *Engine) DecrementScore(q *Question) (int, error) {
	current, err := e.GetScore(q)
	if err != nil {
		return 0, err
	}
	return e.setScore(q, current-1)
}

// Outcome is the answer state of one question within a session.
type Outcome int

const (
	Unanswered Outcome = iota
	AnsweredCorrect
	AnsweredIncorrect
	Skipped
)

// ErrAlreadyAnswered is returned when a question is answered twice.
var ErrAlreadyAnswered = errors.New("question already answered")

// Session is the ordered sequence of questions for one run, plus its
// answer progress. Questions advance monotonically; quitting marks every
// remaining question skipped and is terminal.
type Session struct {
	Category  string
	Questions []*Question

	engine   *Engine
	outcomes []Outcome
	current  int
	quit     bool
}

// NewSession assembles a full session: resolve the category, sample
// cards and build questions. categoryName may be empty to pick one at
// random. Fatal setup conditions (ErrNoCategories, ErrNoPools) are
// returned as errors; malformed cards are dropped by the builder.
func (e *Engine) NewSession(categoryName string, questionCount, choicesCount int) (*Session, error) {
	if questionCount < 1 {
		return nil, fmt.Errorf("question count must be positive, got %d", questionCount)
	}
	if choicesCount < 2 {
		return nil, fmt.Errorf("choices count must be at least 2, got %d", choicesCount)
	}

	category, err := e.PickCategory(categoryName)
	if err != nil {
		return nil, err
	}
	cards, err := e.SelectCards(category, questionCount)
	if err != nil {
		return nil, err
	}
	questions := e.BuildQuestions(cards, choicesCount)

	return &Session{
		Category:  category.Name,
		Questions: questions,
		engine:    e,
		outcomes:  make([]Outcome, len(questions)),
	}, nil
}

// Current returns the question waiting for an answer, or nil when the
// session is over.
func (s *Session) Current() *Question {
	if s.Done() {
		return nil
	}
	return s.Questions[s.current]
}

// CurrentIndex returns the zero-based index of the current question.
func (s *Session) CurrentIndex() int { return s.current }

// Outcome returns the recorded outcome for question i.
func (s *Session) Outcome(i int) Outcome { return s.outcomes[i] }

// Done reports whether no questions remain to answer.
func (s *Session) Done() bool {
	return s.quit || s.current >= len(s.Questions)
}

// Answer records the outcome for the current question, adjusts the
// card's score (increment on correct, decrement otherwise) and advances.
// It returns the new score. A store write failure propagates and leaves
// the session position unchanged.
func (s *Session) Answer(correct bool) (int, error) {
	if s.Done() {
		return 0, ErrAlreadyAnswered
	}
	q := s.Questions[s.current]

	var score int
	var err error
	if correct {
		score, err = s.engine.IncrementScore(q)
	} else {
		score, err = s.engine.DecrementScore(q)
	}
	if err != nil {
		return 0, err
	}

	if correct {
		s.outcomes[s.current] = AnsweredCorrect
	} else {
		s.outcomes[s.current] = AnsweredIncorrect
	}
	s.current++
	return score, nil
}

// Quit abandons the session; remaining questions are marked skipped and
// never scored.
func (s *Session) Quit() {
	for i := s.current; i < len(s.Questions); i++ {
		s.outcomes[i] = Skipped
	}
	s.quit = true
}

// CorrectCount returns how many questions were answered correctly.
func (s *Session) CorrectCount() int {
	n := 0
	for _, o := range s.outcomes {
		if o == AnsweredCorrect {
			n++
		}
	}
	return n
}
