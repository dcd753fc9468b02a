package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/example/flashquiz/internal/quiz"
)

// Runner drives a quiz session on a terminal: it renders each question,
// reads an answer line and applies the scoring through the engine.
type Runner struct {
	engine *quiz.Engine
	in     *bufio.Scanner
	out    io.Writer
}

// NewRunner creates a terminal runner reading answers from in and
// writing to out.
func NewRunner(engine *quiz.Engine, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		engine: engine,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run plays the session to completion or until the user quits.
func (r *Runner) Run(session *quiz.Session) error {
	total := len(session.Questions)
	fmt.Fprintf(r.out, "==========> %s (%d questions) <==========\n", session.Category, total)

	quit := false
	for !session.Done() {
		question := session.Current()
		idx := session.CurrentIndex()

		leading := fmt.Sprintf("%d/%d. ", idx+1, total)
		fmt.Fprintf(r.out, "%s%s (%d)\n", leading, question.Front, question.Score)

		options, correct := r.engine.RandomizeOptions(question)
		indent := strings.Repeat(" ", len(leading))
		for i, option := range options {
			fmt.Fprintf(r.out, "%s%d. %s\n", indent, i+1, renderOption(option))
		}

		fmt.Fprintf(r.out, "Answer (1-%d, q to quit prematurely and anything else if you don't know): ", len(options))
		if !r.in.Scan() {
			session.Quit()
			quit = true
			break
		}
		choice := ParseChoice(strings.TrimSpace(r.in.Text()), len(options))

		switch choice.Kind {
		case ChoiceQuit:
			fmt.Fprintln(r.out, "Quitting early!")
			session.Quit()
			quit = true
		case ChoiceOption:
			if err := r.answer(session, choice.Option == correct, correct); err != nil {
				return err
			}
		case ChoiceDontKnow:
			if err := r.answer(session, false, correct); err != nil {
				return err
			}
		}
	}

	if !quit {
		fmt.Fprintf(r.out, "Done! %d/%d correct.\n", session.CorrectCount(), total)
	}
	return r.in.Err()
}

func (r *Runner) answer(session *quiz.Session, correct bool, correctIndex int) error {
	score, err := session.Answer(correct)
	if err != nil {
		return err
	}
	if correct {
		fmt.Fprintf(r.out, "Correct!: %d -> %d\n", score-1, score)
	} else {
		fmt.Fprintf(r.out, "Incorrect!: %d -> %d\n", score+1, score)
		fmt.Fprintf(r.out, "The correct choice was %d.\n", correctIndex+1)
	}
	return nil
}

// renderOption prints the option's text, appending the image path so the
// user can open it; inline image display is out of scope here.
func renderOption(option quiz.OptionPair) string {
	switch {
	case option.HasText() && option.HasImage():
		return fmt.Sprintf("%s [image: %s]", option.Text, option.Image)
	case option.HasImage():
		return fmt.Sprintf("[image: %s]", option.Image)
	default:
		return option.Text
	}
}
