package cli

import "strconv"

// ChoiceKind classifies one line of user input.
type ChoiceKind int

const (
	// ChoiceOption means the user picked a numbered option.
	ChoiceOption ChoiceKind = iota
	// ChoiceDontKnow means the input was not a usable option number;
	// it scores as an incorrect answer.
	ChoiceDontKnow
	// ChoiceQuit ends the session early.
	ChoiceQuit
)

// Choice is a parsed answer line.
type Choice struct {
	Kind   ChoiceKind
	Option int // zero-based option index, set for ChoiceOption
}

// ParseChoice interprets an answer line: "q" quits, a number from 1 to
// optionCount selects that option, everything else counts as "don't
// know". Out-of-range numbers also fall through to "don't know".
func ParseChoice(input string, optionCount int) Choice {
	if input == "q" {
		return Choice{Kind: ChoiceQuit}
	}
	num, err := strconv.Atoi(input)
	if err != nil || num < 1 || num > optionCount {
		return Choice{Kind: ChoiceDontKnow}
	}
	return Choice{Kind: ChoiceOption, Option: num - 1}
}
