package quiz

import "strings"

// OptionPair is one renderable face of a card: a text and an image path,
// either of which may be absent. It is used for question fronts, correct
// answers and distractors alike.
type OptionPair struct {
	Text  string
	Image string
}

// NewOptionPair builds an OptionPair. An empty string means the value
// is absent.
func NewOptionPair(text, image string) OptionPair {
	return OptionPair{Text: text, Image: image}
}

// HasText reports whether the pair carries a text value.
func (o OptionPair) HasText() bool { return o.Text != "" }

// HasImage reports whether the pair carries an image path.
func (o OptionPair) HasImage() bool { return o.Image != "" }

// String renders the pair as "(text, path)", "(text)", "(path)" or "()".
func (o OptionPair) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(o.Text)
	if o.HasText() && o.HasImage() {
		b.WriteString(", ")
	}
	b.WriteString(o.Image)
	b.WriteString(")")
	return b.String()
}
