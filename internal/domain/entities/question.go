package entities

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question represents a single multiple-choice question.
// It is built once at bank load time and never mutated afterwards.
type Question struct {
	Text         string   // question text
	Options      []string // exactly OptionCount option texts, in display order
	CorrectIndex int      // index of the correct option in Options (0-3)
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	return q.Options[q.CorrectIndex]
}
