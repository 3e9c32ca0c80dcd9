package gift

import (
	"cadoz/internal/catalog"
	"cadoz/internal/platform"
)

// Step is one stage of the gift-composition sequence.
type Step string

const (
	StepChocolates  Step = "chocolates"
	StepCandies     Step = "candies"
	StepBox         Step = "box"
	StepDecorations Step = "decorations"
	StepWrap        Step = "wrap"
	StepSummary     Step = "summary"
)

var sequence = []Step{StepChocolates, StepCandies, StepBox, StepDecorations, StepWrap, StepSummary}

var stepCategories = map[Step]catalog.Category{
	StepChocolates:  catalog.CategoryChocolates,
	StepCandies:     catalog.CategoryCandies,
	StepBox:         catalog.CategoryBoxes,
	StepDecorations: catalog.CategoryDecorations,
	StepWrap:        catalog.CategoryWraps,
}

var stepTitles = map[Step]string{
	StepChocolates:  "Choose your favourite chocolates",
	StepCandies:     "Pick some candies",
	StepBox:         "Choose a gift box",
	StepDecorations: "Add decorations",
	StepWrap:        "Choose the wrapping",
	StepSummary:     "Review your order",
}

// Steps returns the fixed step sequence in order.
func Steps() []Step {
	return append([]Step(nil), sequence...)
}

// FirstStep is the initial step of every new gift.
func FirstStep() Step { return sequence[0] }

// LastStep is the terminal summary step.
func LastStep() Step { return sequence[len(sequence)-1] }

// ParseStep validates a step name.
func ParseStep(name string) (Step, error) {
	s := Step(name)
	if !s.Valid() {
		return "", platform.NewInvalidArgumentf("%s: %q", ErrMsgUnknownStep, name)
	}
	return s, nil
}

// Index is the position of s in the sequence, or -1.
func (s Step) Index() int {
	for i, step := range sequence {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s belongs to the sequence.
func (s Step) Valid() bool { return s.Index() >= 0 }

// Next moves forward one step, staying put on the last step.
// A step outside the sequence restarts at the first step.
func (s Step) Next() Step {
	i := s.Index()
	if i < 0 {
		return FirstStep()
	}
	if i+1 >= len(sequence) {
		return sequence[i]
	}
	return sequence[i+1]
}

// Prev moves back one step, staying put on the first step.
func (s Step) Prev() Step {
	i := s.Index()
	if i <= 0 {
		return FirstStep()
	}
	return sequence[i-1]
}

// Category is the catalogue category a content step offers.
// The summary step has none.
func (s Step) Category() (catalog.Category, bool) {
	c, ok := stepCategories[s]
	return c, ok
}

// SingleSelect reports whether the step picks at most one option.
func (s Step) SingleSelect() bool { return s == StepBox || s == StepWrap }

// Title is the heading shown for the step.
func (s Step) Title() string { return stepTitles[s] }
