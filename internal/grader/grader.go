package grader

import (
	"fmt"
	"strings"
)

// Outcome is the tri-state result of grading one submission.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomePartial Outcome = "partial"
	OutcomeWrong   Outcome = "wrong"
)

// Valid reports whether o is one of the known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeCorrect, OutcomePartial, OutcomeWrong:
		return true
	}
	return false
}

// Policy selects how a multiple-choice selection is graded.
type Policy string

const (
	PolicyStrict  Policy = "strict"
	PolicyPartial Policy = "partial"
)

// Grader grades a user's selection against the expected answer letters.
// Implementations must be deterministic and free of side effects.
type Grader interface {
	Grade(correct, chosen []string) Outcome
	Policy() Policy
}

// New returns the grader for the given policy.
func New(policy Policy) (Grader, error) {
	switch policy {
	case PolicyStrict, "":
		return Strict{}, nil
	case PolicyPartial:
		return PartialCredit{}, nil
	default:
		return nil, fmt.Errorf("grader: unknown policy %q", policy)
	}
}

// Strict counts a selection as correct only when it matches the answer set
// exactly. Extra and missing letters are both wrong.
type Strict struct{}

var _ Grader = Strict{}

func (Strict) Grade(correct, chosen []string) Outcome {
	if sameSet(letterSet(correct), letterSet(chosen)) {
		return OutcomeCorrect
	}
	return OutcomeWrong
}

func (Strict) Policy() Policy { return PolicyStrict }

// PartialCredit awards "partial" when the selection overlaps the answer set
// without matching it.
type PartialCredit struct{}

var _ Grader = PartialCredit{}

func (PartialCredit) Grade(correct, chosen []string) Outcome {
	want := letterSet(correct)
	got := letterSet(chosen)
	if sameSet(want, got) {
		return OutcomeCorrect
	}
	for l := range got {
		if want[l] {
			return OutcomePartial
		}
	}
	return OutcomeWrong
}

func (PartialCredit) Policy() Policy { return PolicyPartial }

// NormalizeLetter trims and upper-cases an option letter.
func NormalizeLetter(l string) string {
	return strings.ToUpper(strings.TrimSpace(l))
}

func letterSet(letters []string) map[string]bool {
	set := make(map[string]bool, len(letters))
	for _, l := range letters {
		if n := NormalizeLetter(l); n != "" {
			set[n] = true
		}
	}
	return set
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
