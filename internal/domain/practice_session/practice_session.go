package practicesession

import (
	"math"
	"math/rand"

	"github.com/daycards/backend/internal/domain/question"
)

// Phase is derived from State; it is never stored.
type Phase string

const (
	PhasePresenting  Phase = "presenting"
	PhaseAwaitingAck Phase = "awaiting_ack"
	PhaseComplete    Phase = "round_complete"
)

// Item is one question of a round together with the key its mistakes are
// counted under.
type Item struct {
	Question   question.Question
	MistakeKey string
}

// State is everything a round needs to survive a restart. It is passed into
// and returned from Controller.Step; the controller keeps no copy.
type State struct {
	Order        []int `json:"order"`
	Cursor       int   `json:"index"`
	CorrectCount int   `json:"correct_count"`
	Submitted    bool  `json:"submitted,omitempty"`
	// Skipped counts items left out because they were already answered
	// when the round reached them (random mode only).
	Skipped int `json:"skipped,omitempty"`
}

// Phase reports where the round is in its state machine.
func (s State) Phase() Phase {
	switch {
	case s.Cursor >= len(s.Order):
		return PhaseComplete
	case s.Submitted:
		return PhaseAwaitingAck
	default:
		return PhasePresenting
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	c.Order = append([]int(nil), s.Order...)
	return c
}

// Summary is the score of a round.
type Summary struct {
	Total    int
	Correct  int
	Accuracy float64 // percent, one decimal
}

// Summarize computes the round score of s.
func Summarize(s State) Summary {
	sum := Summary{Total: len(s.Order) - s.Skipped, Correct: s.CorrectCount}
	if sum.Total > 0 {
		sum.Accuracy = math.Round(float64(sum.Correct)/float64(sum.Total)*1000) / 10
	}
	return sum
}

// Permutation returns 0..n-1 in random order.
func Permutation(n int, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	swap := func(i, j int) { order[i], order[j] = order[j], order[i] }
	if rng != nil {
		rng.Shuffle(n, swap)
	} else {
		rand.Shuffle(n, swap)
	}
	return order
}

// Identity returns 0..n-1 in order.
func Identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// IsPermutation reports whether order holds every index in [0,n) once.
func IsPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
