package practicesession

import (
	"fmt"
	"math/rand"

	"github.com/daycards/backend/internal/grader"
)

// Mode selects how a round presents its items. The bookkeeping semantics
// are shared; modes differ only in ordering and in which events they accept.
type Mode string

const (
	ModeFlashcard Mode = "flashcard" // one at a time, shuffled order
	ModeRandom    Mode = "random"    // one at a time, random among unanswered
	ModeQuiz      Mode = "quiz"      // whole batch submitted at once
	ModeReview    Mode = "review"    // read-only walk, nothing is graded
	ModeMistakes  Mode = "mistakes"  // replay of previously missed questions
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFlashcard, ModeRandom, ModeQuiz, ModeReview, ModeMistakes:
		return m, nil
	case "":
		return ModeFlashcard, nil
	}
	return "", fmt.Errorf("unknown practice mode %q", s)
}

// Config holds the knobs of one controller.
type Config struct {
	Mode   Mode
	Grader grader.Grader // nil = strict
	// TrackProgress emits RecordOutcome and ClearAnswered effects.
	// Mistake replay leaves the progress document alone.
	TrackProgress bool
	Rand          *rand.Rand // nil = package-level source
}

// DefaultConfig returns a strict, progress-tracking flashcard config.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeFlashcard,
		Grader:        grader.Strict{},
		TrackProgress: true,
	}
}
