package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/daycards/backend/internal/grader"
)

// MaxDay is the last study day.
const MaxDay = 7

// Progress is the persisted progress document.
type Progress struct {
	Day      int                       `json:"day"`
	Answered map[string]grader.Outcome `json:"answered"`
}

// DefaultProgress is what Load returns before anything was saved.
func DefaultProgress() Progress {
	return Progress{Day: 1, Answered: map[string]grader.Outcome{}}
}

// AnsweredIDs returns the question ids with a recorded outcome.
func (p Progress) AnsweredIDs() map[int]bool {
	ids := make(map[int]bool, len(p.Answered))
	for k := range p.Answered {
		if id, err := strconv.Atoi(k); err == nil {
			ids[id] = true
		}
	}
	return ids
}

// ProgressStore tracks the current day and per-question outcomes. Every
// call re-reads the document.
type ProgressStore struct {
	backend Backend
	maxDay  int
}

func NewProgressStore(b Backend, maxDay int) *ProgressStore {
	if maxDay <= 0 {
		maxDay = MaxDay
	}
	return &ProgressStore{backend: b, maxDay: maxDay}
}

// MaxDay returns the day AdvanceDay stops at.
func (s *ProgressStore) MaxDay() int { return s.maxDay }

// Load returns the saved progress, or the default when none exists.
func (s *ProgressStore) Load(ctx context.Context) (Progress, error) {
	var p Progress
	err := s.backend.ReadDocument(ctx, DocProgress, &p)
	if errors.Is(err, ErrNotFound) {
		return DefaultProgress(), nil
	}
	if err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if p.Day < 1 {
		p.Day = 1
	}
	if p.Answered == nil {
		p.Answered = map[string]grader.Outcome{}
	}
	return p, nil
}

// Save replaces the whole progress document.
func (s *ProgressStore) Save(ctx context.Context, p Progress) error {
	if p.Answered == nil {
		p.Answered = map[string]grader.Outcome{}
	}
	if err := s.backend.WriteDocument(ctx, DocProgress, p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Record sets the outcome of a question; the last write wins.
func (s *ProgressStore) Record(ctx context.Context, questionID int, outcome grader.Outcome) error {
	if !outcome.Valid() {
		return fmt.Errorf("record progress: invalid outcome %q", outcome)
	}
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	p.Answered[strconv.Itoa(questionID)] = outcome
	return s.Save(ctx, p)
}

// AdvanceDay moves to the next day, stopping at the last one.
func (s *ProgressStore) AdvanceDay(ctx context.Context) (int, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	p.Day = min(p.Day+1, s.maxDay)
	return p.Day, s.Save(ctx, p)
}

// ClearAnswered removes the outcomes of the given questions.
func (s *ProgressStore) ClearAnswered(ctx context.Context, questionIDs []int) error {
	p, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for _, id := range questionIDs {
		delete(p.Answered, strconv.Itoa(id))
	}
	return s.Save(ctx, p)
}

// Reset returns to day 1 with nothing answered.
func (s *ProgressStore) Reset(ctx context.Context) error {
	return s.Save(ctx, DefaultProgress())
}
