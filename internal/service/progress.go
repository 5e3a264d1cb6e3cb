package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	practicesession "github.com/daycards/backend/internal/domain/practice_session"
	"github.com/daycards/backend/internal/domain/question"
	"github.com/daycards/backend/internal/store"
)

// ProgressView summarises where the learner stands.
type ProgressView struct {
	Day           int  `json:"day"`
	MaxDay        int  `json:"max_day"`
	Days          int  `json:"days"`
	BatchSize     int  `json:"batch_size"`
	AnsweredToday int  `json:"answered_today"`
	Remaining     int  `json:"remaining"`
	TotalAnswered int  `json:"total_answered"`
	Correct       int  `json:"correct"`
	Partial       int  `json:"partial"`
	Wrong         int  `json:"wrong"`
	Complete      bool `json:"complete"`
	Rounds        int  `json:"rounds"`
	Mistakes      int  `json:"mistakes"`
}

// MistakeEntry is one mistake counter resolved against the bank. Question
// is nil when the key no longer matches a loaded question.
type MistakeEntry struct {
	Key      string             `json:"key"`
	Count    int                `json:"count"`
	Day      int                `json:"day,omitempty"`
	Index    int                `json:"index"`
	Question *question.Question `json:"question,omitempty"`
}

// ResetResult reports what a day reset removed.
type ResetResult struct {
	Day             int `json:"day"`
	AnswersCleared  int `json:"answers_cleared"`
	MistakesCleared int `json:"mistakes_cleared"`
}

// DayQuestions returns the batch of a day, answers included.
func (s *PracticeService) DayQuestions(day int) ([]question.Question, error) {
	if day < 1 || day > s.bank.Days() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return s.bank.Batch(day), nil
}

// Progress returns the statistics of the current day.
func (s *PracticeService) Progress(ctx context.Context) (*ProgressView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress(ctx)
}

func (s *PracticeService) progress(ctx context.Context) (*ProgressView, error) {
	p, err := s.stores.Progress.Load(ctx)
	if err != nil {
		return nil, err
	}
	rounds, err := s.stores.Rounds.Get(ctx, SessionKey(practicesession.ModeFlashcard, []int{p.Day}))
	if err != nil {
		return nil, err
	}
	counts, err := s.stores.Mistakes.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats := question.ComputeStats(s.bank, p.Day, p.Answered)
	v := &ProgressView{
		Day:           p.Day,
		MaxDay:        s.stores.Progress.MaxDay(),
		Days:          s.bank.Days(),
		BatchSize:     stats.BatchSize,
		AnsweredToday: stats.AnsweredToday,
		Remaining:     stats.Remaining(),
		TotalAnswered: stats.TotalAnswered,
		Correct:       stats.Correct,
		Partial:       stats.Partial,
		Wrong:         stats.Wrong,
		Complete:      stats.Complete(),
		Rounds:        rounds,
	}
	for key := range counts {
		if day, _, ok := s.resolveKey(key); ok && day == p.Day {
			v.Mistakes++
		}
	}
	return v, nil
}

// AdvanceDay moves to the next day. Unless forced it refuses while the
// current day still has unanswered questions.
func (s *PracticeService) AdvanceDay(ctx context.Context, force bool) (*ProgressView, *practicesession.Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.progress(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !force && !v.Complete {
		return v, practicesession.NewWarning(practicesession.WarnDayIncomplete), nil
	}

	day, err := s.stores.Progress.AdvanceDay(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("advanced day", "from", v.Day, "to", day, "forced", force && !v.Complete)

	v, err = s.progress(ctx)
	return v, nil, err
}

// ResetProgress returns to day 1 with nothing answered. Mistakes and round
// states are kept.
func (s *PracticeService) ResetProgress(ctx context.Context) (*ProgressView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stores.Progress.Reset(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("progress reset")
	return s.progress(ctx)
}

// ResetDay forgets everything recorded for one day batch: its answered
// outcomes, the round state and round counter of every single-day session,
// and, when asked, its mistake counters.
func (s *PracticeService) ResetDay(ctx context.Context, day int, clearMistakes bool) (*ResetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if day < 1 || day > max(s.stores.Progress.MaxDay(), s.bank.Days()) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}

	p, err := s.stores.Progress.Load(ctx)
	if err != nil {
		return nil, err
	}
	res := &ResetResult{Day: day}
	var ids []int
	for _, q := range s.bank.Batch(day) {
		if _, ok := p.Answered[strconv.Itoa(q.ID)]; ok {
			res.AnswersCleared++
		}
		ids = append(ids, q.ID)
	}
	if err := s.stores.Progress.ClearAnswered(ctx, ids); err != nil {
		return nil, err
	}

	modes := []practicesession.Mode{
		practicesession.ModeFlashcard,
		practicesession.ModeRandom,
		practicesession.ModeQuiz,
		practicesession.ModeReview,
	}
	if clearMistakes {
		modes = append(modes, practicesession.ModeMistakes)
		n, err := s.clearMistakes(ctx, day)
		if err != nil {
			return nil, err
		}
		res.MistakesCleared = n
	}
	for _, m := range modes {
		key := SessionKey(m, []int{day})
		if err := s.stores.Orders.Clear(ctx, key); err != nil {
			return nil, err
		}
		if err := s.stores.Rounds.Reset(ctx, key); err != nil {
			return nil, err
		}
	}

	s.logger.Info("day reset",
		"day", day,
		"answers_cleared", res.AnswersCleared,
		"mistakes_cleared", res.MistakesCleared,
	)
	return res, nil
}

// Mistakes lists mistake counters, most frequent first. Day 0 lists every
// day.
func (s *PracticeService) Mistakes(ctx context.Context, day int) ([]MistakeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var days []int
	if day != 0 {
		days = []int{day}
	}
	return s.mistakeEntries(ctx, days)
}

// ClearMistakes removes the counters of one day, or all of them for day 0.
func (s *PracticeService) ClearMistakes(ctx context.Context, day int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.clearMistakes(ctx, day)
	if err != nil {
		return 0, err
	}
	s.logger.Info("mistakes cleared", "day", day, "count", n)
	return n, nil
}

func (s *PracticeService) clearMistakes(ctx context.Context, day int) (int, error) {
	if day == 0 {
		return s.stores.Mistakes.ClearAll(ctx)
	}
	return s.stores.Mistakes.Clear(ctx, func(key string) bool {
		d, _, ok := s.resolveKey(key)
		return ok && d == day
	})
}

// mistakeEntries resolves the counters belonging to days (all when empty).
// Keys that match no question are listed with a nil Question when every
// day is requested and dropped otherwise.
func (s *PracticeService) mistakeEntries(ctx context.Context, days []int) ([]MistakeEntry, error) {
	counts, err := s.stores.Mistakes.Load(ctx)
	if err != nil {
		return nil, err
	}

	type position struct{ day, idx int }
	var entries []MistakeEntry
	resolved := make(map[position]int)
	for key, count := range counts {
		if count <= 0 {
			continue
		}
		day, idx, ok := s.resolveKey(key)
		if len(days) > 0 && (!ok || !slices.Contains(days, day)) {
			continue
		}
		if !ok {
			s.logger.Warn("unresolved mistake key", "key", key)
			entries = append(entries, MistakeEntry{Key: key, Count: count})
			continue
		}
		// A bare id and its day key name the same question.
		pos := position{day, idx}
		if i, seen := resolved[pos]; seen {
			entries[i].Count += count
			continue
		}
		q, _ := s.bank.At(day, idx)
		resolved[pos] = len(entries)
		entries = append(entries, MistakeEntry{Key: store.DayKey(day, idx), Count: count, Day: day, Index: idx, Question: &q})
	}

	slices.SortFunc(entries, func(a, b MistakeEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return entries, nil
}

// resolveKey maps a mistake key to its day batch position. Keys are either
// "day<N>_q<idx>" or a bare question id.
func (s *PracticeService) resolveKey(key string) (day, idx int, ok bool) {
	if day, idx, ok := store.ParseDayKey(key); ok {
		if _, found := s.bank.At(day, idx); found {
			return day, idx, true
		}
		return 0, 0, false
	}
	id, err := strconv.Atoi(key)
	if err != nil {
		return 0, 0, false
	}
	return s.bank.Locate(id)
}
