package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DayKey is the mistake key of position idx within day's batch.
func DayKey(day, idx int) string {
	return fmt.Sprintf("day%d_q%d", day, idx)
}

// ParseDayKey splits a day<N>_q<idx> key.
func ParseDayKey(key string) (day, idx int, ok bool) {
	rest, found := strings.CutPrefix(key, "day")
	if !found {
		return 0, 0, false
	}
	d, i, found := strings.Cut(rest, "_q")
	if !found {
		return 0, 0, false
	}
	day, err := strconv.Atoi(d)
	if err != nil || day < 1 {
		return 0, 0, false
	}
	idx, err = strconv.Atoi(i)
	if err != nil || idx < 0 {
		return 0, 0, false
	}
	return day, idx, true
}

// DayPrefix matches every day-qualified key of day.
func DayPrefix(day int) func(string) bool {
	prefix := fmt.Sprintf("day%d_q", day)
	return func(key string) bool { return strings.HasPrefix(key, prefix) }
}

// MistakeStore counts wrong answers per key. Counts only grow; Clear is
// the sole way to remove them.
type MistakeStore struct {
	backend Backend
	doc     string
}

// NewMistakeStore uses the default mistakes document.
func NewMistakeStore(b Backend) *MistakeStore {
	return &MistakeStore{backend: b, doc: DocMistakes}
}

// Load returns all counters; an absent document is an empty map.
func (s *MistakeStore) Load(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	err := s.backend.ReadDocument(ctx, s.doc, &counts)
	if errors.Is(err, ErrNotFound) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load mistakes: %w", err)
	}
	if counts == nil {
		counts = map[string]int{}
	}
	return counts, nil
}

func (s *MistakeStore) save(ctx context.Context, counts map[string]int) error {
	if err := s.backend.WriteDocument(ctx, s.doc, counts); err != nil {
		return fmt.Errorf("save mistakes: %w", err)
	}
	return nil
}

// Increment adds one to key and returns the new count.
func (s *MistakeStore) Increment(ctx context.Context, key string) (int, error) {
	if key == "" {
		return 0, errors.New("increment mistake: empty key")
	}
	counts, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	counts[key]++
	return counts[key], s.save(ctx, counts)
}

// Clear removes every key matching pred and returns how many were removed.
func (s *MistakeStore) Clear(ctx context.Context, pred func(key string) bool) (int, error) {
	counts, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for k := range counts {
		if pred(k) {
			delete(counts, k)
			removed++
		}
	}
	return removed, s.save(ctx, counts)
}

// ClearDay removes the day-qualified keys of day.
func (s *MistakeStore) ClearDay(ctx context.Context, day int) (int, error) {
	return s.Clear(ctx, DayPrefix(day))
}

// ClearAll empties the document.
func (s *MistakeStore) ClearAll(ctx context.Context) (int, error) {
	return s.Clear(ctx, func(string) bool { return true })
}
