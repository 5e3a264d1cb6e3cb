package store

import (
	"context"
	"errors"
	"fmt"
)

// RoundStore counts completed rounds per session key.
type RoundStore struct {
	backend Backend
}

func NewRoundStore(b Backend) *RoundStore {
	return &RoundStore{backend: b}
}

func (s *RoundStore) Load(ctx context.Context) (map[string]int, error) {
	rounds := map[string]int{}
	err := s.backend.ReadDocument(ctx, DocRounds, &rounds)
	if errors.Is(err, ErrNotFound) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	if rounds == nil {
		rounds = map[string]int{}
	}
	return rounds, nil
}

// Get returns the completed rounds of key.
func (s *RoundStore) Get(ctx context.Context, key string) (int, error) {
	rounds, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return rounds[key], nil
}

func (s *RoundStore) Increment(ctx context.Context, key string) (int, error) {
	rounds, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	rounds[key]++
	if err := s.backend.WriteDocument(ctx, DocRounds, rounds); err != nil {
		return 0, fmt.Errorf("save rounds: %w", err)
	}
	return rounds[key], nil
}

func (s *RoundStore) Reset(ctx context.Context, key string) error {
	rounds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	rounds[key] = 0
	if err := s.backend.WriteDocument(ctx, DocRounds, rounds); err != nil {
		return fmt.Errorf("save rounds: %w", err)
	}
	return nil
}
