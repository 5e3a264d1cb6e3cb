package store

import (
	"context"
	"errors"
	"fmt"

	practicesession "github.com/daycards/backend/internal/domain/practice_session"
)

// OrderStore persists the shuffled order and cursor of in-progress rounds,
// keyed by session key, so a round survives a restart.
type OrderStore struct {
	backend Backend
}

func NewOrderStore(b Backend) *OrderStore {
	return &OrderStore{backend: b}
}

func (s *OrderStore) loadAll(ctx context.Context) (map[string]practicesession.State, error) {
	all := map[string]practicesession.State{}
	err := s.backend.ReadDocument(ctx, DocOrders, &all)
	if errors.Is(err, ErrNotFound) {
		return map[string]practicesession.State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load order state: %w", err)
	}
	if all == nil {
		all = map[string]practicesession.State{}
	}
	return all, nil
}

func (s *OrderStore) saveAll(ctx context.Context, all map[string]practicesession.State) error {
	if err := s.backend.WriteDocument(ctx, DocOrders, all); err != nil {
		return fmt.Errorf("save order state: %w", err)
	}
	return nil
}

// Load returns the saved state of key; ok is false when none exists.
func (s *OrderStore) Load(ctx context.Context, key string) (practicesession.State, bool, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return practicesession.State{}, false, err
	}
	st, ok := all[key]
	return st, ok, nil
}

func (s *OrderStore) Save(ctx context.Context, key string, st practicesession.State) error {
	all, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	all[key] = st
	return s.saveAll(ctx, all)
}

func (s *OrderStore) Clear(ctx context.Context, key string) error {
	all, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[key]; !ok {
		return nil
	}
	delete(all, key)
	return s.saveAll(ctx, all)
}
