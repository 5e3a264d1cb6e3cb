package store_test

import (
	"context"
	"testing"

	practicesession "github.com/daycards/backend/internal/domain/practice_session"
	"github.com/daycards/backend/internal/store"
)

func TestOrderStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			orders := store.NewOrderStore(b)

			if _, ok, err := orders.Load(ctx, "day1"); err != nil || ok {
				t.Fatalf("expected no saved state, got ok=%v err=%v", ok, err)
			}

			want := practicesession.State{Order: []int{2, 0, 1}, Cursor: 1, CorrectCount: 1, Submitted: true}
			if err := orders.Save(ctx, "day1", want); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := orders.Save(ctx, "day2", practicesession.State{Order: []int{0}}); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, ok, err := orders.Load(ctx, "day1")
			if err != nil || !ok {
				t.Fatalf("load: ok=%v err=%v", ok, err)
			}
			if got.Cursor != 1 || got.CorrectCount != 1 || !got.Submitted || len(got.Order) != 3 || got.Order[0] != 2 {
				t.Errorf("unexpected state: %+v", got)
			}

			if err := orders.Clear(ctx, "day1"); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, ok, _ := orders.Load(ctx, "day1"); ok {
				t.Error("expected day1 state to be cleared")
			}
			if _, ok, _ := orders.Load(ctx, "day2"); !ok {
				t.Error("expected day2 state to survive")
			}
		})
	}
}

func TestRoundStore(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rs := store.NewRoundStore(b)
			rs.Increment(ctx, "day1")
			n, err := rs.Increment(ctx, "day1")
			if err != nil || n != 2 {
				t.Fatalf("expected 2 rounds, got %d, %v", n, err)
			}

			if err := rs.Reset(ctx, "day1"); err != nil {
				t.Fatalf("reset: %v", err)
			}
			if n, _ := rs.Get(ctx, "day1"); n != 0 {
				t.Errorf("expected 0 rounds after reset, got %d", n)
			}
		})
	}
}
