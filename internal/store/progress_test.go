package store_test

import (
	"context"
	"testing"

	"github.com/daycards/backend/internal/grader"
	"github.com/daycards/backend/internal/store"
)

func TestProgressStore_LoadDefault(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			p, err := store.NewProgressStore(b, store.MaxDay).Load(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Day != 1 || len(p.Answered) != 0 {
				t.Errorf("expected default progress, got %+v", p)
			}
		})
	}
}

func TestProgressStore_RecordLastWriteWins(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ps := store.NewProgressStore(b, store.MaxDay)

			for i := 0; i < 3; i++ {
				if err := ps.Record(ctx, 5, grader.OutcomeWrong); err != nil {
					t.Fatalf("record: %v", err)
				}
			}
			p, _ := ps.Load(ctx)
			if len(p.Answered) != 1 || p.Answered["5"] != grader.OutcomeWrong {
				t.Errorf("expected idempotent record, got %v", p.Answered)
			}

			if err := ps.Record(ctx, 5, grader.OutcomeCorrect); err != nil {
				t.Fatalf("record: %v", err)
			}
			p, _ = ps.Load(ctx)
			if p.Answered["5"] != grader.OutcomeCorrect {
				t.Errorf("expected last write to win, got %v", p.Answered["5"])
			}
		})
	}
}

func TestProgressStore_RecordInvalidOutcome(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ps := store.NewProgressStore(b, store.MaxDay)
			if err := ps.Record(context.Background(), 1, "maybe"); err == nil {
				t.Error("expected error for invalid outcome")
			}
		})
	}
}

func TestProgressStore_AdvanceDayClamps(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ps := store.NewProgressStore(b, store.MaxDay)

			var day int
			var err error
			for i := 0; i < 10; i++ {
				if day, err = ps.AdvanceDay(ctx); err != nil {
					t.Fatalf("advance: %v", err)
				}
			}
			if day != 7 {
				t.Errorf("expected day to stop at 7, got %d", day)
			}
		})
	}
}

func TestProgressStore_Reset(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ps := store.NewProgressStore(b, store.MaxDay)
			ps.Record(ctx, 1, grader.OutcomeCorrect)
			ps.AdvanceDay(ctx)

			if err := ps.Reset(ctx); err != nil {
				t.Fatalf("reset: %v", err)
			}
			p, _ := ps.Load(ctx)
			if p.Day != 1 || len(p.Answered) != 0 {
				t.Errorf("expected {day:1 answered:{}}, got %+v", p)
			}
		})
	}
}

func TestProgressStore_ClearAnswered(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ps := store.NewProgressStore(b, store.MaxDay)
			for id := 1; id <= 4; id++ {
				ps.Record(ctx, id, grader.OutcomeCorrect)
			}

			if err := ps.ClearAnswered(ctx, []int{2, 3, 9}); err != nil {
				t.Fatalf("clear: %v", err)
			}
			p, _ := ps.Load(ctx)
			ids := p.AnsweredIDs()
			if len(ids) != 2 || !ids[1] || !ids[4] {
				t.Errorf("expected ids 1 and 4 to remain, got %v", ids)
			}
		})
	}
}
