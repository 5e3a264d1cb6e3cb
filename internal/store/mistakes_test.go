package store_test

import (
	"context"
	"testing"

	"github.com/daycards/backend/internal/store"
)

func TestMistakeStore_IncrementKTimes(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ms := store.NewMistakeStore(b)
			key := store.DayKey(2, 17)

			for i := 0; i < 4; i++ {
				if _, err := ms.Increment(ctx, key); err != nil {
					t.Fatalf("increment: %v", err)
				}
			}
			n, err := ms.Increment(ctx, key)
			if err != nil {
				t.Fatalf("increment: %v", err)
			}
			if n != 5 {
				t.Errorf("expected count 5, got %d", n)
			}

			counts, _ := ms.Load(ctx)
			if counts["day2_q17"] != 5 {
				t.Errorf("expected persisted count 5, got %v", counts)
			}
		})
	}
}

func TestMistakeStore_IncrementEmptyKey(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.NewMistakeStore(b).Increment(context.Background(), ""); err == nil {
				t.Error("expected error for empty key")
			}
		})
	}
}

func TestMistakeStore_ClearDay(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ms := store.NewMistakeStore(b)
			for _, k := range []string{"day1_q0", "day1_q12", "day12_q1", "day2_q0", "7"} {
				ms.Increment(ctx, k)
			}

			removed, err := ms.ClearDay(ctx, 1)
			if err != nil {
				t.Fatalf("clear: %v", err)
			}
			if removed != 2 {
				t.Errorf("expected 2 keys removed, got %d", removed)
			}

			counts, _ := ms.Load(ctx)
			if len(counts) != 3 {
				t.Errorf("expected 3 keys left, got %v", counts)
			}
			if _, ok := counts["day12_q1"]; !ok {
				t.Error("expected day12 key to survive clearing day 1")
			}

			if _, err := ms.ClearAll(ctx); err != nil {
				t.Fatalf("clear all: %v", err)
			}
			counts, _ = ms.Load(ctx)
			if len(counts) != 0 {
				t.Errorf("expected no keys, got %v", counts)
			}
		})
	}
}

func TestParseDayKey(t *testing.T) {
	tests := []struct {
		key      string
		day, idx int
		ok       bool
	}{
		{"day1_q0", 1, 0, true},
		{"day7_q39", 7, 39, true},
		{"12", 0, 0, false},
		{"day_q3", 0, 0, false},
		{"day2_qx", 0, 0, false},
		{"day0_q1", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			day, idx, ok := store.ParseDayKey(tt.key)
			if ok != tt.ok || day != tt.day || idx != tt.idx {
				t.Errorf("ParseDayKey(%q) = %d, %d, %v", tt.key, day, idx, ok)
			}
		})
	}

	if got := store.DayKey(3, 4); got != "day3_q4" {
		t.Errorf("DayKey(3, 4) = %q", got)
	}
}
