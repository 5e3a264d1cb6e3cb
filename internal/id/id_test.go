package id_test

import (
	"testing"

	"github.com/daycards/backend/internal/id"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := id.GenerateID()
		if len(v) != 16 {
			t.Fatalf("expected 16 characters, got %q", v)
		}
		if seen[v] {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = true
	}
}
