// Package service runs practice interactions against the question bank and
// the persisted stores.
package service

import (
	"errors"

	"github.com/daycards/backend/internal/store"
)

var (
	ErrUnknownMode     = errors.New("unknown practice mode")
	ErrInvalidDay      = errors.New("invalid day")
	ErrUnknownDocument = errors.New("unknown document")
	ErrInvalidBackup   = errors.New("invalid backup")
)

// Stores bundles the typed stores sharing one backend.
type Stores struct {
	Progress *store.ProgressStore
	Mistakes *store.MistakeStore
	Orders   *store.OrderStore
	Rounds   *store.RoundStore
}

// NewStores builds every store on top of b.
func NewStores(b store.Backend, maxDay int) Stores {
	return Stores{
		Progress: store.NewProgressStore(b, maxDay),
		Mistakes: store.NewMistakeStore(b),
		Orders:   store.NewOrderStore(b),
		Rounds:   store.NewRoundStore(b),
	}
}
