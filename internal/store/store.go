package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// Document names. Each concern lives in exactly one document and every
// write replaces the whole document.
const (
	DocProgress = "progress"
	DocMistakes = "mistakes"
	DocOrders   = "order_state"
	DocRounds   = "rounds"
)

// Documents lists every document a backup covers.
var Documents = []string{DocProgress, DocMistakes, DocOrders, DocRounds}

// Backend persists named JSON documents. WriteDocument must be
// all-or-nothing: a reader never observes a partially written document.
// Backends assume a single writer; they do not lock.
type Backend interface {
	// ReadDocument decodes the named document into v, or returns
	// ErrNotFound when nothing has been written yet.
	ReadDocument(ctx context.Context, name string, v any) error
	WriteDocument(ctx context.Context, name string, v any) error
	Close() error
}
