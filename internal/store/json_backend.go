package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// JSONBackend keeps one <name>.json file per document in a directory.
type JSONBackend struct {
	dir string
}

var _ Backend = (*JSONBackend)(nil)

// NewJSON creates the data directory if needed.
func NewJSON(dir string) (*JSONBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONBackend{dir: dir}, nil
}

func (b *JSONBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

func (b *JSONBackend) ReadDocument(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// WriteDocument writes to a temporary file and renames it over the target.
func (b *JSONBackend) WriteDocument(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := renameio.WriteFile(b.path(name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (b *JSONBackend) Close() error { return nil }
