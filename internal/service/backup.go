package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	practicesession "github.com/daycards/backend/internal/domain/practice_session"
	"github.com/daycards/backend/internal/store"
)

const backupVersion = "1.0"

// Backup is the export envelope holding every state document verbatim.
type Backup struct {
	ID         string                     `json:"id"`
	Version    string                     `json:"version"`
	ExportedAt string                     `json:"exported_at"`
	Documents  map[string]json.RawMessage `json:"documents"`
}

type ImportResult struct {
	ID        string   `json:"id"`
	Documents []string `json:"documents"`
}

// BackupService copies state documents in and out of a backend.
type BackupService struct {
	backend store.Backend
	logger  *slog.Logger
	now     func() time.Time
}

func NewBackupService(b store.Backend, logger *slog.Logger) *BackupService {
	return &BackupService{backend: b, logger: logger, now: time.Now}
}

// Export reads every known document. Documents never written are omitted.
func (s *BackupService) Export(ctx context.Context) (*Backup, error) {
	backup := &Backup{
		ID:         uuid.NewString(),
		Version:    backupVersion,
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Documents:  make(map[string]json.RawMessage),
	}
	for _, name := range store.Documents {
		var raw json.RawMessage
		err := s.backend.ReadDocument(ctx, name, &raw)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", name, err)
		}
		backup.Documents[name] = raw
	}

	s.logger.Info("exported backup", "id", backup.ID, "documents", len(backup.Documents))
	return backup, nil
}

// Import validates every document of the envelope first and then writes
// them one by one. Documents absent from the envelope are left untouched.
func (s *BackupService) Import(ctx context.Context, backup *Backup) (*ImportResult, error) {
	decoded := make(map[string]any, len(backup.Documents))
	for name, raw := range backup.Documents {
		v, err := decodeDocument(name, raw)
		if err != nil {
			return nil, err
		}
		decoded[name] = v
	}

	res := &ImportResult{ID: backup.ID}
	for _, name := range store.Documents {
		v, ok := decoded[name]
		if !ok {
			continue
		}
		if err := s.backend.WriteDocument(ctx, name, v); err != nil {
			return nil, fmt.Errorf("import %s: %w", name, err)
		}
		res.Documents = append(res.Documents, name)
	}

	s.logger.Info("imported backup", "id", backup.ID, "documents", res.Documents)
	return res, nil
}

func decodeDocument(name string, raw json.RawMessage) (any, error) {
	if !slices.Contains(store.Documents, name) {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidBackup, ErrUnknownDocument, name)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: %s: document is null", ErrInvalidBackup, name)
	}

	var err error
	var v any
	switch name {
	case store.DocProgress:
		var p store.Progress
		err = json.Unmarshal(raw, &p)
		if err == nil {
			err = validateProgress(p)
		}
		v = p
	case store.DocOrders:
		var orders map[string]practicesession.State
		err = json.Unmarshal(raw, &orders)
		v = orders
	default:
		var counts map[string]int
		err = json.Unmarshal(raw, &counts)
		if err == nil {
			err = validateCounts(counts)
		}
		v = counts
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBackup, name, err)
	}
	return v, nil
}

func validateCounts(counts map[string]int) error {
	for key, n := range counts {
		if n < 0 {
			return fmt.Errorf("%s: negative count %d", key, n)
		}
	}
	return nil
}

func validateProgress(p store.Progress) error {
	if p.Day < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDay, p.Day)
	}
	for id, outcome := range p.Answered {
		if !outcome.Valid() {
			return fmt.Errorf("question %s: invalid outcome %q", id, outcome)
		}
	}
	return nil
}
