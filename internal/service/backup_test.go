package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/daycards/backend/internal/grader"
	"github.com/daycards/backend/internal/service"
	"github.com/daycards/backend/internal/store"
)

func TestBackup_ExportImportAcrossBackends(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	src, err := store.NewJSON(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}
	srcStores := service.NewStores(src, store.MaxDay)
	srcStores.Progress.Record(ctx, 12, grader.OutcomePartial)
	srcStores.Mistakes.Increment(ctx, "day1_q4")

	backup, err := service.NewBackupService(src, logger).Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if backup.ID == "" || backup.Version != "1.0" {
		t.Errorf("unexpected envelope: %+v", backup)
	}
	if len(backup.Documents) != 2 {
		t.Errorf("expected only written documents, got %v", backup.Documents)
	}

	dst, err := store.NewSQLite(filepath.Join(t.TempDir(), "backup.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer dst.Close()

	res, err := service.NewBackupService(dst, logger).Import(ctx, backup)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.ID != backup.ID || len(res.Documents) != 2 {
		t.Errorf("unexpected import result: %+v", res)
	}

	dstStores := service.NewStores(dst, store.MaxDay)
	p, _ := dstStores.Progress.Load(ctx)
	if p.Answered["12"] != grader.OutcomePartial {
		t.Errorf("expected restored progress, got %+v", p)
	}
	counts, _ := dstStores.Mistakes.Load(ctx)
	if counts["day1_q4"] != 1 {
		t.Errorf("expected restored mistakes, got %v", counts)
	}
}

func TestBackup_ImportRejectsBadDocuments(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	b, err := store.NewJSON(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}
	svc := service.NewBackupService(b, logger)

	tests := []struct {
		name string
		docs map[string]json.RawMessage
		want error
	}{
		{"unknown document", map[string]json.RawMessage{"settings": json.RawMessage(`{}`)}, service.ErrUnknownDocument},
		{"invalid day", map[string]json.RawMessage{"progress": json.RawMessage(`{"day":0,"answered":{}}`)}, service.ErrInvalidDay},
		{"invalid outcome", map[string]json.RawMessage{
			"mistakes": json.RawMessage(`{"day1_q0":1}`),
			"progress": json.RawMessage(`{"day":1,"answered":{"3":"maybe"}}`),
		}, service.ErrInvalidBackup},
		{"null mistakes", map[string]json.RawMessage{"mistakes": json.RawMessage(`null`)}, service.ErrInvalidBackup},
		{"null rounds", map[string]json.RawMessage{"rounds": json.RawMessage(` null `)}, service.ErrInvalidBackup},
		{"null order state", map[string]json.RawMessage{"order_state": json.RawMessage(`null`)}, service.ErrInvalidBackup},
		{"negative count", map[string]json.RawMessage{"mistakes": json.RawMessage(`{"day1_q0":-2}`)}, service.ErrInvalidBackup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(ctx, &service.Backup{Documents: tt.docs})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, service.ErrInvalidBackup) || !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	counts, _ := service.NewStores(b, store.MaxDay).Mistakes.Load(ctx)
	if len(counts) != 0 {
		t.Errorf("a rejected import must write nothing, got %v", counts)
	}
}
