package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daycards/backend/internal/api"
	"github.com/daycards/backend/internal/domain/question"
	"github.com/daycards/backend/internal/grader"
	"github.com/daycards/backend/internal/service"
	"github.com/daycards/backend/internal/store"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	qs := make([]question.Question, 4)
	for i := range qs {
		qs[i] = question.Question{
			ID:          i + 1,
			Question:    fmt.Sprintf("Question %d", i+1),
			Instruction: "Choose one.",
			Options: question.Options{
				{Letter: "A", Text: "yes"},
				{Letter: "B", Text: "no"},
			},
			Answers: []string{"A"},
		}
	}

	b, err := store.NewJSON(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	practice := service.NewPracticeService(
		question.NewBank(qs, 2),
		service.NewStores(b, store.MaxDay),
		grader.Strict{},
		rand.New(rand.NewSource(3)),
		logger,
	)
	h := api.NewHandler(practice, service.NewBackupService(b, logger), logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h)
	return api.Logging(logger)(api.CORS(mux))
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestPractice_SubmitAndNext(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/practice/view", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	view := decode[service.Result](t, rec)
	if view.View.Key != "day1" || view.View.Current == nil {
		t.Fatalf("unexpected view: %+v", view.View)
	}

	rec = do(t, srv, http.MethodPost, "/practice/submit", `{"selection":["a"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	res := decode[service.Result](t, rec)
	if len(res.Feedback) != 1 || res.Feedback[0].Outcome != grader.OutcomeCorrect {
		t.Errorf("expected correct feedback, got %+v", res.Feedback)
	}

	rec = do(t, srv, http.MethodPost, "/practice/submit", `{"selection":["B"]}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a double submit, got %d", rec.Code)
	}
	warning := decode[api.WarningResponse](t, rec)
	if warning.Warning != "already_submitted" || warning.Message == "" {
		t.Errorf("unexpected warning: %+v", warning)
	}

	rec = do(t, srv, http.MethodPost, "/practice/next", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	res = decode[service.Result](t, rec)
	if res.View.Position != 2 || res.View.Phase != "presenting" {
		t.Errorf("expected the second question, got %+v", res.View)
	}
}

func TestPractice_Warnings(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name, path, body, warning string
	}{
		{"empty selection", "/practice/submit", `{"selection":[]}`, "empty_selection"},
		{"unknown letter", "/practice/submit", `{"selection":["Z"]}`, "unknown_option"},
		{"next before submit", "/practice/next", "", "not_submitted"},
		{"review is read-only", "/practice/submit", `{"mode":"review","selection":["A"]}`, "read_only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, tt.path, tt.body)
			if rec.Code != http.StatusConflict {
				t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
			}
			if w := decode[api.WarningResponse](t, rec); w.Warning != tt.warning {
				t.Errorf("expected %s, got %s", tt.warning, w.Warning)
			}
		})
	}
}

func TestPractice_BadRequests(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name, body string
	}{
		{"invalid json", `{"mode":`},
		{"unknown mode", `{"mode":"speedrun"}`},
		{"negative day", `{"days":[-1]}`},
		{"day out of range", `{"days":[42]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/practice/view", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestPractice_QuizSubmitAll(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/practice/submit", `{"mode":"quiz","selections":{"1":["A"],"2":["B"]}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	res := decode[service.Result](t, rec)
	if res.View.Key != "quiz_day1" || res.View.CorrectCount != 1 || len(res.Feedback) != 2 {
		t.Errorf("unexpected quiz result: %+v", res)
	}
}

func TestProgress_AdvanceGuard(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/progress/advance", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
	adv := decode[api.AdvanceResponse](t, rec)
	if adv.Warning != "day_incomplete" || adv.Progress.Day != 1 {
		t.Errorf("unexpected response: %+v", adv)
	}

	rec = do(t, srv, http.MethodPost, "/progress/advance?force=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if adv := decode[api.AdvanceResponse](t, rec); adv.Progress.Day != 2 {
		t.Errorf("expected day 2, got %+v", adv.Progress)
	}

	rec = do(t, srv, http.MethodPost, "/progress/advance?force=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad flag, got %d", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/progress/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if v := decode[service.ProgressView](t, rec); v.Day != 1 {
		t.Errorf("expected day 1 after reset, got %d", v.Day)
	}
}

func TestDays(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodGet, "/days/2/questions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	qs := decode[[]question.Question](t, rec)
	if len(qs) != 2 || qs[0].ID != 3 || len(qs[0].Answers) != 1 {
		t.Errorf("unexpected day 2 questions: %+v", qs)
	}

	for _, path := range []string{"/days/x/questions", "/days/0/questions", "/days/3/questions"} {
		if rec := do(t, srv, http.MethodGet, path, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}

	rec = do(t, srv, http.MethodPost, "/days/1/reset?mistakes=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if res := decode[service.ResetResult](t, rec); res.Day != 1 {
		t.Errorf("unexpected reset result: %+v", res)
	}
}

func TestMistakes(t *testing.T) {
	srv := newServer(t)

	do(t, srv, http.MethodPost, "/practice/submit", `{"selection":["B"]}`)

	rec := do(t, srv, http.MethodGet, "/mistakes?day=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	entries := decode[[]service.MistakeEntry](t, rec)
	if len(entries) != 1 || entries[0].Count != 1 || entries[0].Question == nil {
		t.Fatalf("unexpected mistakes: %+v", entries)
	}

	rec = do(t, srv, http.MethodDelete, "/mistakes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if res := decode[api.ClearMistakesResponse](t, rec); res.Cleared != 1 {
		t.Errorf("expected 1 cleared, got %d", res.Cleared)
	}

	rec = do(t, srv, http.MethodGet, "/mistakes", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected an empty list, got %s", rec.Body)
	}
}

func TestExportImport(t *testing.T) {
	srv := newServer(t)
	do(t, srv, http.MethodPost, "/practice/submit", `{"selection":["B"]}`)

	rec := do(t, srv, http.MethodGet, "/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "daycards-backup.json") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	exported := rec.Body.Bytes()

	other := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader(exported))
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, other, http.MethodGet, "/mistakes", "")
	if entries := decode[[]service.MistakeEntry](t, rec); len(entries) != 1 {
		t.Errorf("expected the imported mistake, got %+v", entries)
	}

	rec = do(t, other, http.MethodPost, "/import", `{"documents":{"settings":{}}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown document, got %d", rec.Code)
	}
}

func TestMiddleware(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodGet, "/progress", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers")
	}

	rec = do(t, srv, http.MethodOptions, "/progress", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for a preflight, got %d", rec.Code)
	}
}
