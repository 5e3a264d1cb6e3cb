package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"

	practicesession "github.com/daycards/backend/internal/domain/practice_session"
	"github.com/daycards/backend/internal/domain/question"
	"github.com/daycards/backend/internal/grader"
	"github.com/daycards/backend/internal/store"
)

// Request selects a practice session: a mode over one or more day batches.
// An empty Days list means the current day.
type Request struct {
	Mode string
	Days []int
}

// QuestionView is a question as shown to the learner. Answers are only
// filled once they may be revealed.
type QuestionView struct {
	ID          int              `json:"id"`
	Question    string           `json:"question"`
	Instruction string           `json:"instruction"`
	Options     question.Options `json:"options"`
	MultiSelect bool             `json:"multi_select"`
	Answers     []string         `json:"answers,omitempty"`
}

type SummaryView struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// View is the current screen of a session.
type View struct {
	Key          string                `json:"key"`
	Mode         practicesession.Mode  `json:"mode"`
	Days         []int                 `json:"days"`
	Phase        practicesession.Phase `json:"phase"`
	Position     int                   `json:"position"`
	Total        int                   `json:"total"`
	CorrectCount int                   `json:"correct_count"`
	Rounds       int                   `json:"rounds"`
	Current      *QuestionView         `json:"current,omitempty"`
	Questions    []QuestionView        `json:"questions,omitempty"`
	Summary      *SummaryView          `json:"summary,omitempty"`
}

type FeedbackView struct {
	QuestionID   int            `json:"question_id"`
	Outcome      grader.Outcome `json:"outcome"`
	Chosen       []string       `json:"chosen"`
	Correct      []string       `json:"correct"`
	CorrectTexts []string       `json:"correct_texts"`
}

// Result is returned by every session operation. A non-nil Warning means
// the action was rejected and nothing was stored.
type Result struct {
	View     View                     `json:"view"`
	Feedback []FeedbackView           `json:"feedback,omitempty"`
	Warning  *practicesession.Warning `json:"-"`
}

// PracticeService loads a session, feeds it one event, applies the
// resulting effects and persists the new round state. Calls are
// serialised: the stores assume a single writer.
type PracticeService struct {
	bank   *question.Bank
	stores Stores
	grader grader.Grader
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPracticeService creates a PracticeService. A nil rng uses the
// package-level source.
func NewPracticeService(bank *question.Bank, stores Stores, g grader.Grader, rng *rand.Rand, logger *slog.Logger) *PracticeService {
	if g == nil {
		g = grader.Strict{}
	}
	return &PracticeService{
		bank:   bank,
		stores: stores,
		grader: g,
		rng:    rng,
		logger: logger,
	}
}

// SessionKey names the persisted round state of a mode over a set of days.
// Single days map to "day<N>" (flashcard) or "<mode>_day<N>"; several days
// map to "bulk_<d1>_<d2>..." with the same mode prefix.
func SessionKey(mode practicesession.Mode, days []int) string {
	var base string
	if len(days) == 1 {
		base = "day" + strconv.Itoa(days[0])
	} else {
		parts := make([]string, len(days))
		for i, d := range days {
			parts[i] = strconv.Itoa(d)
		}
		base = "bulk_" + strings.Join(parts, "_")
	}
	if mode == practicesession.ModeFlashcard || mode == "" {
		return base
	}
	return string(mode) + "_" + base
}

type session struct {
	key  string
	mode practicesession.Mode
	days []int
	ctrl *practicesession.Controller
}

// View returns the current screen, starting and persisting a fresh round
// when the session has none.
func (s *PracticeService) View(ctx context.Context, req Request) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.open(ctx, req)
	if err != nil {
		return nil, err
	}
	st, err := s.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}
	view, err := s.view(ctx, sess, st)
	if err != nil {
		return nil, err
	}
	return &Result{View: view}, nil
}

// Apply runs one user action against the session.
func (s *PracticeService) Apply(ctx context.Context, req Request, ev practicesession.Event) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.open(ctx, req)
	if err != nil {
		return nil, err
	}
	st, err := s.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	res := sess.ctrl.Step(st, ev)
	if res.Warning != nil {
		s.logger.Info("action rejected",
			"session", sess.key,
			"event", fmt.Sprintf("%T", ev),
			"warning", res.Warning.Code,
		)
		view, err := s.view(ctx, sess, st)
		if err != nil {
			return nil, err
		}
		return &Result{View: view, Warning: res.Warning}, nil
	}

	if err := s.applyEffects(ctx, sess.key, res.Effects); err != nil {
		return nil, err
	}
	if err := s.stores.Orders.Save(ctx, sess.key, res.State); err != nil {
		return nil, err
	}

	view, err := s.view(ctx, sess, res.State)
	if err != nil {
		return nil, err
	}
	out := &Result{View: view}
	for _, fb := range res.Feedback {
		out.Feedback = append(out.Feedback, s.feedbackView(fb))
	}
	return out, nil
}

func (s *PracticeService) open(ctx context.Context, req Request) (*session, error) {
	mode, err := practicesession.ParseMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	p, err := s.stores.Progress.Load(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.resolveDays(req.Days, p.Day)
	if err != nil {
		return nil, err
	}

	items, err := s.items(ctx, mode, days)
	if err != nil {
		return nil, err
	}

	cfg := practicesession.Config{
		Mode:          mode,
		Grader:        s.grader,
		TrackProgress: len(days) == 1 && mode != practicesession.ModeReview && mode != practicesession.ModeMistakes,
		Rand:          s.rng,
	}
	if mode == practicesession.ModeMistakes || mode == practicesession.ModeQuiz {
		cfg.Grader = grader.Strict{}
	}

	var answered map[int]bool
	if mode == practicesession.ModeRandom {
		answered = p.AnsweredIDs()
	}

	return &session{
		key:  SessionKey(mode, days),
		mode: mode,
		days: days,
		ctrl: practicesession.NewController(cfg, items, answered),
	}, nil
}

// resolveDays sorts and dedupes the requested days, defaulting to current.
func (s *PracticeService) resolveDays(days []int, current int) ([]int, error) {
	if len(days) == 0 {
		return []int{current}, nil
	}
	last := max(s.stores.Progress.MaxDay(), s.bank.Days())
	out := slices.Clone(days)
	slices.Sort(out)
	out = slices.Compact(out)
	for _, d := range out {
		if d < 1 || d > last {
			return nil, fmt.Errorf("%w: %d", ErrInvalidDay, d)
		}
	}
	return out, nil
}

func (s *PracticeService) items(ctx context.Context, mode practicesession.Mode, days []int) ([]practicesession.Item, error) {
	if mode == practicesession.ModeMistakes {
		entries, err := s.mistakeEntries(ctx, days)
		if err != nil {
			return nil, err
		}
		var items []practicesession.Item
		for _, e := range entries {
			if e.Question != nil {
				items = append(items, practicesession.Item{Question: *e.Question, MistakeKey: e.Key})
			}
		}
		// Counts change while replaying; the persisted order indexes this
		// list, so it must not follow them.
		slices.SortFunc(items, func(a, b practicesession.Item) int {
			return strings.Compare(a.MistakeKey, b.MistakeKey)
		})
		return items, nil
	}

	var items []practicesession.Item
	for _, day := range days {
		for idx, q := range s.bank.Batch(day) {
			items = append(items, practicesession.Item{Question: q, MistakeKey: store.DayKey(day, idx)})
		}
	}
	return items, nil
}

// loadState returns the persisted round state, replacing it with a fresh
// round when it is missing or no longer fits the session's items.
func (s *PracticeService) loadState(ctx context.Context, sess *session) (practicesession.State, error) {
	st, ok, err := s.stores.Orders.Load(ctx, sess.key)
	if err != nil {
		return practicesession.State{}, err
	}
	if ok && sess.ctrl.Valid(st) {
		return st, nil
	}
	if ok {
		s.logger.Warn("discarding stale round state", "session", sess.key)
	}

	st = sess.ctrl.Start()
	if err := s.stores.Orders.Save(ctx, sess.key, st); err != nil {
		return practicesession.State{}, err
	}
	return st, nil
}

func (s *PracticeService) applyEffects(ctx context.Context, key string, effects []practicesession.Effect) error {
	for _, effect := range effects {
		var err error
		switch e := effect.(type) {
		case practicesession.RecordOutcome:
			err = s.stores.Progress.Record(ctx, e.QuestionID, e.Outcome)
		case practicesession.IncrementMistake:
			_, err = s.stores.Mistakes.Increment(ctx, e.Key)
		case practicesession.ClearAnswered:
			err = s.stores.Progress.ClearAnswered(ctx, e.QuestionIDs)
		case practicesession.RoundCompleted:
			var n int
			n, err = s.stores.Rounds.Increment(ctx, key)
			if err == nil {
				s.logger.Info("round completed", "session", key, "rounds", n)
			}
		}
		if err != nil {
			return fmt.Errorf("apply %T: %w", effect, err)
		}
	}
	return nil
}

func (s *PracticeService) view(ctx context.Context, sess *session, st practicesession.State) (View, error) {
	rounds, err := s.stores.Rounds.Get(ctx, sess.key)
	if err != nil {
		return View{}, err
	}

	phase := st.Phase()
	v := View{
		Key:          sess.key,
		Mode:         sess.mode,
		Days:         sess.days,
		Phase:        phase,
		Position:     min(st.Cursor+1, len(st.Order)),
		Total:        len(st.Order),
		CorrectCount: st.CorrectCount,
		Rounds:       rounds,
	}

	reveal := sess.mode == practicesession.ModeReview || phase != practicesession.PhasePresenting
	if sess.mode == practicesession.ModeQuiz {
		items := sess.ctrl.Items()
		for _, idx := range st.Order {
			v.Questions = append(v.Questions, questionView(items[idx].Question, reveal))
		}
	} else if item, ok := sess.ctrl.Current(st); ok {
		qv := questionView(item.Question, reveal)
		v.Current = &qv
	}

	if phase == practicesession.PhaseComplete {
		sum := practicesession.Summarize(st)
		v.Summary = &SummaryView{Total: sum.Total, Correct: sum.Correct, Accuracy: sum.Accuracy}
	}
	return v, nil
}

func (s *PracticeService) feedbackView(fb practicesession.Feedback) FeedbackView {
	fv := FeedbackView{
		QuestionID: fb.QuestionID,
		Outcome:    fb.Outcome,
		Chosen:     fb.Chosen,
		Correct:    fb.Correct,
	}
	if q, ok := s.bank.ByID(fb.QuestionID); ok {
		for _, l := range fb.Correct {
			if text, ok := q.Options.Text(l); ok {
				fv.CorrectTexts = append(fv.CorrectTexts, text)
			}
		}
	}
	return fv
}

func questionView(q question.Question, reveal bool) QuestionView {
	qv := QuestionView{
		ID:          q.ID,
		Question:    q.Question,
		Instruction: q.Instruction,
		Options:     q.Options,
		MultiSelect: q.IsMultiSelect(),
	}
	if reveal {
		qv.Answers = slices.Sorted(slices.Values(q.Answers))
	}
	return qv
}
