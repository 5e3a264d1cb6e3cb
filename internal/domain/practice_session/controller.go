package practicesession

import (
	"math/rand"
	"sort"

	"github.com/daycards/backend/internal/grader"
)

// Event is a user action fed to Controller.Step.
type Event interface{ isEvent() }

// Submit grades the current item.
type Submit struct{ Selection []string }

// SubmitAll grades every item at once (quiz mode). Selections are keyed by
// question id.
type SubmitAll struct{ Selections map[int][]string }

// Next acknowledges feedback and moves on.
type Next struct{}

// Restart begins a new round and forgets the round's answered outcomes.
type Restart struct{}

// Reshuffle begins a new order without touching recorded progress.
type Reshuffle struct{}

func (Submit) isEvent()    {}
func (SubmitAll) isEvent() {}
func (Next) isEvent()      {}
func (Restart) isEvent()   {}
func (Reshuffle) isEvent() {}

// Effect is a store mutation requested by Step. Effects are applied by the
// caller in the order they are returned.
type Effect interface{ isEffect() }

// RecordOutcome sets the progress outcome of a question.
type RecordOutcome struct {
	QuestionID int
	Outcome    grader.Outcome
}

// IncrementMistake adds one to the mistake counter under Key.
type IncrementMistake struct{ Key string }

// ClearAnswered removes progress outcomes of the listed questions.
type ClearAnswered struct{ QuestionIDs []int }

// RoundCompleted bumps the completed-round counter.
type RoundCompleted struct{}

func (RecordOutcome) isEffect()    {}
func (IncrementMistake) isEffect() {}
func (ClearAnswered) isEffect()    {}
func (RoundCompleted) isEffect()   {}

// Feedback describes one graded item.
type Feedback struct {
	QuestionID int
	Outcome    grader.Outcome
	Chosen     []string
	Correct    []string
}

// Result is the outcome of a single Step.
type Result struct {
	State    State
	Effects  []Effect
	Feedback []Feedback
	Warning  *Warning
}

// Controller drives one round over a fixed list of items.
type Controller struct {
	cfg      Config
	items    []Item
	answered map[int]bool // question ids with a recorded outcome
}

// NewController builds a controller. answered lists question ids that
// already carry a progress outcome; random mode skips them.
func NewController(cfg Config, items []Item, answered map[int]bool) *Controller {
	if cfg.Grader == nil {
		cfg.Grader = grader.Strict{}
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeFlashcard
	}
	if answered == nil {
		answered = make(map[int]bool)
	}
	return &Controller{cfg: cfg, items: items, answered: answered}
}

// Mode returns the controller's presentation mode.
func (c *Controller) Mode() Mode { return c.cfg.Mode }

// Items returns the round's items in their original order.
func (c *Controller) Items() []Item { return c.items }

// Start returns the initial state of a fresh round.
func (c *Controller) Start() State {
	return c.start(c.answered)
}

func (c *Controller) start(answered map[int]bool) State {
	n := len(c.items)
	switch c.cfg.Mode {
	case ModeQuiz, ModeReview:
		return State{Order: Identity(n)}
	case ModeRandom:
		s := State{Order: Identity(n)}
		c.pickRandom(&s, answered)
		return s
	default:
		return State{Order: Permutation(n, c.cfg.Rand)}
	}
}

// Valid reports whether a persisted state still fits the item list.
func (c *Controller) Valid(s State) bool {
	return IsPermutation(s.Order, len(c.items)) && s.Cursor >= 0 && s.Cursor <= len(s.Order) &&
		s.Skipped >= 0 && s.Skipped <= len(s.Order) &&
		s.CorrectCount >= 0 && s.CorrectCount <= len(s.Order)-s.Skipped
}

// Current returns the item under the cursor.
func (c *Controller) Current(s State) (Item, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Order) {
		return Item{}, false
	}
	return c.items[s.Order[s.Cursor]], true
}

// Step applies one event. The input state is not modified. A non-nil
// Warning means the event was rejected: the returned state equals the
// input and there are no effects.
func (c *Controller) Step(s State, ev Event) Result {
	switch e := ev.(type) {
	case Submit:
		return c.submit(s, e)
	case SubmitAll:
		return c.submitAll(s, e)
	case Next:
		return c.next(s)
	case Restart:
		return c.restart()
	case Reshuffle:
		return Result{State: c.Start()}
	}
	return reject(s, WarnUnsupported)
}

func (c *Controller) submit(s State, e Submit) Result {
	if w := c.checkSubmittable(s); w != "" {
		return reject(s, w)
	}
	if c.cfg.Mode == ModeQuiz {
		return reject(s, WarnUnsupported)
	}

	item, _ := c.Current(s)
	chosen, w := normalizeSelection(item, e.Selection)
	if w != "" {
		return reject(s, w)
	}

	next := s.Clone()
	fb, effects := c.grade(item, chosen)
	if fb.Outcome == grader.OutcomeCorrect {
		next.CorrectCount++
	}
	next.Submitted = true
	return Result{State: next, Effects: effects, Feedback: []Feedback{fb}}
}

func (c *Controller) submitAll(s State, e SubmitAll) Result {
	if w := c.checkSubmittable(s); w != "" {
		return reject(s, w)
	}
	if c.cfg.Mode != ModeQuiz {
		return reject(s, WarnUnsupported)
	}

	selections := make(map[int][]string, len(e.Selections))
	empty := true
	for _, item := range c.items {
		chosen, w := normalizeSelection(item, e.Selections[item.Question.ID])
		switch w {
		case "":
			empty = false
			selections[item.Question.ID] = chosen
		case WarnEmptySelection:
		default:
			return reject(s, w)
		}
	}
	if empty {
		return reject(s, WarnEmptySelection)
	}

	next := s.Clone()
	next.CorrectCount = 0
	var res Result
	for _, idx := range next.Order {
		item := c.items[idx]
		fb, effects := c.grade(item, selections[item.Question.ID])
		if fb.Outcome == grader.OutcomeCorrect {
			next.CorrectCount++
		}
		res.Feedback = append(res.Feedback, fb)
		res.Effects = append(res.Effects, effects...)
	}
	next.Submitted = true
	res.State = next
	return res
}

func (c *Controller) next(s State) Result {
	if s.Phase() == PhaseComplete {
		return reject(s, WarnRoundComplete)
	}

	next := s.Clone()
	switch {
	case c.cfg.Mode == ModeReview:
		next.Cursor++
		return Result{State: next}
	case !s.Submitted:
		return reject(s, WarnNotSubmitted)
	case c.cfg.Mode == ModeQuiz:
		next.Cursor = len(next.Order)
	default:
		next.Cursor++
		if c.cfg.Mode == ModeRandom {
			c.pickRandom(&next, c.answered)
		}
	}
	next.Submitted = false

	var res Result
	if next.Phase() == PhaseComplete {
		res.Effects = append(res.Effects, RoundCompleted{})
	}
	res.State = next
	return res
}

func (c *Controller) restart() Result {
	if !c.cfg.TrackProgress || c.cfg.Mode == ModeReview || len(c.items) == 0 {
		return Result{State: c.Start()}
	}

	ids := make([]int, len(c.items))
	for i, item := range c.items {
		ids[i] = item.Question.ID
	}
	return Result{
		State:   c.start(nil),
		Effects: []Effect{ClearAnswered{QuestionIDs: ids}},
	}
}

func (c *Controller) checkSubmittable(s State) WarningCode {
	switch {
	case c.cfg.Mode == ModeReview:
		return WarnReadOnly
	case s.Phase() == PhaseComplete:
		return WarnRoundComplete
	case s.Submitted:
		return WarnAlreadySubmitted
	}
	return ""
}

func (c *Controller) grade(item Item, chosen []string) (Feedback, []Effect) {
	q := item.Question
	outcome := c.cfg.Grader.Grade(q.Answers, chosen)

	var effects []Effect
	if outcome != grader.OutcomeCorrect && item.MistakeKey != "" {
		effects = append(effects, IncrementMistake{Key: item.MistakeKey})
	}
	if c.cfg.TrackProgress {
		effects = append(effects, RecordOutcome{QuestionID: q.ID, Outcome: outcome})
	}

	correct := append([]string(nil), q.Answers...)
	sort.Strings(correct)
	return Feedback{QuestionID: q.ID, Outcome: outcome, Chosen: chosen, Correct: correct}, effects
}

// pickRandom moves a uniformly chosen unanswered item to the cursor. When
// none is left the cursor jumps to the end of the round. Items before the
// cursor were shown this round and are never candidates.
func (c *Controller) pickRandom(s *State, answered map[int]bool) {
	var candidates []int
	for j := s.Cursor; j < len(s.Order); j++ {
		if !answered[c.items[s.Order[j]].Question.ID] {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		s.Skipped = len(s.Order) - s.Cursor
		s.Cursor = len(s.Order)
		return
	}

	var pick int
	if c.cfg.Rand != nil {
		pick = candidates[c.cfg.Rand.Intn(len(candidates))]
	} else {
		pick = candidates[rand.Intn(len(candidates))]
	}
	s.Order[s.Cursor], s.Order[pick] = s.Order[pick], s.Order[s.Cursor]
}

// normalizeSelection upper-cases, dedupes and validates letters.
func normalizeSelection(item Item, selection []string) ([]string, WarningCode) {
	seen := make(map[string]bool, len(selection))
	var chosen []string
	for _, l := range selection {
		n := grader.NormalizeLetter(l)
		if n == "" || seen[n] {
			continue
		}
		if !item.Question.HasOption(n) {
			return nil, WarnUnknownOption
		}
		seen[n] = true
		chosen = append(chosen, n)
	}
	if len(chosen) == 0 {
		return nil, WarnEmptySelection
	}
	sort.Strings(chosen)
	return chosen, ""
}

func reject(s State, code WarningCode) Result {
	return Result{State: s, Warning: NewWarning(code)}
}
