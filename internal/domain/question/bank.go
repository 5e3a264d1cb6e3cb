package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultPageSize is the number of questions assigned to one study day.
const DefaultPageSize = 40

var (
	// ErrNotFound is returned when the question file does not exist.
	ErrNotFound = errors.New("question file not found")
	// ErrMalformed is matched by every *MalformedError.
	ErrMalformed = errors.New("malformed question record")
)

// MalformedError describes a question record that was skipped.
type MalformedError struct {
	Index  int    // 1-based position in the source document
	Field  string // offending field, empty when the whole record is unreadable
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("question record #%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("question record #%d: field %q: %s", e.Index, e.Field, e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// Bank is the ordered, read-only list of questions plus the records that
// were skipped while loading it.
type Bank struct {
	Questions []Question
	Skipped   []*MalformedError
	PageSize  int

	byID map[int]int
}

// record mirrors the on-disk shape; pointers distinguish absent fields.
type record struct {
	ID          *int            `json:"id"`
	Question    *string         `json:"question"`
	Instruction *string         `json:"instruction"`
	Options     json.RawMessage `json:"options"`
	Answers     *[]string       `json:"answers"`
}

// Load reads the question file at path.
func Load(path string, pageSize int) (*Bank, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, pageSize)
}

// Parse decodes a JSON array of question records. Records missing a
// required field are skipped and listed in Bank.Skipped.
func Parse(r io.Reader, pageSize int) (*Bank, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	bank := &Bank{
		Questions: make([]Question, 0, len(raw)),
		PageSize:  pageSize,
		byID:      make(map[int]int, len(raw)),
	}

	for i, msg := range raw {
		pos := i + 1
		q, merr := parseRecord(pos, msg)
		if merr == nil {
			if _, dup := bank.byID[q.ID]; dup {
				merr = &MalformedError{Index: pos, Field: "id", Reason: fmt.Sprintf("duplicate id %d", q.ID)}
			}
		}
		if merr != nil {
			bank.Skipped = append(bank.Skipped, merr)
			continue
		}
		bank.byID[q.ID] = len(bank.Questions)
		bank.Questions = append(bank.Questions, q)
	}

	return bank, nil
}

func parseRecord(pos int, msg json.RawMessage) (Question, *MalformedError) {
	var rec record
	if err := json.Unmarshal(msg, &rec); err != nil {
		return Question{}, &MalformedError{Index: pos, Reason: err.Error()}
	}

	switch {
	case rec.Question == nil:
		return Question{}, &MalformedError{Index: pos, Field: "question", Reason: "missing"}
	case rec.Instruction == nil:
		return Question{}, &MalformedError{Index: pos, Field: "instruction", Reason: "missing"}
	case len(rec.Options) == 0:
		return Question{}, &MalformedError{Index: pos, Field: "options", Reason: "missing"}
	case rec.Answers == nil:
		return Question{}, &MalformedError{Index: pos, Field: "answers", Reason: "missing"}
	}

	var opts Options
	if err := json.Unmarshal(rec.Options, &opts); err != nil {
		return Question{}, &MalformedError{Index: pos, Field: "options", Reason: err.Error()}
	}
	if len(opts) == 0 {
		return Question{}, &MalformedError{Index: pos, Field: "options", Reason: "no options"}
	}

	q := Question{
		ID:          pos,
		Question:    *rec.Question,
		Instruction: *rec.Instruction,
		Options:     opts,
		Answers:     *rec.Answers,
	}
	if rec.ID != nil {
		q.ID = *rec.ID
	}

	if len(q.Answers) == 0 {
		return Question{}, &MalformedError{Index: pos, Field: "answers", Reason: "no correct letters"}
	}
	for _, l := range q.Answers {
		if !q.HasOption(l) {
			return Question{}, &MalformedError{Index: pos, Field: "answers", Reason: fmt.Sprintf("letter %q is not an option", l)}
		}
	}

	return q, nil
}

// Batch returns the questions of a day: [(day-1)*pageSize, day*pageSize)
// clipped to the available length.
func Batch(questions []Question, day, pageSize int) []Question {
	if day < 1 || pageSize <= 0 {
		return nil
	}
	start := (day - 1) * pageSize
	if start >= len(questions) {
		return nil
	}
	end := min(start+pageSize, len(questions))
	return questions[start:end]
}

// DayCount is the number of days needed to cover total questions.
func DayCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Batch returns the questions of day.
func (b *Bank) Batch(day int) []Question {
	return Batch(b.Questions, day, b.PageSize)
}

// Days is the number of day batches in the bank.
func (b *Bank) Days() int {
	return DayCount(len(b.Questions), b.PageSize)
}

// At returns the question at position idx of day's batch.
func (b *Bank) At(day, idx int) (Question, bool) {
	batch := b.Batch(day)
	if idx < 0 || idx >= len(batch) {
		return Question{}, false
	}
	return batch[idx], true
}

// ByID looks a question up by its stable id.
func (b *Bank) ByID(id int) (Question, bool) {
	if b.byID == nil {
		b.index()
	}
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.Questions[i], true
}

// Locate returns the day and batch index of the question with id.
func (b *Bank) Locate(id int) (day, idx int, ok bool) {
	if b.byID == nil {
		b.index()
	}
	i, ok := b.byID[id]
	if !ok {
		return 0, 0, false
	}
	return i/b.PageSize + 1, i % b.PageSize, true
}

// NewBank builds a bank from already-validated questions.
func NewBank(questions []Question, pageSize int) *Bank {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	b := &Bank{Questions: questions, PageSize: pageSize}
	b.index()
	return b
}

func (b *Bank) index() {
	b.byID = make(map[int]int, len(b.Questions))
	for i, q := range b.Questions {
		b.byID[q.ID] = i
	}
}
