package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daycards/backend/internal/grader"
)

// Option is one lettered choice of a multiple-choice question.
type Option struct {
	Letter string
	Text   string
}

// Options keeps the letter→text mapping in the order it was authored.
type Options []Option

// Text returns the option text for a letter.
func (o Options) Text(letter string) (string, bool) {
	letter = grader.NormalizeLetter(letter)
	for _, opt := range o {
		if grader.NormalizeLetter(opt.Letter) == letter {
			return opt.Text, true
		}
	}
	return "", false
}

// Letters returns the option letters in authored order.
func (o Options) Letters() []string {
	letters := make([]string, len(o))
	for i, opt := range o {
		letters[i] = opt.Letter
	}
	return letters
}

// UnmarshalJSON decodes a JSON object while preserving key order.
// Duplicate letters are rejected.
func (o *Options) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("options must be an object of letter to text")
	}

	seen := make(map[string]bool)
	var out Options
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		letter, _ := tok.(string)

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("option %q: %w", letter, err)
		}

		norm := grader.NormalizeLetter(letter)
		if norm == "" {
			return errors.New("option letter cannot be empty")
		}
		if seen[norm] {
			return fmt.Errorf("duplicate option letter %q", letter)
		}
		seen[norm] = true
		out = append(out, Option{Letter: letter, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

// MarshalJSON encodes the options as a JSON object in authored order.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(opt.Letter)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(opt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Question is an immutable multiple-choice record loaded from the question
// file. ID is either explicit or the record's 1-based position.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Instruction string   `json:"instruction"`
	Options     Options  `json:"options"`
	Answers     []string `json:"answers"`
}

// IsMultiSelect reports whether more than one letter is correct.
func (q Question) IsMultiSelect() bool {
	return len(q.Answers) > 1
}

// AnswerTexts returns "letter: text" for every correct letter.
func (q Question) AnswerTexts() []string {
	out := make([]string, 0, len(q.Answers))
	for _, l := range q.Answers {
		text, _ := q.Options.Text(l)
		out = append(out, l+": "+text)
	}
	return out
}

// HasOption reports whether letter is one of the question's options.
func (q Question) HasOption(letter string) bool {
	_, ok := q.Options.Text(letter)
	return ok
}
