// Package question holds the authoring-side question model: file-upload and
// single-correct-answer multiple-choice questions, variant numbering and the
// answer arrangement used by every exporter.
package question

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/quizforge/quizforge/internal/markup"
)

// Question is one exportable quiz question.
type Question interface {
	// Text returns the question text as rich markup (limited HTML subset,
	// inline math between $ delimiters).
	Text() string
	Points() float64
	VariantNumber() int
	SetVariantNumber(n int)
	// MediaFiles returns the local image paths referenced by the question,
	// including answer options where applicable.
	MediaFiles() []string
}

// FileUpload is a written question answered by uploading a file. Solution
// text and the table fields feed the marking-scheme typesetter.
type FileUpload struct {
	TextHTML     string   `json:"text"`
	SolutionHTML string   `json:"solution,omitempty"`
	Marks        float64  `json:"marks"`
	Variant      int      `json:"variant"`
	TableHeader  []string `json:"table_header,omitempty"`
	TableRow     []string `json:"table_row,omitempty"`
}

// Text returns the question text, with the office-use variant marker appended
// once a variant number has been assigned.
func (q *FileUpload) Text() string {
	if q.Variant > 0 {
		return q.TextHTML + "<br>[For office use only: V" + strconv.Itoa(q.Variant) + "]"
	}
	return q.TextHTML
}

func (q *FileUpload) Points() float64       { return q.Marks }
func (q *FileUpload) VariantNumber() int    { return q.Variant }
func (q *FileUpload) SetVariantNumber(n int) { q.Variant = n }

func (q *FileUpload) MediaFiles() []string {
	return markup.ImageFiles(q.Text())
}

// MultipleChoice is a single-correct-answer question with any number N >= 1
// of wrong answers.
type MultipleChoice struct {
	TextHTML     string   `json:"text"`
	Answer       string   `json:"answer"`
	WrongAnswers []string `json:"wrong_answers"`
	Marks        float64  `json:"marks"`
	Variant      int      `json:"variant"`
	// ShuffleSeed seeds answer arrangement for reproducible exports;
	// zero means unseeded (ambient randomness).
	ShuffleSeed int64 `json:"shuffle_seed,omitempty"`
}

func (q *MultipleChoice) Text() string          { return q.TextHTML }
func (q *MultipleChoice) Points() float64       { return q.Marks }
func (q *MultipleChoice) VariantNumber() int    { return q.Variant }
func (q *MultipleChoice) SetVariantNumber(n int) { q.Variant = n }

func (q *MultipleChoice) MediaFiles() []string {
	files := markup.ImageFiles(q.TextHTML)
	files = append(files, markup.ImageFiles(q.Answer)...)
	for _, wa := range q.WrongAnswers {
		files = append(files, markup.ImageFiles(wa)...)
	}
	return files
}

// HasDistinctAnswers reports whether no two answer options are equal.
// Duplicate options silently break scoring, so callers should check this
// before exporting.
func (q *MultipleChoice) HasDistinctAnswers() bool {
	seen := make(map[string]struct{}, len(q.WrongAnswers)+1)
	seen[q.Answer] = struct{}{}
	for _, wa := range q.WrongAnswers {
		if _, dup := seen[wa]; dup {
			return false
		}
		seen[wa] = struct{}{}
	}
	return true
}

// FinalizeVariants assigns sequential variant numbers 1..N in list order.
func FinalizeVariants(qs []Question) {
	for i, q := range qs {
		q.SetVariantNumber(i + 1)
	}
}

// Question kinds for JSON serialization.
const (
	KindFileUpload     = "file_upload"
	KindMultipleChoice = "multiple_choice"
)

type envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalList encodes a heterogeneous question list with kind discriminators.
func MarshalList(qs []Question) ([]byte, error) {
	envs := make([]envelope, 0, len(qs))
	for _, q := range qs {
		var kind string
		switch q.(type) {
		case *FileUpload:
			kind = KindFileUpload
		case *MultipleChoice:
			kind = KindMultipleChoice
		default:
			return nil, fmt.Errorf("question: unknown type %T", q)
		}
		data, err := json.Marshal(q)
		if err != nil {
			return nil, err
		}
		envs = append(envs, envelope{Kind: kind, Data: data})
	}
	return json.MarshalIndent(envs, "", "  ")
}

// UnmarshalList decodes a list produced by MarshalList.
func UnmarshalList(b []byte) ([]Question, error) {
	var envs []envelope
	if err := json.Unmarshal(b, &envs); err != nil {
		return nil, err
	}
	qs := make([]Question, 0, len(envs))
	for _, e := range envs {
		switch e.Kind {
		case KindFileUpload:
			q := &FileUpload{}
			if err := json.Unmarshal(e.Data, q); err != nil {
				return nil, err
			}
			qs = append(qs, q)
		case KindMultipleChoice:
			q := &MultipleChoice{}
			if err := json.Unmarshal(e.Data, q); err != nil {
				return nil, err
			}
			qs = append(qs, q)
		default:
			return nil, fmt.Errorf("question: unknown kind %q", e.Kind)
		}
	}
	return qs, nil
}
