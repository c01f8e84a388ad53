// Package export writes questions to the non-package interchange formats:
// the tab-delimited upload file and the LaTeX marking scheme.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/quizforge/quizforge/internal/markup"
	"github.com/quizforge/quizforge/internal/question"
)

// Row converts one question to its tab-delimited record fields. Multiple
// choice rows are "MC", the question text, then a (text, correct|incorrect)
// pair per shuffled answer slot, then the fixed trailing "None of the
// others" pair. File-upload rows are just "FIL" and the text. Every field is
// math-normalized and collapsed to a single physical line.
func Row(q question.Question) ([]string, error) {
	switch mc := q.(type) {
	case *question.MultipleChoice:
		answers, correctIndex := question.Arrange(clean(mc.Answer), cleanAll(mc.WrongAnswers), false, true, mc.ShuffleSeed)
		fields := []string{"MC", clean(mc.TextHTML)}
		for i, a := range answers {
			flag := "incorrect"
			if i == correctIndex {
				flag = "correct"
			}
			fields = append(fields, a, flag)
		}
		fields = append(fields, question.NoneOfTheOthers, "incorrect")
		return fields, nil
	case *question.FileUpload:
		return []string{"FIL", clean(q.Text())}, nil
	default:
		return nil, fmt.Errorf("export: unknown question type %T", q)
	}
}

func clean(s string) string {
	return markup.CollapseSpace(markup.NormalizeMath(s))
}

func cleanAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = clean(s)
	}
	return out
}

// WriteRows writes one record per question, tab-separated, one per line.
func WriteRows(w io.Writer, qs []question.Question) error {
	for _, q := range qs {
		fields, err := Row(q)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, strings.Join(fields, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
