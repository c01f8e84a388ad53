package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/question"
)

func TestRowMultipleChoice(t *testing.T) {
	q := &question.MultipleChoice{
		TextHTML:     "What is $2+2$?",
		Answer:       "4",
		WrongAnswers: []string{"3", "5", "22"},
		Marks:        1,
		ShuffleSeed:  13,
	}
	fields, err := Row(q)
	require.NoError(t, err)

	// MC, text, 4 shuffled (answer, flag) pairs, trailing none pair.
	require.Len(t, fields, 2+2*4+2)
	assert.Equal(t, "MC", fields[0])
	assert.Equal(t, `What is \(2+2\)?`, fields[1])
	assert.Equal(t, question.NoneOfTheOthers, fields[len(fields)-2])
	assert.Equal(t, "incorrect", fields[len(fields)-1])

	var correctCount int
	var texts []string
	for i := 2; i < len(fields)-2; i += 2 {
		texts = append(texts, fields[i])
		switch fields[i+1] {
		case "correct":
			correctCount++
			assert.Equal(t, "4", fields[i])
		case "incorrect":
		default:
			t.Fatalf("unexpected flag %q", fields[i+1])
		}
	}
	assert.Equal(t, 1, correctCount)
	assert.ElementsMatch(t, []string{"4", "3", "5", "22"}, texts)
}

func TestRowMultipleChoiceSeedReproducible(t *testing.T) {
	q := &question.MultipleChoice{TextHTML: "t", Answer: "a", WrongAnswers: []string{"b", "c"}, ShuffleSeed: 7}
	first, err := Row(q)
	require.NoError(t, err)
	second, err := Row(q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRowFileUpload(t *testing.T) {
	q := &question.FileUpload{TextHTML: "Compute\n$$\\dfrac{1}{2}$$  now.", Marks: 5, Variant: 2}
	fields, err := Row(q)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "FIL", fields[0])
	assert.Equal(t, `Compute \[\frac{1}{2}\] now.<br>[For office use only: V2]`, fields[1])
	assert.NotContains(t, fields[1], "\n")
}

func TestWriteRows(t *testing.T) {
	qs := []question.Question{
		&question.FileUpload{TextHTML: "one", Marks: 1},
		&question.FileUpload{TextHTML: "two", Marks: 1},
	}
	var b strings.Builder
	require.NoError(t, WriteRows(&b, qs))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "FIL\tone", lines[0])
	assert.Equal(t, "FIL\ttwo", lines[1])
}
