package qti

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/question"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	sess, err := NewSession("Quiz", "")
	require.NoError(t, err)
	return sess
}

func TestNewUploadItem(t *testing.T) {
	sess := newTestSession(t)
	it := sess.NewUploadItem("Evaluate the integral.", ItemParams{Title: "Question 1", Points: 2.5})

	assert.Equal(t, "Question 1", it.Title)
	require.Len(t, it.Ident, 31)
	assert.Equal(t, byte('g'), it.Ident[0])
	assert.Equal(t, "Evaluate the integral.", it.Presentation.Material.Mattext.Text)

	md := it.Metadata.QTIMetadata
	assert.Equal(t, "file_upload_question", md.Get("question_type"))
	assert.Equal(t, "2.5", md.Get("points_possible"))
	ref := md.Get("assessment_question_identifierref")
	require.Len(t, ref, 31)
	assert.NotEqual(t, it.Ident, ref)
}

func TestNewUploadItemHonorsExplicitIdents(t *testing.T) {
	sess := newTestSession(t)
	it := sess.NewUploadItem("t", ItemParams{Ident: "gfixed", CrossRefID: "gref"})
	assert.Equal(t, "gfixed", it.Ident)
	assert.Equal(t, "gref", it.Metadata.QTIMetadata.Get("assessment_question_identifierref"))
}

func TestNewMCQItemOptionsAndScoring(t *testing.T) {
	sess := newTestSession(t)
	wrong := []string{"b", "c", "d"}
	it := sess.NewMCQItem("pick one", "a", wrong, MCQParams{AppendNoneOption: true, Shuffle: true, Seed: 11}, ItemParams{Points: 1})

	require.NotNil(t, it.Presentation.ResponseLid)
	labels := it.Presentation.ResponseLid.RenderChoice.Labels
	require.Len(t, labels, len(wrong)+2)
	assert.Equal(t, question.NoneOfTheOthers, labels[len(labels)-1].Material.Mattext.Text)

	// Option ids: 4 digits, nonzero lead, distinct, recorded in metadata.
	seen := map[string]struct{}{}
	var texts []string
	for _, lbl := range labels {
		require.Len(t, lbl.Ident, 4)
		assert.NotEqual(t, byte('0'), lbl.Ident[0])
		_, dup := seen[lbl.Ident]
		require.False(t, dup, "duplicate option id %s", lbl.Ident)
		seen[lbl.Ident] = struct{}{}
		texts = append(texts, lbl.Material.Mattext.Text)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", question.NoneOfTheOthers}, texts)

	ids := strings.Split(it.Metadata.QTIMetadata.Get("original_answer_ids"), ",")
	require.Len(t, ids, len(labels))
	for i, lbl := range labels {
		assert.Equal(t, lbl.Ident, ids[i])
	}

	// The scoring rule must point at the slot holding the correct answer.
	require.NotEmpty(t, it.Resprocessing.Conditions)
	want := it.Resprocessing.Conditions[0].Conditionvar.Varequal.Value
	var correctText string
	for _, lbl := range labels {
		if lbl.Ident == want {
			correctText = lbl.Material.Mattext.Text
		}
	}
	assert.Equal(t, "a", correctText)
}

func TestNewMCQItemSeedReproducible(t *testing.T) {
	sess := newTestSession(t)
	order := func() []string {
		it := sess.NewMCQItem("q", "a", []string{"b", "c", "d"}, MCQParams{AppendNoneOption: true, Shuffle: true, Seed: 5}, ItemParams{})
		var out []string
		for _, lbl := range it.Presentation.ResponseLid.RenderChoice.Labels {
			out = append(out, lbl.Material.Mattext.Text)
		}
		return out
	}
	assert.Equal(t, order(), order())
}

func TestBuildItemDefaults(t *testing.T) {
	sess := newTestSession(t)
	q := &question.FileUpload{TextHTML: "Prove it uses $x$.", Marks: 3, Variant: 4}
	it := sess.BuildItem(q, ItemParams{})

	assert.Equal(t, "Question 4", it.Title)
	assert.Equal(t, "3", it.Metadata.QTIMetadata.Get("points_possible"))
	assert.Contains(t, it.Presentation.Material.Mattext.Text, `\(x\)`)
	assert.Contains(t, it.Presentation.Material.Mattext.Text, "[For office use only: V4]")
}

func TestBuildItemKeepsZeroPoints(t *testing.T) {
	sess := newTestSession(t)
	q := &question.FileUpload{TextHTML: "Ungraded practice question.", Marks: 0, Variant: 1}
	it := sess.BuildItem(q, ItemParams{})
	assert.Equal(t, "0", it.Metadata.QTIMetadata.Get("points_possible"))
}

func TestBuildItemRewritesImageRefs(t *testing.T) {
	sess := newTestSession(t)
	q := &question.MultipleChoice{
		TextHTML:     `What does <img src="figs/plot.png"> show?`,
		Answer:       "growth",
		WrongAnswers: []string{"decay"},
		Marks:        1,
		Variant:      1,
		ShuffleSeed:  3,
	}
	it := sess.BuildItem(q, ItemParams{})
	assert.Contains(t, it.Presentation.Material.Mattext.Text, "$IMS-CC-FILEBASE$/Uploaded%20Media/plot.png")
	assert.NotContains(t, it.Presentation.Material.Mattext.Text, "figs/plot.png")
}
