package qti

import (
	"strconv"
	"strings"

	"github.com/quizforge/quizforge/internal/ident"
	"github.com/quizforge/quizforge/internal/question"
)

// ItemParams are the per-item fields every question kind shares. Empty Ident
// or CrossRefID get fresh random values; identifiers are immutable once set
// and are never reused, even for discarded items.
type ItemParams struct {
	Title      string
	Ident      string
	CrossRefID string
	Points     float64
}

func (p *ItemParams) fill() {
	if p.Ident == "" {
		p.Ident = ident.Assessment()
	}
	if p.CrossRefID == "" {
		p.CrossRefID = ident.CrossRef()
	}
}

// MCQParams tune answer arrangement for multiple-choice items.
type MCQParams struct {
	AppendNoneOption bool
	Shuffle          bool
	Seed             int64
}

// NewUploadItem instantiates the file-upload template: deep copy, then
// rewrite identifier, title, question text, scoring cross-reference and
// point value. No side effects beyond the returned fragment.
func (s *Session) NewUploadItem(text string, p ItemParams) Item {
	p.fill()
	it := s.upload.Clone()
	it.Title = p.Title
	it.Ident = p.Ident
	it.Presentation.Material.Mattext.Text = text
	md := &it.Metadata.QTIMetadata
	md.Set(fieldCrossRef, p.CrossRefID)
	md.Set(fieldPoints, formatPoints(p.Points))
	return it
}

// NewMCQItem instantiates the multiple-choice template. Beyond the common
// rewrites it arranges the answer options, clones the option template once
// per slot with a locally-unique id, and points the scoring rule's varequal
// at the id sitting in the correct slot. Option ids are distinct within the
// item only; cross-item collisions are possible and accepted by consumers.
func (s *Session) NewMCQItem(text, correct string, wrong []string, mcq MCQParams, p ItemParams) Item {
	p.fill()
	it := s.mcq.Clone()
	it.Title = p.Title
	it.Ident = p.Ident
	it.Presentation.Material.Mattext.Text = text
	md := &it.Metadata.QTIMetadata
	md.Set(fieldCrossRef, p.CrossRefID)
	md.Set(fieldPoints, formatPoints(p.Points))

	ordered, correctIndex := question.Arrange(correct, wrong, mcq.AppendNoneOption, mcq.Shuffle, mcq.Seed)
	ids := ident.OptionBatch(len(ordered))
	md.Set(fieldAnswerIDs, strings.Join(ids, ","))

	labels := make([]ResponseLabel, len(ordered))
	for k, answer := range ordered {
		lbl := s.option
		lbl.Ident = ids[k]
		lbl.Material.Mattext.Text = answer
		labels[k] = lbl
	}
	it.Presentation.ResponseLid.RenderChoice.Labels = labels

	for i := range it.Resprocessing.Conditions {
		it.Resprocessing.Conditions[i].Conditionvar.Varequal.Value = ids[correctIndex]
	}
	return it
}

// BuildItem instantiates the right template for q, preparing its rich text
// for the package (MathJax delimiters, media-path image refs). The point
// value always comes from the question itself, zero included; callers who
// need a different value use the item constructors directly.
func (s *Session) BuildItem(q question.Question, p ItemParams) Item {
	if p.Title == "" {
		p.Title = "Question " + strconv.Itoa(q.VariantNumber())
	}
	p.Points = q.Points()
	switch mc := q.(type) {
	case *question.MultipleChoice:
		wrong := make([]string, len(mc.WrongAnswers))
		for i, wa := range mc.WrongAnswers {
			wrong[i] = Text(wa)
		}
		return s.NewMCQItem(Text(mc.TextHTML), Text(mc.Answer), wrong, MCQParams{
			AppendNoneOption: true,
			Shuffle:          true,
			Seed:             mc.ShuffleSeed,
		}, p)
	default:
		return s.NewUploadItem(Text(q.Text()), p)
	}
}

func formatPoints(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}
