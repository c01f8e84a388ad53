package qti

import (
	"encoding/xml"
	"fmt"

	"github.com/quizforge/quizforge/internal/ident"
)

// ErrTemplateMissing reports a seed document without one of the required
// item kinds. This is a configuration failure: the whole export aborts
// before any item is processed.
var ErrTemplateMissing = fmt.Errorf("qti: required item template missing from seed")

// Session holds the immutable per-export state: the empty assessment shell
// and the item/option templates extracted from a seed document. Threading it
// through the pipeline (rather than process globals) keeps concurrent
// exports and tests isolated from each other.
type Session struct {
	shell  Questestinterop
	upload Item
	mcq    Item
	option ResponseLabel
}

// NewSession extracts templates from the built-in seed document and returns
// a session whose shell carries the given title and identifier. An empty
// ident gets a fresh random one.
func NewSession(title, id string) (*Session, error) {
	return NewSessionFromSeed([]byte(seedDocument), title, id)
}

// NewSessionFromSeed is NewSession over a caller-supplied seed document.
// The seed is scanned once: the first item of each recognized kind becomes
// that kind's template (later duplicates are ignored), the option template
// is the first response label inside the MCQ template, and all items are
// then removed from the shell. Both kinds must be present.
func NewSessionFromSeed(seed []byte, title, id string) (*Session, error) {
	var root Questestinterop
	if err := xml.Unmarshal(seed, &root); err != nil {
		return nil, fmt.Errorf("qti: parse seed: %w", err)
	}

	s := &Session{}
	var haveUpload, haveMCQ bool
	for _, sec := range root.Assessment.Sections {
		for _, it := range sec.Items {
			switch it.Metadata.QTIMetadata.Get(fieldQuestionType) {
			case typeFileUpload:
				if !haveUpload {
					s.upload = it.Clone()
					haveUpload = true
				}
			case typeMultipleChoice:
				if !haveMCQ {
					s.mcq = it.Clone()
					haveMCQ = true
				}
			}
		}
	}
	if !haveUpload {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, typeFileUpload)
	}
	if !haveMCQ {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, typeMultipleChoice)
	}
	if s.mcq.Presentation.ResponseLid == nil || len(s.mcq.Presentation.ResponseLid.RenderChoice.Labels) == 0 {
		return nil, fmt.Errorf("%w: response option", ErrTemplateMissing)
	}
	s.option = s.mcq.Presentation.ResponseLid.RenderChoice.Labels[0]

	// Strip all items so what's left is a structurally valid empty shell.
	for i := range root.Assessment.Sections {
		root.Assessment.Sections[i].Items = nil
	}
	if id == "" {
		id = ident.Assessment()
	}
	root.Assessment.Title = title
	root.Assessment.Ident = id
	root.Xmlns = qtiNamespace
	root.XmlnsXsi = xsiNamespace
	root.SchemaLocation = qtiSchemaLocation
	s.shell = root
	return s, nil
}

// NewDocument returns a fresh empty assessment document cloned from the
// session shell.
func (s *Session) NewDocument() *Document {
	root := s.shell
	root.Assessment.Sections = make([]Section, len(s.shell.Assessment.Sections))
	copy(root.Assessment.Sections, s.shell.Assessment.Sections)
	for i := range root.Assessment.Sections {
		root.Assessment.Sections[i].Items = nil
	}
	if s.shell.Assessment.Metadata != nil {
		md := s.shell.Assessment.Metadata.clone()
		root.Assessment.Metadata = &md
	}
	return &Document{Root: root}
}

// ID returns the assessment identifier assigned at session creation.
func (s *Session) ID() string { return s.shell.Assessment.Ident }

// Title returns the assessment title.
func (s *Session) Title() string { return s.shell.Assessment.Title }
