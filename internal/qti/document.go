// Package qti builds QTI 1.2 assessment packages: an item bank XML, an IMS
// content-packaging manifest and the media files, bundled as a zip the LMS
// imports. Items are always deep-copied from templates extracted out of a
// seed document, never assembled field by field, so every structural path
// the schema requires is guaranteed present.
package qti

import (
	"encoding/xml"
	"fmt"
	"io"
)

const (
	qtiNamespace      = "http://www.imsglobal.org/xsd/ims_qtiasiv1p2"
	xsiNamespace      = "http://www.w3.org/2001/XMLSchema-instance"
	qtiSchemaLocation = "http://www.imsglobal.org/xsd/ims_qtiasiv1p2 http://www.imsglobal.org/xsd/ims_qtiasiv1p2p1.xsd"
)

// Metadata field labels fixed by the import schema.
const (
	fieldQuestionType  = "question_type"
	fieldPoints        = "points_possible"
	fieldAnswerIDs     = "original_answer_ids"
	fieldCrossRef      = "assessment_question_identifierref"
	typeFileUpload     = "file_upload_question"
	typeMultipleChoice = "multiple_choice_question"
)

// Questestinterop is the root of one assessment document.
type Questestinterop struct {
	XMLName        xml.Name   `xml:"questestinterop"`
	Xmlns          string     `xml:"xmlns,attr"`
	XmlnsXsi       string     `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string     `xml:"xsi:schemaLocation,attr,omitempty"`
	Assessment     Assessment `xml:"assessment"`
}

type Assessment struct {
	Ident    string       `xml:"ident,attr"`
	Title    string       `xml:"title,attr"`
	Metadata *QTIMetadata `xml:"qtimetadata,omitempty"`
	Sections []Section    `xml:"section"`
}

type Section struct {
	Ident string `xml:"ident,attr"`
	Items []Item `xml:"item"`
}

// QTIMetadata is an ordered list of label/entry pairs.
type QTIMetadata struct {
	Fields []MetadataField `xml:"qtimetadatafield"`
}

type MetadataField struct {
	Label string `xml:"fieldlabel"`
	Entry string `xml:"fieldentry"`
}

// Get returns the entry for label, or "" when absent.
func (m *QTIMetadata) Get(label string) string {
	for _, f := range m.Fields {
		if f.Label == label {
			return f.Entry
		}
	}
	return ""
}

// Set replaces the entry for label; missing labels are ignored because the
// field set is fixed by the template.
func (m *QTIMetadata) Set(label, entry string) {
	for i := range m.Fields {
		if m.Fields[i].Label == label {
			m.Fields[i].Entry = entry
			return
		}
	}
}

func (m *QTIMetadata) clone() QTIMetadata {
	out := QTIMetadata{Fields: make([]MetadataField, len(m.Fields))}
	copy(out.Fields, m.Fields)
	return out
}

// Item is one question's XML subtree.
type Item struct {
	Ident         string        `xml:"ident,attr"`
	Title         string        `xml:"title,attr"`
	Metadata      ItemMetadata  `xml:"itemmetadata"`
	Presentation  Presentation  `xml:"presentation"`
	Resprocessing Resprocessing `xml:"resprocessing"`
}

// Clone deep-copies the item, including metadata fields, response labels and
// scoring conditions.
func (it Item) Clone() Item {
	out := it
	out.Metadata.QTIMetadata = it.Metadata.QTIMetadata.clone()
	if it.Presentation.ResponseLid != nil {
		lid := *it.Presentation.ResponseLid
		lid.RenderChoice.Labels = make([]ResponseLabel, len(it.Presentation.ResponseLid.RenderChoice.Labels))
		copy(lid.RenderChoice.Labels, it.Presentation.ResponseLid.RenderChoice.Labels)
		out.Presentation.ResponseLid = &lid
	}
	out.Resprocessing.Conditions = make([]Respcondition, len(it.Resprocessing.Conditions))
	copy(out.Resprocessing.Conditions, it.Resprocessing.Conditions)
	return out
}

type ItemMetadata struct {
	QTIMetadata QTIMetadata `xml:"qtimetadata"`
}

type Presentation struct {
	Material    Material     `xml:"material"`
	ResponseLid *ResponseLid `xml:"response_lid,omitempty"`
}

type Material struct {
	Mattext Mattext `xml:"mattext"`
}

type Mattext struct {
	TextType string `xml:"texttype,attr,omitempty"`
	Text     string `xml:",chardata"`
}

type ResponseLid struct {
	Ident        string       `xml:"ident,attr"`
	RCardinality string       `xml:"rcardinality,attr"`
	RenderChoice RenderChoice `xml:"render_choice"`
}

type RenderChoice struct {
	Labels []ResponseLabel `xml:"response_label"`
}

// ResponseLabel is one answer option.
type ResponseLabel struct {
	Ident    string   `xml:"ident,attr"`
	Material Material `xml:"material"`
}

type Resprocessing struct {
	Outcomes   Outcomes        `xml:"outcomes"`
	Conditions []Respcondition `xml:"respcondition"`
}

type Outcomes struct {
	Decvar Decvar `xml:"decvar"`
}

type Decvar struct {
	Maxvalue string `xml:"maxvalue,attr"`
	Minvalue string `xml:"minvalue,attr"`
	Varname  string `xml:"varname,attr"`
	Vartype  string `xml:"vartype,attr"`
}

type Respcondition struct {
	Continue     string       `xml:"continue,attr"`
	Conditionvar Conditionvar `xml:"conditionvar"`
	Setvar       *Setvar      `xml:"setvar,omitempty"`
}

type Conditionvar struct {
	Varequal Varequal `xml:"varequal"`
}

type Varequal struct {
	Respident string `xml:"respident,attr"`
	Value     string `xml:",chardata"`
}

type Setvar struct {
	Action  string `xml:"action,attr"`
	Varname string `xml:"varname,attr"`
	Value   string `xml:",chardata"`
}

// Document is one exportable assessment: the shell plus inserted items.
type Document struct {
	Root Questestinterop
}

// ID returns the assessment identifier, which doubles as the export
// subdirectory and inner XML filename.
func (d *Document) ID() string { return d.Root.Assessment.Ident }

// Insert appends an item to the assessment's root section.
func (d *Document) Insert(it Item) error {
	if len(d.Root.Assessment.Sections) == 0 {
		return fmt.Errorf("qti: document has no section")
	}
	s := &d.Root.Assessment.Sections[0]
	s.Items = append(s.Items, it)
	return nil
}

// Items returns the items of the root section.
func (d *Document) Items() []Item {
	if len(d.Root.Assessment.Sections) == 0 {
		return nil
	}
	return d.Root.Assessment.Sections[0].Items
}

// Write marshals the document with an XML declaration.
func (d *Document) Write(w io.Writer) error {
	b, err := xml.MarshalIndent(&d.Root, "", "  ")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
