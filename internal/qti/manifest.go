package qti

import (
	"encoding/xml"
	"io"
	"path/filepath"
	"time"

	"github.com/quizforge/quizforge/internal/ident"
)

const (
	manifestNamespace = "http://www.imsglobal.org/xsd/imsccv1p1/imscp_v1p1"
	lomNamespace      = "http://ltsc.ieee.org/xsd/imsccv1p1/LOM/resource"
	imsmdNamespace    = "http://www.imsglobal.org/xsd/imsmd_v1p2"
	manifestSchemaLoc = "http://www.imsglobal.org/xsd/imsccv1p1/imscp_v1p1 http://www.imsglobal.org/xsd/imscp_v1p1.xsd " +
		"http://ltsc.ieee.org/xsd/imsccv1p1/LOM/resource http://www.imsglobal.org/profile/cc/ccv1p1/LOM/ccv1p1_lomresource_v1p0.xsd " +
		"http://www.imsglobal.org/xsd/imsmd_v1p2 http://www.imsglobal.org/xsd/imsmd_v1p2p2.xsd"

	resourceTypeQTI = "imsqti_xmlv1p2"
	resourceTypeWeb = "webcontent"

	// MediaDir is the package subdirectory media files are copied into.
	MediaDir = "Uploaded Media"
)

// Manifest is the imsmanifest.xml document cross-referencing the assessment
// resource and any media resources.
type Manifest struct {
	XMLName        xml.Name         `xml:"manifest"`
	Identifier     string           `xml:"identifier,attr"`
	Xmlns          string           `xml:"xmlns,attr"`
	XmlnsLom       string           `xml:"xmlns:lom,attr"`
	XmlnsImsmd     string           `xml:"xmlns:imsmd,attr"`
	XmlnsXsi       string           `xml:"xmlns:xsi,attr"`
	SchemaLocation string           `xml:"xsi:schemaLocation,attr"`
	Metadata       manifestMetadata `xml:"metadata"`
	Organizations  struct{}         `xml:"organizations"`
	Resources      []Resource       `xml:"resources>resource"`
}

type manifestMetadata struct {
	Schema        string `xml:"schema"`
	SchemaVersion string `xml:"schemaversion"`
	Lom           lom    `xml:"imsmd:lom"`
}

type lom struct {
	General struct {
		Title lomString `xml:"imsmd:title"`
	} `xml:"imsmd:general"`
	LifeCycle struct {
		Contribute struct {
			Date struct {
				DateTime string `xml:"imsmd:dateTime"`
			} `xml:"imsmd:date"`
		} `xml:"imsmd:contribute"`
	} `xml:"imsmd:lifeCycle"`
	Rights struct {
		Copyright struct {
			Value string `xml:"imsmd:value"`
		} `xml:"imsmd:copyrightAndOtherRestrictions"`
		Description lomString `xml:"imsmd:description"`
	} `xml:"imsmd:rights"`
}

type lomString struct {
	String string `xml:"imsmd:string"`
}

type Resource struct {
	Identifier string `xml:"identifier,attr"`
	Type       string `xml:"type,attr"`
	Href       string `xml:"href,attr,omitempty"`
	File       File   `xml:"file"`
}

type File struct {
	Href string `xml:"href,attr"`
}

// BuildManifest assembles the package manifest: the assessment resource plus
// one webcontent resource per media filename. Resource identifiers are
// random, so two builds from the same inputs are content-equivalent rather
// than byte-identical.
func BuildManifest(assessmentID, title string, media []string) Manifest {
	m := Manifest{
		Identifier:     ident.Assessment(),
		Xmlns:          manifestNamespace,
		XmlnsLom:       lomNamespace,
		XmlnsImsmd:     imsmdNamespace,
		XmlnsXsi:       xsiNamespace,
		SchemaLocation: manifestSchemaLoc,
	}
	m.Metadata.Schema = "IMS Content"
	m.Metadata.SchemaVersion = "1.1.3"
	m.Metadata.Lom.General.Title.String = `QTI Quiz Export "` + title + `"`
	m.Metadata.Lom.LifeCycle.Contribute.Date.DateTime = time.Now().Format("2006-01-02")
	m.Metadata.Lom.Rights.Copyright.Value = "yes"
	m.Metadata.Lom.Rights.Description.String = "Private (Copyrighted) - http://en.wikipedia.org/wiki/Copyright"

	m.Resources = append(m.Resources, Resource{
		Identifier: assessmentID,
		Type:       resourceTypeQTI,
		File:       File{Href: assessmentID + "/" + assessmentID + ".xml"},
	})
	for _, fn := range media {
		href := MediaDir + "/" + filepath.Base(fn)
		m.Resources = append(m.Resources, Resource{
			Identifier: ident.Assessment(),
			Type:       resourceTypeWeb,
			Href:       href,
			File:       File{Href: href},
		})
	}
	return m
}

// Write marshals the manifest with an XML declaration.
func (m *Manifest) Write(w io.Writer) error {
	b, err := xml.MarshalIndent(m, "", "  ")
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
