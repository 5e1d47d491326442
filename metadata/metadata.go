// Package metadata renders embedded document metadata: EXIF tags of
// images, PDF document information and DOCX core properties. Authorship
// and copyright tags are the interesting part here.
package metadata

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rwcarlsen/goexif/exif"

	"licensetools/utils"
)

// ErrNoMetadata is returned when a supported file carries no metadata
// worth reporting.
var ErrNoMetadata = errors.New("no embedded metadata found")

// RenderDocumentMetadata dispatches on the MIME type and renders the
// embedded metadata as aligned key/value lines. Unsupported types yield
// ErrNoMetadata.
func RenderDocumentMetadata(path, mimeType string) (string, error) {
	switch mimeType {
	case "image/jpeg", "image/png", "image/tiff":
		return RenderImageMetadata(path)
	case "application/pdf":
		return RenderPDFMetadata(path)
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return RenderDOCXMetadata(path)
	}
	return "", ErrNoMetadata
}

var exifFields = []struct {
	label string
	tag   exif.FieldName
}{
	{"Make", exif.Make},
	{"Model", exif.Model},
	{"Software", exif.Software},
	{"Artist", exif.Artist},
	{"Copyright", exif.Copyright},
	{"Description", exif.ImageDescription},
}

// RenderImageMetadata decodes the EXIF block of an image.
func RenderImageMetadata(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding EXIF of %s: %w", path, err)
	}

	var fields []utils.RenderField
	if tm, err := x.DateTime(); err == nil {
		fields = append(fields, utils.RenderField{Name: "Taken", Value: tm.Format(time.RFC3339)})
	}
	for _, field := range exifFields {
		tag, err := x.Get(field.tag)
		if err != nil {
			continue
		}
		if value, err := tag.StringVal(); err == nil && value != "" {
			fields = append(fields, utils.RenderField{Name: field.label, Value: value})
		}
	}
	if len(fields) == 0 {
		return "", ErrNoMetadata
	}
	return utils.RenderFields(fields), nil
}

// RenderPDFMetadata reads the standard PDF document information.
func RenderPDFMetadata(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := api.PDFInfo(f, path, nil, false, nil)
	if err != nil {
		return "", fmt.Errorf("reading PDF info of %s: %w", path, err)
	}

	var fields []utils.RenderField
	for _, field := range []struct{ label, value string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
	} {
		if field.value != "" {
			fields = append(fields, utils.RenderField{Name: field.label, Value: field.value})
		}
	}
	if len(fields) == 0 {
		return "", ErrNoMetadata
	}
	return utils.RenderFields(fields), nil
}

type docxCoreProperties struct {
	Title       string `xml:"title"`
	Subject     string `xml:"subject"`
	Creator     string `xml:"creator"`
	Keywords    string `xml:"keywords"`
	Description string `xml:"description"`
}

// RenderDOCXMetadata parses the core properties of a DOCX container.
func RenderDOCXMetadata(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "docProps/core.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		var props docxCoreProperties
		err = xml.NewDecoder(rc).Decode(&props)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("decoding core properties of %s: %w", path, err)
		}

		var fields []utils.RenderField
		for _, field := range []struct{ label, value string }{
			{"Title", props.Title},
			{"Subject", props.Subject},
			{"Creator", props.Creator},
			{"Keywords", props.Keywords},
			{"Description", props.Description},
		} {
			if field.value != "" {
				fields = append(fields, utils.RenderField{Name: field.label, Value: field.value})
			}
		}
		if len(fields) == 0 {
			return "", ErrNoMetadata
		}
		return utils.RenderFields(fields), nil
	}
	return "", ErrNoMetadata
}
