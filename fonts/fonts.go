// Package fonts decodes the naming table of sfnt-based font files, which
// carries the licensing statements font foundries embed.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"licensetools/utils"
)

// IsFontFile reports whether the extension marks an sfnt-based font.
func IsFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc":
		return true
	}
	return false
}

var nameFields = []struct {
	label string
	id    sfnt.NameID
}{
	{"Family", sfnt.NameIDFamily},
	{"Subfamily", sfnt.NameIDSubfamily},
	{"Full name", sfnt.NameIDFull},
	{"Version", sfnt.NameIDVersion},
	{"PostScript name", sfnt.NameIDPostScript},
	{"Copyright", sfnt.NameIDCopyright},
	{"Trademark", sfnt.NameIDTrademark},
	{"Manufacturer", sfnt.NameIDManufacturer},
	{"Designer", sfnt.NameIDDesigner},
	{"License", sfnt.NameIDLicense},
	{"License URL", sfnt.NameIDLicenseURL},
	{"Vendor URL", sfnt.NameIDVendorURL},
}

// RenderFontMetadata decodes the naming table of the font at path and
// renders the populated entries as aligned key/value lines. Collections
// report their first font.
func RenderFontMetadata(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var font *sfnt.Font
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		collection, err := sfnt.ParseCollection(data)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
		if collection.NumFonts() == 0 {
			return "", fmt.Errorf("parsing %s: empty collection", path)
		}
		font, err = collection.Font(0)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
	} else {
		font, err = sfnt.Parse(data)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	var buffer sfnt.Buffer
	var fields []utils.RenderField
	for _, field := range nameFields {
		value, err := font.Name(&buffer, field.id)
		if errors.Is(err, sfnt.ErrNotFound) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("naming table of %s: %w", path, err)
		}
		fields = append(fields, utils.RenderField{Name: field.label, Value: value})
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("%s: empty naming table", path)
	}
	return utils.RenderFields(fields), nil
}
