package retrieval

import "licensetools/detector"

// FileResult is the analysis outcome for one file. A nil capability field
// means the category was not requested; a non-nil zero value means it was
// requested but nothing was found.
type FileResult struct {
	Path      string `json:"path"`
	ShortPath string `json:"short_path"`

	Copyrights *detector.Copyrights `json:"copyrights,omitempty"`
	Emails     *detector.Emails     `json:"emails,omitempty"`
	URLs       *detector.URLs       `json:"urls,omitempty"`
	Licenses   *detector.Licenses   `json:"licenses,omitempty"`
	FileInfo   *detector.FileInfo   `json:"file_info,omitempty"`
}

// newPlaceholderResult marks a file that was handled outside the generic
// detector (archives, binaries, fonts, images): the license field is
// present but empty, everything else stays unset.
func newPlaceholderResult(path, shortPath string) *FileResult {
	return &FileResult{
		Path:      path,
		ShortPath: shortPath,
		Licenses:  &detector.Licenses{},
	}
}

// newDeclaredLicenseResult carries a license expression taken from package
// metadata (the RPM License header) instead of file content.
func newDeclaredLicenseResult(path, shortPath, license string) *FileResult {
	return &FileResult{
		Path:      path,
		ShortPath: shortPath,
		Licenses: &detector.Licenses{
			DetectedLicenseExpression:     license,
			DetectedLicenseExpressionSPDX: license,
		},
	}
}

// LicenseExpression resolves the display expression of the result; files
// without any detected license render as "None".
func (r *FileResult) LicenseExpression() string {
	if r.Licenses == nil || r.Licenses.DetectedLicenseExpressionSPDX == "" {
		return "None"
	}
	return r.Licenses.DetectedLicenseExpressionSPDX
}
