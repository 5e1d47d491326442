package detector

// Copyright is one matched copyright statement.
type Copyright struct {
	Copyright string `json:"copyright"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Holder is one matched copyright holder.
type Holder struct {
	Holder    string `json:"holder"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Copyrights groups copyright-specific results for one file.
type Copyrights struct {
	Copyrights []Copyright `json:"copyrights"`
	Holders    []Holder    `json:"holders"`
}

// Email is one matched e-mail address.
type Email struct {
	Email     string `json:"email"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Emails groups e-mail results for one file.
type Emails struct {
	Emails []Email `json:"emails"`
}

// URL is one matched URL.
type URL struct {
	URL       string `json:"url"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// URLs groups URL results for one file.
type URLs struct {
	URLs []URL `json:"urls"`
}

// LicenseMatch is one positional license match inside a file.
type LicenseMatch struct {
	Score                 float64 `json:"score"`
	StartLine             int     `json:"start_line"`
	EndLine               int     `json:"end_line"`
	MatchedLength         int     `json:"matched_length"`
	LicenseExpression     string  `json:"license_expression"`
	LicenseExpressionSPDX string  `json:"license_expression_spdx"`
	RuleIdentifier        string  `json:"rule_identifier"`
}

// LicenseDetection is one detected license with its contributing matches.
type LicenseDetection struct {
	LicenseExpression     string         `json:"license_expression"`
	LicenseExpressionSPDX string         `json:"license_expression_spdx"`
	Matches               []LicenseMatch `json:"matches"`
}

// Licenses holds all license results for one file. An empty
// DetectedLicenseExpression means no license was detected. The plain and
// SPDX expressions are independent renderings and may differ in token case.
type Licenses struct {
	DetectedLicenseExpression     string             `json:"detected_license_expression,omitempty"`
	DetectedLicenseExpressionSPDX string             `json:"detected_license_expression_spdx,omitempty"`
	PercentageOfLicenseText       float64            `json:"percentage_of_license_text"`
	Detections                    []LicenseDetection `json:"license_detections"`
}

// ScoresOfDetectedExpression resolves the match scores contributing to the
// detected expression.
func (l *Licenses) ScoresOfDetectedExpression() []float64 {
	var scores []float64
	for _, detection := range l.Detections {
		if detection.LicenseExpression == l.DetectedLicenseExpression ||
			detection.LicenseExpressionSPDX == l.DetectedLicenseExpressionSPDX {
			for _, match := range detection.Matches {
				scores = append(scores, match.Score)
			}
			return scores
		}
	}
	return scores
}

// FileInfo carries general per-file information.
type FileInfo struct {
	Date                string            `json:"date"`
	Size                int64             `json:"size"`
	Hashes              map[string]string `json:"hashes,omitempty"`
	TLSH                string            `json:"tlsh,omitempty"`
	MimeType            string            `json:"mime_type"`
	ProgrammingLanguage string            `json:"programming_language,omitempty"`
	IsBinary            bool              `json:"is_binary"`
	IsText              bool              `json:"is_text"`
	IsArchive           bool              `json:"is_archive"`
	IsMedia             bool              `json:"is_media"`
}

// Analysis is the full structured result of analyzing one file. A nil field
// means the corresponding capability was not requested.
type Analysis struct {
	Copyrights *Copyrights
	Emails     *Emails
	URLs       *URLs
	Licenses   *Licenses
	FileInfo   *FileInfo
}
