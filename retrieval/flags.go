package retrieval

// Flags selects which metadata categories a run retrieves. The bitmask is
// the compact internal representation; Toggles is the boundary type.
type Flags int

const (
	FlagCopyrights Flags = 1 << iota
	FlagEmails
	FlagFileInfo
	FlagURLs
	FlagLDDData
	FlagFontData
	FlagPythonMetadata
	FlagCargoMetadata
	FlagImageMetadata
)

// AllFlags returns the mask with every category enabled.
func AllFlags() Flags {
	return FlagCopyrights | FlagEmails | FlagFileInfo | FlagURLs |
		FlagLDDData | FlagFontData | FlagPythonMetadata |
		FlagCargoMetadata | FlagImageMetadata
}

// Has reports whether every bit of flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Toggles is the named per-category view of a flag mask.
type Toggles struct {
	Copyrights     bool
	Emails         bool
	FileInfo       bool
	URLs           bool
	LDDData        bool
	FontData       bool
	PythonMetadata bool
	CargoMetadata  bool
	ImageMetadata  bool
}

// EncodeFlags converts toggles to the bitmask. Exact inverse of Toggles.
func EncodeFlags(t Toggles) Flags {
	var f Flags
	if t.Copyrights {
		f |= FlagCopyrights
	}
	if t.Emails {
		f |= FlagEmails
	}
	if t.FileInfo {
		f |= FlagFileInfo
	}
	if t.URLs {
		f |= FlagURLs
	}
	if t.LDDData {
		f |= FlagLDDData
	}
	if t.FontData {
		f |= FlagFontData
	}
	if t.PythonMetadata {
		f |= FlagPythonMetadata
	}
	if t.CargoMetadata {
		f |= FlagCargoMetadata
	}
	if t.ImageMetadata {
		f |= FlagImageMetadata
	}
	return f
}

// Toggles converts the bitmask to its named view. Exact inverse of
// EncodeFlags.
func (f Flags) Toggles() Toggles {
	return Toggles{
		Copyrights:     f.Has(FlagCopyrights),
		Emails:         f.Has(FlagEmails),
		FileInfo:       f.Has(FlagFileInfo),
		URLs:           f.Has(FlagURLs),
		LDDData:        f.Has(FlagLDDData),
		FontData:       f.Has(FlagFontData),
		PythonMetadata: f.Has(FlagPythonMetadata),
		CargoMetadata:  f.Has(FlagCargoMetadata),
		ImageMetadata:  f.Has(FlagImageMetadata),
	}
}
