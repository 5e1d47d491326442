package detector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/djherbis/times"

	"licensetools/fuzzy"
	"licensetools/hasher"
	"licensetools/utils"
)

var fileInfoHashes = []string{"md5", "sha1", "sha256", "blake3"}

// languageByExtension covers the languages commonly seen in source
// distributions. Everything else reports no language.
var languageByExtension = map[string]string{
	".c":     "C",
	".h":     "C",
	".cc":    "C++",
	".cpp":   "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".go":    "Go",
	".java":  "Java",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".py":    "Python",
	".pyi":   "Python",
	".rb":    "Ruby",
	".rs":    "Rust",
	".sh":    "Shell",
	".bash":  "Shell",
	".pl":    "Perl",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".lua":   "Lua",
	".r":     "R",
	".m":     "Objective-C",
	".html":  "HTML",
	".htm":   "HTML",
	".css":   "CSS",
	".xml":   "XML",
	".json":  "JSON",
	".yaml":  "YAML",
	".yml":   "YAML",
	".toml":  "TOML",
	".md":    "Markdown",
	".rst":   "reStructuredText",
	".sql":   "SQL",
	".tex":   "TeX",
}

var archiveMimeTypes = map[string]bool{
	"application/zip":              true,
	"application/x-tar":            true,
	"application/gzip":             true,
	"application/x-bzip2":          true,
	"application/x-xz":             true,
	"application/zstd":             true,
	"application/x-7z-compressed":  true,
	"application/x-rar-compressed": true,
	"application/vnd.rar":          true,
	"application/x-rpm":            true,
	"application/x-deb":            true,
	"application/vnd.debian.binary-package": true,
}

func collectFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	info := &FileInfo{
		Size:   stat.Size(),
		Hashes: hasher.ComputeHashes(path, fileInfoHashes),
	}

	if ts, err := times.Stat(path); err == nil {
		t := ts.ModTime()
		if ts.HasBirthTime() {
			t = ts.BirthTime()
		}
		info.Date = t.UTC().Format("2006-01-02")
	} else {
		info.Date = stat.ModTime().UTC().Format("2006-01-02")
	}

	if digest, err := fuzzy.TLSHDigest(path); err == nil {
		info.TLSH = digest
	}

	mimeType, err := utils.MimeType(path)
	if err != nil {
		return nil, err
	}
	info.MimeType = mimeType
	info.IsText = strings.HasPrefix(mimeType, "text/")
	info.IsBinary = !info.IsText
	info.IsArchive = archiveMimeTypes[mimeType]
	info.IsMedia = strings.HasPrefix(mimeType, "image/") ||
		strings.HasPrefix(mimeType, "audio/") ||
		strings.HasPrefix(mimeType, "video/")

	ext := strings.ToLower(filepath.Ext(path))
	info.ProgrammingLanguage = languageByExtension[ext]

	return info, nil
}
