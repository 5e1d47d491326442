// Package config holds the flag-driven runtime configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"licensetools/version"
)

// Config is the parsed command line. Exactly one of the source fields
// (Directory, File, Archive, URL, Package) must be set for an analysis
// run; the cargo lock download mode takes no source at all.
type Config struct {
	Directory string
	File      string
	Archive   string
	URL       string
	Package   string

	IndexURL    string
	PreferSdist bool

	RetrieveCopyrights     bool
	RetrieveEmails         bool
	RetrieveFileInfo       bool
	RetrieveURLs           bool
	RetrieveLDDData        bool
	RetrieveFontData       bool
	RetrievePythonMetadata bool
	RetrieveCargoMetadata  bool
	RetrieveImageMetadata  bool

	Jobs                   int
	AllowRandomDirFallback bool
	DeleteUnpackedDirs     bool
	MaxArchiveDepth        int

	CargoLockDownload bool
	CargoLock         string
	TargetDirectory   string

	JSONOutput  string
	LogLevel    string
	ShowVersion bool
}

// LoadConfig parses os.Args.
func LoadConfig() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load parses the given arguments into a Config and validates it.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{
		RetrieveCopyrights:     true,
		RetrieveEmails:         true,
		RetrieveFileInfo:       true,
		RetrieveURLs:           true,
		RetrieveLDDData:        true,
		RetrieveFontData:       true,
		RetrievePythonMetadata: true,
		RetrieveCargoMetadata:  true,
		RetrieveImageMetadata:  true,
		Jobs:                   runtime.NumCPU(),
		LogLevel:               "info",
	}

	fs.StringVar(&cfg.Directory, "directory", "", "Analyze the files of this directory tree.")
	fs.StringVar(&cfg.File, "file", "", "Analyze this single file.")
	fs.StringVar(&cfg.Archive, "archive", "", "Analyze the contents of this package archive.")
	fs.StringVar(&cfg.URL, "url", "", "Download the archive behind this URL and analyze its contents.")
	fs.StringVar(&cfg.Package, "package", "", "Resolve this Python package definition (name or name==version) and analyze it.")
	fs.StringVar(&cfg.IndexURL, "index-url", "", "Python package index URL to resolve --package against (default: PyPI).")
	fs.BoolVar(&cfg.PreferSdist, "prefer-sdist", cfg.PreferSdist, "Prefer source distributions over wheels when resolving --package.")

	fs.BoolVar(&cfg.RetrieveCopyrights, "retrieve-copyrights", cfg.RetrieveCopyrights, "Retrieve copyright statements and holders.")
	fs.BoolVar(&cfg.RetrieveEmails, "retrieve-emails", cfg.RetrieveEmails, "Retrieve e-mail addresses.")
	fs.BoolVar(&cfg.RetrieveFileInfo, "retrieve-file-info", cfg.RetrieveFileInfo, "Retrieve general file information (size, dates, hashes, MIME type).")
	fs.BoolVar(&cfg.RetrieveURLs, "retrieve-urls", cfg.RetrieveURLs, "Retrieve URLs.")
	fs.BoolVar(&cfg.RetrieveLDDData, "retrieve-ldd-data", cfg.RetrieveLDDData, "Retrieve shared object linkage for ELF binaries (requires ldd).")
	fs.BoolVar(&cfg.RetrieveFontData, "retrieve-font-data", cfg.RetrieveFontData, "Retrieve font naming table metadata.")
	fs.BoolVar(&cfg.RetrievePythonMetadata, "retrieve-python-metadata", cfg.RetrievePythonMetadata, "Retrieve Python package metadata (package sources only).")
	fs.BoolVar(&cfg.RetrieveCargoMetadata, "retrieve-cargo-metadata", cfg.RetrieveCargoMetadata, "Retrieve Cargo.toml package metadata.")
	fs.BoolVar(&cfg.RetrieveImageMetadata, "retrieve-image-metadata", cfg.RetrieveImageMetadata, "Retrieve image EXIF and PDF document metadata.")

	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, fmt.Sprintf("Number of parallel analysis jobs (default: %d).", cfg.Jobs))
	fs.BoolVar(&cfg.AllowRandomDirFallback, "random-dir-fallback", cfg.AllowRandomDirFallback, "Fall back to a random directory name when an unpack directory already exists.")
	fs.BoolVar(&cfg.DeleteUnpackedDirs, "delete-unpacked-dirs", cfg.DeleteUnpackedDirs, "Remove unpack directories after their subtree has been analyzed.")
	fs.IntVar(&cfg.MaxArchiveDepth, "max-archive-depth", cfg.MaxArchiveDepth, "Maximum archive nesting depth to unpack (default: 0 for unbounded).")

	fs.BoolVar(&cfg.CargoLockDownload, "cargo-lock-download", cfg.CargoLockDownload, "Download all crates of a Cargo.lock file instead of analyzing.")
	fs.StringVar(&cfg.CargoLock, "cargo-lock", "", "Cargo.lock file for --cargo-lock-download.")
	fs.StringVar(&cfg.TargetDirectory, "target-directory", "", "Target directory for --cargo-lock-download.")

	fs.StringVar(&cfg.JSONOutput, "json-output", "", "Additionally write per-file results as NDJSON to this file.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error, fatal, or panic (default: info).")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit.")

	fs.Usage = func() { displayHelp(fs) }
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func displayHelp(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "licensetools - license metadata aggregation for software artifacts")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  licensetools [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  licensetools --directory /src/project")
	fmt.Fprintln(out, "  licensetools --package requests==2.31.0 --prefer-sdist")
	fmt.Fprintln(out, "  licensetools --cargo-lock-download --cargo-lock Cargo.lock --target-directory ./crates")
}

func (cfg *Config) sourceCount() int {
	n := 0
	for _, value := range []string{cfg.Directory, cfg.File, cfg.Archive, cfg.URL, cfg.Package} {
		if value != "" {
			n++
		}
	}
	return n
}

func (cfg *Config) validate() error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if cfg.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive")
	}
	if cfg.MaxArchiveDepth < 0 {
		return fmt.Errorf("max-archive-depth must be zero or positive")
	}

	if cfg.CargoLockDownload {
		if cfg.sourceCount() != 0 {
			return fmt.Errorf("--cargo-lock-download takes no analysis source")
		}
		if strings.TrimSpace(cfg.CargoLock) == "" {
			return fmt.Errorf("--cargo-lock is required with --cargo-lock-download")
		}
		if strings.TrimSpace(cfg.TargetDirectory) == "" {
			return fmt.Errorf("--target-directory is required with --cargo-lock-download")
		}
		return nil
	}

	if cfg.sourceCount() != 1 {
		return fmt.Errorf("exactly one of --directory, --file, --archive, --url, or --package must be given")
	}
	if cfg.IndexURL != "" && cfg.Package == "" {
		return fmt.Errorf("--index-url requires --package")
	}
	return nil
}

// VersionString renders the banner for --version.
func (cfg *Config) VersionString() string {
	return fmt.Sprintf("licensetools version %s", version.Version)
}
