package config

import (
	"flag"
	"io"
	"strings"
	"testing"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("licensetools", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return Load(fs, args)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, "--directory", "/src")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Directory != "/src" {
		t.Fatalf("directory = %q", cfg.Directory)
	}
	if !cfg.RetrieveCopyrights || !cfg.RetrieveImageMetadata || !cfg.RetrieveCargoMetadata {
		t.Fatal("retrieval toggles must default to on")
	}
	if cfg.Jobs <= 0 {
		t.Fatalf("jobs = %d", cfg.Jobs)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
	if cfg.DeleteUnpackedDirs || cfg.AllowRandomDirFallback {
		t.Fatal("unpack directory policies must default to off")
	}
	if cfg.MaxArchiveDepth != 0 {
		t.Fatalf("max archive depth = %d", cfg.MaxArchiveDepth)
	}
}

func TestLoadRequiresExactlyOneSource(t *testing.T) {
	if _, err := load(t); err == nil {
		t.Fatal("no source must fail")
	}
	_, err := load(t, "--directory", "/src", "--file", "/src/a")
	if err == nil || !strings.Contains(err.Error(), "exactly one") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadDisableToggle(t *testing.T) {
	cfg, err := load(t, "--file", "/tmp/LICENSE", "--retrieve-emails=false")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RetrieveEmails {
		t.Fatal("toggle must be off")
	}
	if !cfg.RetrieveCopyrights {
		t.Fatal("other toggles must stay on")
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	if _, err := load(t, "--directory", "/src", "--log-level", "verbose"); err == nil {
		t.Fatal("invalid log level must fail")
	}
}

func TestLoadInvalidJobs(t *testing.T) {
	if _, err := load(t, "--directory", "/src", "--jobs", "0"); err == nil {
		t.Fatal("non-positive jobs must fail")
	}
}

func TestLoadCargoLockDownload(t *testing.T) {
	cfg, err := load(t, "--cargo-lock-download", "--cargo-lock", "Cargo.lock", "--target-directory", "/tmp/crates")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.CargoLockDownload || cfg.CargoLock != "Cargo.lock" || cfg.TargetDirectory != "/tmp/crates" {
		t.Fatalf("cfg = %+v", cfg)
	}

	if _, err := load(t, "--cargo-lock-download", "--cargo-lock", "Cargo.lock"); err == nil {
		t.Fatal("missing target directory must fail")
	}
	if _, err := load(t, "--cargo-lock-download", "--cargo-lock", "Cargo.lock", "--target-directory", "x", "--directory", "/src"); err == nil {
		t.Fatal("download mode with a source must fail")
	}
}

func TestLoadIndexURLRequiresPackage(t *testing.T) {
	if _, err := load(t, "--directory", "/src", "--index-url", "https://pypi.example.com/simple"); err == nil {
		t.Fatal("index url without package must fail")
	}
	if _, err := load(t, "--package", "requests", "--index-url", "https://pypi.example.com/simple"); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoadVersionSkipsValidation(t *testing.T) {
	cfg, err := load(t, "--version")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.ShowVersion {
		t.Fatal("version flag must be set")
	}
	if !strings.Contains(cfg.VersionString(), "licensetools version") {
		t.Fatalf("banner = %q", cfg.VersionString())
	}
}
