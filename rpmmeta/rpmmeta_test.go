package rpmmeta

import "testing"

func TestFullVersion(t *testing.T) {
	p := &PackageResult{Version: "1.2.3", Release: "4.el9"}
	if got := p.FullVersion(); got != "1.2.3-4.el9" {
		t.Fatalf("got %q", got)
	}
	p.Epoch = 2
	if got := p.FullVersion(); got != "2:1.2.3-4.el9" {
		t.Fatalf("got %q", got)
	}
}

func TestReadPackageMissingFile(t *testing.T) {
	if _, err := ReadPackage("/does/not/exist.rpm"); err == nil {
		t.Fatal("expected an error")
	}
}
