package utils

import (
	"strings"
	"testing"
)

func TestRenderFieldsAlignment(t *testing.T) {
	got := RenderFields([]RenderField{
		{Name: "Name", Value: "demo"},
		{Name: "Version", Value: "1.0.0"},
	})
	want := "   Name: demo\nVersion: 1.0.0"
	if got != want {
		t.Fatalf("rendered = %q, want %q", got, want)
	}
}

func TestRenderFieldsMultiValue(t *testing.T) {
	got := RenderFields([]RenderField{
		{Name: "License", Value: "MIT"},
		{Name: "Classifiers", Multi: true, Values: []string{"b", "a"}},
	})
	indent := strings.Repeat(" ", len("Classifiers"))
	want := "    License: MIT\nClassifiers:\n" + indent + "   * a\n" + indent + "   * b"
	if got != want {
		t.Fatalf("rendered = %q, want %q", got, want)
	}
}

func TestRenderFieldsSingleElementListCollapses(t *testing.T) {
	got := RenderFields([]RenderField{
		{Name: "Requires", Multi: true, Values: []string{"serde"}},
	})
	if got != "Requires: serde" {
		t.Fatalf("rendered = %q", got)
	}
}

func TestRenderFieldsEmptyList(t *testing.T) {
	got := RenderFields([]RenderField{
		{Name: "Requires", Multi: true},
	})
	if got != "Requires:" {
		t.Fatalf("rendered = %q", got)
	}
}
