package aframe

// Notes:
// - Source view: standalone highlighted page with line numbers
// - Notes CSS: class-based stylesheet generation

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestWriteHighlightedSource - Source View Page
// ---------------------------------------------------------------------------

func TestWriteHighlightedSource(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	source := "<!DOCTYPE html>\n<html>\n  <body>\n    <a-scene></a-scene>\n  </body>\n</html>\n"
	if err := writeHighlightedSource(&b, source); err != nil {
		t.Fatalf("writeHighlightedSource() error = %v", err)
	}

	got := b.String()
	if !strings.Contains(got, "<html>") {
		t.Error("output is not a standalone page")
	}
	if !strings.Contains(got, "a-scene") {
		t.Error("output does not include the source markup")
	}
}

// ---------------------------------------------------------------------------
// TestNotesHighlightCSS - Stylesheet Generation
// ---------------------------------------------------------------------------

func TestNotesHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := notesHighlightCSS()
	if err != nil {
		t.Fatalf("notesHighlightCSS() error = %v", err)
	}
	if css == "" {
		t.Fatal("notesHighlightCSS() returned empty stylesheet")
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("stylesheet missing chroma classes:\n%.200s", css)
	}
}
