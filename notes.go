package aframe

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// notesRenderer converts a scene's Markdown notes to the HTML
// fragment shown in the overlay panel.
type notesRenderer struct {
	md goldmark.Markdown
}

// newNotesRenderer creates a notesRenderer with GFM extensions and
// class-based syntax highlighting, so code colors come from the
// injected stylesheet rather than inline styles.
func newNotesRenderer() *notesRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &notesRenderer{md: md}
}

// Render converts Markdown notes to an HTML fragment.
func (r *notesRenderer) Render(notes string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(notes), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotesRender, err)
	}
	return buf.String(), nil
}

// notesPanel wraps the rendered fragment in the overlay container.
func notesPanel(fragment string) string {
	return `<div class="scene-notes">` + fragment + `</div>`
}
