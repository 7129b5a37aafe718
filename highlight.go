package aframe

import (
	"fmt"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Chroma style names for the source view and the notes code blocks.
const (
	sourceViewStyle = "monokai"
	notesCodeStyle  = "github"
)

// writeHighlightedSource writes a standalone, syntax-highlighted HTML
// page showing the scene's rendered markup. Served at the source
// view endpoint.
func writeHighlightedSource(w io.Writer, source string) error {
	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(sourceViewStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.Standalone(true),
		chromahtml.WithLineNumbers(true),
	)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenizing scene markup: %w", err)
	}

	return formatter.Format(w, style, iterator)
}

// notesHighlightCSS returns the stylesheet for the class-based code
// highlighting inside notes panels.
func notesHighlightCSS() (string, error) {
	style := styles.Get(notesCodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return b.String(), nil
}
