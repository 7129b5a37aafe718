package aframe

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-aframe/internal/assets"
)

// Built-in template names.
const (
	// TemplateEmpty is a bare scene with no preset entities.
	TemplateEmpty = "empty"

	// TemplateGrid adds a wireframe grid ground, default sky, lights
	// and camera.
	TemplateGrid = "grid"

	// TemplateGround adds a large ground plane with a high bright
	// light, default sky and camera.
	TemplateGround = "ground"
)

// Recognized placeholder tokens. Every occurrence of each token in
// the template document is substituted literally.
const (
	placeholderTitle       = "{{TITLE}}"
	placeholderDescription = "{{DESCRIPTION}}"
	placeholderScripts     = "{{SCRIPTS}}"
	placeholderAssets      = "{{ASSETS}}"
	placeholderEntities    = "{{ENTITIES}}"
	placeholderSceneAttrs  = "{{SCENE_ATTRIBUTES}}"
)

// defaultMarker is the attribute built-in templates use to tag preset
// entities so caller-supplied configuration can displace them.
const defaultMarker = `data-default="`

// resolveTemplate returns the template document for a built-in name,
// or the contents of the file at that path. A name that is neither a
// built-in nor an existing file is ErrUnknownTemplate.
func resolveTemplate(name string, loader assets.Loader) (string, error) {
	doc, err := loader.LoadTemplate(name)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, assets.ErrTemplateNotFound) && !errors.Is(err, assets.ErrInvalidAssetName) {
		return "", err
	}

	content, readErr := os.ReadFile(name)
	if readErr != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return string(content), nil
}

// substitute replaces every occurrence of each recognized placeholder
// with its fragment, scanning the template left to right in a single
// pass. Fragments are spliced in and never re-scanned, so a token
// arriving inside caller-supplied content (a title, a component value)
// stays literal. A placeholder whose fragment is empty takes its
// trailing newline with it, so empty blocks leave no blank lines.
func substitute(doc string, values map[string]string) string {
	var b strings.Builder
	for {
		idx, token := nextPlaceholder(doc, values)
		if idx == -1 {
			b.WriteString(doc)
			return b.String()
		}

		b.WriteString(doc[:idx])
		fragment := values[token]
		rest := doc[idx+len(token):]
		if fragment == "" {
			rest = strings.TrimPrefix(rest, "\n")
		}
		b.WriteString(fragment)
		doc = rest
	}
}

// nextPlaceholder finds the leftmost occurrence of any recognized
// token in doc. Position decides, not map order: tokens are distinct
// non-prefix strings, so at most one can start at a given offset.
func nextPlaceholder(doc string, values map[string]string) (int, string) {
	idx, token := -1, ""
	for t := range values {
		if i := strings.Index(doc, t); i != -1 && (idx == -1 || i < idx) {
			idx, token = i, t
		}
	}
	return idx, token
}

// suppressDefaults removes template preset lines whose
// data-default name matches a component or tag the caller's tree
// supplies, so explicit configuration is the one in effect.
func suppressDefaults(doc string, supplied map[string]struct{}) string {
	if len(supplied) == 0 || !strings.Contains(doc, defaultMarker) {
		return doc
	}

	lines := strings.Split(doc, "\n")
	kept := lines[:0]
	for _, line := range lines {
		name, ok := defaultName(line)
		if ok {
			if _, conflict := supplied[name]; conflict {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// defaultName extracts the data-default marker value from a template
// line, if present.
func defaultName(line string) (string, bool) {
	idx := strings.Index(line, defaultMarker)
	if idx == -1 {
		return "", false
	}
	rest := line[idx+len(defaultMarker):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		return "", false
	}
	return rest[:end], true
}
