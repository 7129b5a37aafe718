package aframe

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/alnah/go-aframe/internal/assets"
)

// notesStyleName is the embedded stylesheet for the notes overlay.
const notesStyleName = "notes"

// Scene is the root of a renderable entity tree. It is an Entity
// itself: scene-level components render as attributes on the
// <a-scene> element, and its children become the document's entity
// fragments.
//
// Render and Write are pure functions of the current tree state; each
// call re-walks the tree with fresh deduplication state. The tree
// itself must not be mutated concurrently with rendering; compose the
// scene first, then render or serve it.
type Scene struct {
	Entity

	title       string
	description string
	notes       string
	template    string
	templateDoc string
	loader      assets.Loader
	logger      *slog.Logger
	notesRender *notesRenderer

	mu      sync.Mutex
	srv     *http.Server
	addr    string
	rootDir string
}

// sceneConfig collects construction inputs that need processing
// before the Scene is usable.
type sceneConfig struct {
	templateDir string
}

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene, *sceneConfig)

// WithTitle sets the document title.
func WithTitle(title string) SceneOption {
	return func(s *Scene, _ *sceneConfig) { s.title = title }
}

// WithDescription sets the document's meta description.
func WithDescription(description string) SceneOption {
	return func(s *Scene, _ *sceneConfig) { s.description = description }
}

// WithNotes attaches Markdown notes rendered into an overlay panel on
// the served document.
func WithNotes(markdown string) SceneOption {
	return func(s *Scene, _ *sceneConfig) { s.notes = markdown }
}

// WithTemplate selects a built-in template by name, or a custom
// template document by file path. Default is TemplateEmpty.
func WithTemplate(name string) SceneOption {
	return func(s *Scene, _ *sceneConfig) { s.template = name }
}

// WithTemplateDir adds a directory of custom templates and styles
// that takes precedence over the built-in set. The directory layout
// follows internal/assets: templates/{name}.html, styles/{name}.css.
func WithTemplateDir(path string) SceneOption {
	return func(_ *Scene, cfg *sceneConfig) { cfg.templateDir = path }
}

// WithLogger sets the logger used by the serving layer. Default is
// slog.Default().
func WithLogger(logger *slog.Logger) SceneOption {
	return func(s *Scene, _ *sceneConfig) { s.logger = logger }
}

// WithEntities appends child entities to the scene root.
func WithEntities(children ...*Entity) SceneOption {
	return func(s *Scene, _ *sceneConfig) {
		s.children = append(s.children, children...)
	}
}

// WithSceneComponent attaches a component to the scene element
// itself, e.g. fog or stats.
func WithSceneComponent(name string, value ComponentValue) SceneOption {
	return func(s *Scene, _ *sceneConfig) {
		s.components = append(s.components, namedComponent{name: name, value: value})
	}
}

// WithSceneScripts records script URLs required at scene level.
func WithSceneScripts(urls ...string) SceneOption {
	return func(s *Scene, _ *sceneConfig) {
		s.scripts = append(s.scripts, urls...)
	}
}

// WithSceneAssets attaches assets declared regardless of property
// references, e.g. media loaded dynamically at runtime.
func WithSceneAssets(as ...*Asset) SceneOption {
	return func(s *Scene, _ *sceneConfig) {
		s.assets = append(s.assets, as...)
	}
}

// NewScene creates a Scene. The template is resolved here, not at
// render time: an unknown template name fails fast with
// ErrUnknownTemplate.
func NewScene(opts ...SceneOption) (*Scene, error) {
	s := &Scene{template: TemplateEmpty}
	cfg := &sceneConfig{}
	for _, opt := range opts {
		opt(s, cfg)
	}

	loader, err := assets.NewResolver(cfg.templateDir)
	if err != nil {
		return nil, fmt.Errorf("configuring template dir: %w", err)
	}
	s.loader = loader

	s.templateDoc, err = resolveTemplate(s.template, s.loader)
	if err != nil {
		return nil, err
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.notesRender = newNotesRenderer()
	return s, nil
}

// Title returns the document title.
func (s *Scene) Title() string { return s.title }

// collect runs one traversal over the tree. The scene's own
// references register first (parent before children), then each child
// subtree in supplied order. Returns the populated collector and the
// rendered scene-element attribute string.
func (s *Scene) collect() (*collector, string, error) {
	c := newCollector()
	c.noteComponents(&s.Entity)
	for _, a := range s.Entity.assets {
		c.addAsset(a)
	}
	for _, url := range s.Entity.scripts {
		c.addScript(url)
	}

	var attrs strings.Builder
	for _, nc := range s.Entity.components {
		attr, err := nc.value.attribute(nc.name, c)
		if err != nil {
			return nil, "", err
		}
		attrs.WriteString(" ")
		attrs.WriteString(attr)
	}

	for _, child := range s.Entity.children {
		if err := c.walk(child, entityBlockDepth); err != nil {
			return nil, "", err
		}
	}
	return c, attrs.String(), nil
}

// Render produces the final document from the current tree state.
func (s *Scene) Render() (string, error) {
	c, sceneAttrs, err := s.collect()
	if err != nil {
		return "", err
	}

	doc := suppressDefaults(s.templateDoc, c.componentNames)
	doc = substitute(doc, map[string]string{
		placeholderTitle:       html.EscapeString(s.title),
		placeholderDescription: html.EscapeString(s.description),
		placeholderScripts:     c.scriptBlock(),
		placeholderAssets:      c.assetBlock(),
		placeholderEntities:    c.entityBlock(),
		placeholderSceneAttrs:  sceneAttrs,
	})

	if s.notes != "" {
		doc, err = s.injectNotes(doc)
		if err != nil {
			return "", err
		}
	}

	return doc, nil
}

// injectNotes renders the Markdown notes and splices the overlay
// panel and its stylesheet into the document.
func (s *Scene) injectNotes(doc string) (string, error) {
	fragment, err := s.notesRender.Render(s.notes)
	if err != nil {
		return "", err
	}

	css, err := s.loader.LoadStyle(notesStyleName)
	if err != nil {
		return "", fmt.Errorf("loading notes style: %w", err)
	}
	highlightCSS, err := notesHighlightCSS()
	if err != nil {
		return "", err
	}

	doc = spliceBeforeHeadClose(doc, "<style>"+sanitizeCSS(css+highlightCSS)+"</style>")
	doc = spliceBeforeBodyClose(doc, notesPanel(fragment))
	return doc, nil
}

// Write renders the scene and atomically replaces the file at path.
func (s *Scene) Write(path string) error {
	doc, err := s.Render()
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(doc)); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
