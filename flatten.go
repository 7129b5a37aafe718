package aframe

import (
	"html"
	"strings"
)

// indentStep is the per-level indentation of rendered fragments.
const indentStep = "  "

// collector accumulates the deduplicated outputs of one render pass:
// assets to declare, script URLs to link, and rendered entity
// fragments. Each render uses a fresh collector, so the dedup state
// is scoped to a single pass and multiple scenes render independently
// in the same process.
type collector struct {
	assets    []*Asset
	scripts   []string
	fragments []string

	seenAssets  map[string]struct{}
	seenScripts map[string]struct{}

	// componentNames records every markup-form component name and
	// convenience tag seen in the tree, used to suppress conflicting
	// template defaults.
	componentNames map[string]struct{}
}

func newCollector() *collector {
	return &collector{
		seenAssets:     make(map[string]struct{}),
		seenScripts:    make(map[string]struct{}),
		componentNames: make(map[string]struct{}),
	}
}

// addAsset registers a non-inline asset for declaration. Assets
// deduplicate by id in first-encountered order: a later asset reusing
// an id is dropped silently, even if its contents differ.
func (c *collector) addAsset(a *Asset) {
	if a == nil || a.inline {
		return
	}
	if _, ok := c.seenAssets[a.id]; ok {
		return
	}
	c.seenAssets[a.id] = struct{}{}
	c.assets = append(c.assets, a)
}

// addScript registers a script URL, deduplicated by the literal URL
// string in first-encountered order.
func (c *collector) addScript(url string) {
	if url == "" {
		return
	}
	if _, ok := c.seenScripts[url]; ok {
		return
	}
	c.seenScripts[url] = struct{}{}
	c.scripts = append(c.scripts, url)
}

// noteComponents records the entity's component names and tag for
// template default suppression.
func (c *collector) noteComponents(e *Entity) {
	if e.tag != "" {
		c.componentNames[HyphenateName(e.tag)] = struct{}{}
	}
	for _, nc := range e.components {
		c.componentNames[HyphenateName(nc.name)] = struct{}{}
	}
}

// walk visits the subtree rooted at e depth-first, pre-order: the
// entity's own references register before its children, and children
// register in supplied list order. The rendered fragment for e
// (including its nested children) is appended to c.fragments.
func (c *collector) walk(e *Entity, depth int) error {
	fragment, err := c.render(e, depth)
	if err != nil {
		return err
	}
	c.fragments = append(c.fragments, fragment)
	return nil
}

// render produces the markup fragment for e and its descendants,
// indented one level deeper per generation.
func (c *collector) render(e *Entity, depth int) (string, error) {
	c.noteComponents(e)
	for _, a := range e.assets {
		c.addAsset(a)
	}
	for _, url := range e.scripts {
		c.addScript(url)
	}

	indent := strings.Repeat(indentStep, depth)
	open, err := e.openTag(c)
	if err != nil {
		return "", err
	}
	name, _ := e.element()

	if len(e.children) == 0 {
		return indent + open + "</" + name + ">", nil
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(open)
	for _, child := range e.children {
		fragment, err := c.render(child, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(fragment)
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
	return b.String(), nil
}

// Block indentation depths inside the built-in templates.
const (
	entityBlockDepth = 3 // children of <a-scene>
	assetBlockDepth  = 4 // children of <a-assets>
	scriptBlockDepth = 2 // children of <head>
)

// assetBlock renders the deduplicated asset declarations, one per
// line, or the empty string when nothing needs declaring.
func (c *collector) assetBlock() string {
	indent := strings.Repeat(indentStep, assetBlockDepth)
	lines := make([]string, 0, len(c.assets))
	for _, a := range c.assets {
		lines = append(lines, indent+a.renderDeclaration())
	}
	return strings.Join(lines, "\n")
}

// scriptBlock renders the deduplicated script includes for the head.
func (c *collector) scriptBlock() string {
	indent := strings.Repeat(indentStep, scriptBlockDepth)
	lines := make([]string, 0, len(c.scripts))
	for _, url := range c.scripts {
		lines = append(lines, indent+`<script src="`+html.EscapeString(url)+`"></script>`)
	}
	return strings.Join(lines, "\n")
}

// entityBlock renders the top-level entity fragments in supplied
// order.
func (c *collector) entityBlock() string {
	return strings.Join(c.fragments, "\n")
}
