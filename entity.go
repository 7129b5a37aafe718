package aframe

import "strings"

// primitives is the set of convenience tags that map to specialized
// A-Frame elements. Any other non-empty tag is encoded as a generic
// <a-entity> with a geometry component naming the primitive.
var primitives = map[string]struct{}{
	"box":           {},
	"camera":        {},
	"circle":        {},
	"collada-model": {},
	"cone":          {},
	"cursor":        {},
	"curvedimage":   {},
	"cylinder":      {},
	"dodecahedron":  {},
	"gltf-model":    {},
	"icosahedron":   {},
	"image":         {},
	"light":         {},
	"link":          {},
	"obj-model":     {},
	"octahedron":    {},
	"plane":         {},
	"ring":          {},
	"sky":           {},
	"sound":         {},
	"sphere":        {},
	"tetrahedron":   {},
	"text":          {},
	"torus":         {},
	"torus-knot":    {},
	"triangle":      {},
	"video":         {},
	"videosphere":   {},
}

// Entity is one node of the composed scene graph: a tag, an ordered
// component mapping, ordered children, attached assets, and the
// script URLs its components require. Entities are composed at
// construction time and are read-only during rendering; spatial
// components on a child are interpreted by the consuming renderer as
// relative to its parent, so nesting order is significant.
type Entity struct {
	tag        string
	components []namedComponent
	children   []*Entity
	assets     []*Asset
	scripts    []string
}

// EntityOption configures an Entity at construction.
type EntityOption func(*Entity)

// WithComponent attaches a named component. Components render in the
// order they were attached. Names may use the identifier form
// ("wasd_controls"); they are hyphenated at render time only.
func WithComponent(name string, value ComponentValue) EntityOption {
	return func(e *Entity) {
		e.components = append(e.components, namedComponent{name: name, value: value})
	}
}

// WithChildren appends already-built child entities. Children are
// supplied at construction only, which rules out cycles in the graph.
func WithChildren(children ...*Entity) EntityOption {
	return func(e *Entity) {
		e.children = append(e.children, children...)
	}
}

// WithAssets attaches assets for declaration in the scene-level asset
// block even when no component property references them.
func WithAssets(assets ...*Asset) EntityOption {
	return func(e *Entity) {
		e.assets = append(e.assets, assets...)
	}
}

// WithScripts records script URLs required by components on this
// entity. URLs are deduplicated across the whole tree at render time.
func WithScripts(urls ...string) EntityOption {
	return func(e *Entity) {
		e.scripts = append(e.scripts, urls...)
	}
}

// NewEntity creates an entity. A convenience tag such as "box" maps
// to the specialized <a-box> element; an unknown non-empty tag maps
// to <a-entity geometry="primitive: TAG">; an empty tag maps to a
// plain <a-entity> wrapper.
func NewEntity(tag string, opts ...EntityOption) *Entity {
	e := &Entity{tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tag returns the tag the entity was constructed with.
func (e *Entity) Tag() string { return e.tag }

// Children returns the child entities in insertion order.
func (e *Entity) Children() []*Entity { return e.children }

// hasComponent reports whether a component with the given markup-form
// name is attached.
func (e *Entity) hasComponent(markupName string) bool {
	for _, nc := range e.components {
		if HyphenateName(nc.name) == markupName {
			return true
		}
	}
	return false
}

// element resolves the markup element name and an optional
// synthesized geometry attribute for this entity's tag.
func (e *Entity) element() (name, geometry string) {
	if e.tag == "" {
		return "a-entity", ""
	}
	markupTag := HyphenateName(e.tag)
	if _, ok := primitives[markupTag]; ok {
		return "a-" + markupTag, ""
	}
	// Unknown tags carry their shape as a geometry component, unless
	// the caller configured geometry explicitly.
	if e.hasComponent("geometry") {
		return "a-entity", ""
	}
	return "a-entity", `geometry="primitive: ` + markupTag + `"`
}

// openTag renders the element's opening tag, registering any
// asset-valued properties with the collector.
func (e *Entity) openTag(c *collector) (string, error) {
	name, geometry := e.element()

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	if geometry != "" {
		b.WriteString(" ")
		b.WriteString(geometry)
	}
	for _, nc := range e.components {
		attr, err := nc.value.attribute(nc.name, c)
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(attr)
	}
	b.WriteString(">")
	return b.String(), nil
}
