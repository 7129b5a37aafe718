package aframe

import (
	"html"
	"strings"
)

// Asset element tags.
const (
	// AssetItemTag is the default declaration element for media assets.
	AssetItemTag = "a-asset-item"

	// ImageTag declares image assets so the browser preloads them as <img>.
	ImageTag = "img"
)

// Asset is a reference to one external media resource. Non-inline
// assets are declared once in the scene's asset block and referenced
// by id; inline assets are embedded at point of use and never appear
// in the asset block.
type Asset struct {
	id     string
	src    string
	tag    string
	parts  []string
	attrs  []Property
	inline bool
}

// AssetOption configures an Asset at construction.
type AssetOption func(*Asset)

// WithParts records auxiliary file paths that accompany the primary
// source, e.g. the .bin companion of a .gltf model. Parts do not
// produce their own declaration entries; the consuming loader
// resolves them relative to the primary src.
func WithParts(parts ...string) AssetOption {
	return func(a *Asset) {
		a.parts = append(a.parts, parts...)
	}
}

// WithAssetTag overrides the declaration element type, e.g. ImageTag
// for image assets.
func WithAssetTag(tag string) AssetOption {
	return func(a *Asset) {
		a.tag = tag
	}
}

// WithAssetAttributes adds extra attributes to the declaration
// element, e.g. crossorigin handling for remote media.
func WithAssetAttributes(attrs ...Property) AssetOption {
	return func(a *Asset) {
		a.attrs = append(a.attrs, attrs...)
	}
}

// NewAsset creates a non-inline asset declared in the scene-level
// asset block and referenced elsewhere as "#id". Returns
// ErrMissingAssetID when id is empty: entity properties reference
// declared assets by id, so an id-less declaration can never be used.
func NewAsset(id, src string, opts ...AssetOption) (*Asset, error) {
	if id == "" {
		return nil, ErrMissingAssetID
	}
	a := &Asset{id: id, src: src, tag: AssetItemTag}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewImageAsset creates a non-inline image asset declared with an
// <img> element.
func NewImageAsset(id, src string, opts ...AssetOption) (*Asset, error) {
	opts = append([]AssetOption{WithAssetTag(ImageTag)}, opts...)
	return NewAsset(id, src, opts...)
}

// NewInlineAsset creates an asset embedded at point of use. It needs
// no id, renders no declaration entry, and is referenced via a
// url(...) source expression.
func NewInlineAsset(src string) *Asset {
	return &Asset{src: src, inline: true}
}

// ID returns the asset id (empty for inline assets).
func (a *Asset) ID() string { return a.id }

// Src returns the asset source path or URI.
func (a *Asset) Src() string { return a.src }

// Parts returns the auxiliary file paths declared alongside src.
func (a *Asset) Parts() []string { return a.parts }

// Inline reports whether the asset is embedded at point of use.
func (a *Asset) Inline() bool { return a.inline }

// Reference returns the string an entity property should contain to
// point at this asset: "#id" for declared assets, "url(src)" for
// inline ones.
func (a *Asset) Reference() string {
	if a.inline {
		return "url(" + a.src + ")"
	}
	return "#" + a.id
}

// renderDeclaration produces the scene-level declaration fragment for
// this asset, or the empty string for inline assets. Parts are
// recorded on the element as data-parts so the document keeps track
// of companion files without declaring them separately.
func (a *Asset) renderDeclaration() string {
	if a.inline {
		return ""
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(a.tag)
	b.WriteString(` id="`)
	b.WriteString(html.EscapeString(a.id))
	b.WriteString(`" src="`)
	b.WriteString(html.EscapeString(a.src))
	b.WriteString(`"`)
	if len(a.parts) > 0 {
		b.WriteString(` data-parts="`)
		b.WriteString(html.EscapeString(strings.Join(a.parts, " ")))
		b.WriteString(`"`)
	}
	for _, attr := range a.attrs {
		b.WriteString(" ")
		b.WriteString(HyphenateName(attr.Key))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteString(`"`)
	}
	if a.tag == ImageTag {
		b.WriteString(">")
		return b.String()
	}
	b.WriteString("></")
	b.WriteString(a.tag)
	b.WriteString(">")
	return b.String()
}
