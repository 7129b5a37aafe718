package aframe

import (
	"fmt"
	"html"
	"strings"
)

// valueKind discriminates the shapes a component value may take.
// The zero value is deliberately invalid so that an uninitialized
// ComponentValue is rejected at render time with a descriptive error.
type valueKind int

const (
	kindInvalid valueKind = iota
	kindString
	kindProps
	kindDefaults
	kindAsset
)

// ComponentValue is the configuration attached to a component name.
// It is a tagged variant resolved once at construction: a flat
// property string, an ordered key/value mapping, or "attach with
// defaults" (the component name is emitted with no value).
type ComponentValue struct {
	kind  valueKind
	str   string
	props []Property
	asset *Asset
}

// Property is one key/value entry of a mapping-form component value.
// Exactly one of Value or Asset is meaningful: when Asset is set, the
// rendered value is the asset's reference expression (see
// Asset.Reference) and the asset is registered for declaration.
type Property struct {
	Key   string
	Value string
	Asset *Asset
}

// Prop creates a literal property entry.
func Prop(key, value string) Property {
	return Property{Key: key, Value: value}
}

// AssetProp creates a property entry whose value points at an asset.
func AssetProp(key string, asset *Asset) Property {
	return Property{Key: key, Asset: asset}
}

// String creates a component value from a raw property string, which
// passes through to the markup unchanged.
func String(s string) ComponentValue {
	return ComponentValue{kind: kindString, str: s}
}

// Props creates a component value from ordered key/value entries,
// serialized to the markup's "key: value; key2: value2" grammar.
func Props(props ...Property) ComponentValue {
	return ComponentValue{kind: kindProps, props: props}
}

// Defaults creates a component value meaning "attach with defaults":
// the component name is emitted as a bare attribute with no value.
func Defaults() ComponentValue {
	return ComponentValue{kind: kindDefaults}
}

// Ref creates a component value that is an asset reference, e.g.
// src="#kangaroo" on a model primitive. The asset registers for
// declaration when non-inline.
func Ref(asset *Asset) ComponentValue {
	return ComponentValue{kind: kindAsset, asset: asset}
}

// namedComponent pairs a component name with its value, preserving
// the order components were attached in.
type namedComponent struct {
	name  string
	value ComponentValue
}

// encode serializes the value to its attribute form and registers any
// asset-valued properties with the collector. The returned string is
// empty for the defaults form. The component name is only used for
// error reporting.
func (v ComponentValue) encode(name string, c *collector) (string, error) {
	switch v.kind {
	case kindString:
		return v.str, nil
	case kindProps:
		parts := make([]string, 0, len(v.props))
		for _, p := range v.props {
			value := p.Value
			if p.Asset != nil {
				value = p.Asset.Reference()
				c.addAsset(p.Asset)
			}
			parts = append(parts, p.Key+": "+value)
		}
		return strings.Join(parts, "; "), nil
	case kindDefaults:
		return "", nil
	case kindAsset:
		if v.asset == nil {
			return "", fmt.Errorf("%w: component %q references a nil asset", ErrInvalidComponent, name)
		}
		c.addAsset(v.asset)
		return v.asset.Reference(), nil
	default:
		return "", fmt.Errorf("%w: component %q", ErrInvalidComponent, name)
	}
}

// attribute renders the full `name="value"` (or bare `name`) form.
func (v ComponentValue) attribute(name string, c *collector) (string, error) {
	encoded, err := v.encode(name, c)
	if err != nil {
		return "", err
	}
	markupName := HyphenateName(name)
	if v.kind == kindDefaults {
		return markupName, nil
	}
	return markupName + `="` + html.EscapeString(encoded) + `"`, nil
}

// HyphenateName translates a component or tag name from the
// identifier-safe form to the markup's hyphenated form, e.g.
// "json_model" becomes "json-model". It is the inverse of
// IdentifierName for names that do not mix separators.
func HyphenateName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// IdentifierName translates a hyphenated markup name back to the
// identifier-safe form, e.g. "json-model" becomes "json_model".
func IdentifierName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
