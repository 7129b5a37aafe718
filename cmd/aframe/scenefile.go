package main

import (
	"errors"
	"fmt"
	"os"

	aframe "github.com/alnah/go-aframe"
	"github.com/alnah/go-aframe/internal/yamlutil"
)

// Sentinel errors for scene file operations.
var (
	ErrSceneFileParse  = errors.New("failed to parse scene file")
	ErrUnknownAssetRef = errors.New("component references undeclared asset")
	ErrDuplicateAsset  = errors.New("duplicate asset id in scene file")
	ErrInlineAssetID   = errors.New("inline asset needs an id so components can reference it")
)

// SceneFile is the YAML schema for declarative scene definitions.
// Component lists are ordered lists rather than maps so the rendered
// attribute order matches the file.
type SceneFile struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Template    string         `yaml:"template"`
	TemplateDir string         `yaml:"templateDir"`
	Notes       string         `yaml:"notes"`
	Scripts     []string       `yaml:"scripts"`
	Assets      []AssetDef     `yaml:"assets"`
	Scene       []ComponentDef `yaml:"scene"`
	Entities    []EntityDef    `yaml:"entities"`
}

// AssetDef declares one media asset.
type AssetDef struct {
	ID     string   `yaml:"id"`
	Src    string   `yaml:"src"`
	Parts  []string `yaml:"parts"`
	Tag    string   `yaml:"tag"`    // "img" for image assets; default a-asset-item
	Inline bool     `yaml:"inline"` // embedded at point of use as url(src), never declared
}

// ComponentDef declares one component. At most one of Value, Asset or
// Props should be set; none means "attach with defaults". Asset names
// a declared asset id the whole component value references.
type ComponentDef struct {
	Name  string        `yaml:"name"`
	Value string        `yaml:"value"`
	Asset string        `yaml:"asset"`
	Props []PropertyDef `yaml:"props"`
}

// PropertyDef is one key/value entry. Asset names a declared asset id
// to reference instead of a literal value.
type PropertyDef struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	Asset string `yaml:"asset"`
}

// EntityDef declares one entity and its subtree.
type EntityDef struct {
	Tag        string         `yaml:"tag"`
	Components []ComponentDef `yaml:"components"`
	Scripts    []string       `yaml:"scripts"`
	Children   []EntityDef    `yaml:"children"`
}

// LoadSceneFile reads and parses a YAML scene file.
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file %q: %w", path, err)
	}

	var sf SceneFile
	if err := yamlutil.UnmarshalStrict(data, &sf); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSceneFileParse, path, err)
	}
	return &sf, nil
}

// BuildScene constructs a Scene from the parsed definition.
// defaultTemplate applies when the file omits a template.
func BuildScene(sf *SceneFile, defaultTemplate string) (*aframe.Scene, error) {
	assets, err := buildAssets(sf.Assets)
	if err != nil {
		return nil, err
	}

	opts := []aframe.SceneOption{
		aframe.WithTitle(sf.Title),
		aframe.WithDescription(sf.Description),
	}
	switch {
	case sf.Template != "":
		opts = append(opts, aframe.WithTemplate(sf.Template))
	case defaultTemplate != "":
		opts = append(opts, aframe.WithTemplate(defaultTemplate))
	}
	if sf.TemplateDir != "" {
		opts = append(opts, aframe.WithTemplateDir(sf.TemplateDir))
	}
	if sf.Notes != "" {
		opts = append(opts, aframe.WithNotes(sf.Notes))
	}
	if len(sf.Scripts) > 0 {
		opts = append(opts, aframe.WithSceneScripts(sf.Scripts...))
	}

	for _, cd := range sf.Scene {
		value, err := buildComponentValue(cd, assets)
		if err != nil {
			return nil, err
		}
		opts = append(opts, aframe.WithSceneComponent(cd.Name, value))
	}

	// Declare every non-inline asset from the file even when no
	// component references it, so the document matches the
	// declaration list.
	declared := make([]*aframe.Asset, 0, len(assets))
	for _, ad := range sf.Assets {
		if a := assets[ad.ID]; a != nil && !a.Inline() {
			declared = append(declared, a)
		}
	}
	if len(declared) > 0 {
		opts = append(opts, aframe.WithSceneAssets(declared...))
	}

	for _, ed := range sf.Entities {
		entity, err := buildEntity(ed, assets)
		if err != nil {
			return nil, err
		}
		opts = append(opts, aframe.WithEntities(entity))
	}

	return aframe.NewScene(opts...)
}

// buildAssets constructs the file's assets, keyed by id. Inline
// assets join the map too: the id is the file-local handle components
// reference them by, and they resolve to a url(src) expression rather
// than a declaration entry.
func buildAssets(defs []AssetDef) (map[string]*aframe.Asset, error) {
	assets := make(map[string]*aframe.Asset, len(defs))
	for _, ad := range defs {
		if ad.ID == "" && ad.Inline {
			return nil, fmt.Errorf("%w: src %q", ErrInlineAssetID, ad.Src)
		}
		if _, ok := assets[ad.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAsset, ad.ID)
		}
		if ad.Inline {
			assets[ad.ID] = aframe.NewInlineAsset(ad.Src)
			continue
		}

		var opts []aframe.AssetOption
		if len(ad.Parts) > 0 {
			opts = append(opts, aframe.WithParts(ad.Parts...))
		}
		if ad.Tag != "" {
			opts = append(opts, aframe.WithAssetTag(ad.Tag))
		}

		asset, err := aframe.NewAsset(ad.ID, ad.Src, opts...)
		if err != nil {
			return nil, fmt.Errorf("asset %q: %w", ad.ID, err)
		}
		assets[ad.ID] = asset
	}
	return assets, nil
}

// buildEntity constructs one entity subtree.
func buildEntity(ed EntityDef, assets map[string]*aframe.Asset) (*aframe.Entity, error) {
	var opts []aframe.EntityOption

	for _, cd := range ed.Components {
		value, err := buildComponentValue(cd, assets)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", ed.Tag, err)
		}
		opts = append(opts, aframe.WithComponent(cd.Name, value))
	}
	if len(ed.Scripts) > 0 {
		opts = append(opts, aframe.WithScripts(ed.Scripts...))
	}

	for _, cd := range ed.Children {
		child, err := buildEntity(cd, assets)
		if err != nil {
			return nil, err
		}
		opts = append(opts, aframe.WithChildren(child))
	}

	return aframe.NewEntity(ed.Tag, opts...), nil
}

// buildComponentValue maps a ComponentDef to the library's tagged
// variant form.
func buildComponentValue(cd ComponentDef, assets map[string]*aframe.Asset) (aframe.ComponentValue, error) {
	if len(cd.Props) > 0 {
		props := make([]aframe.Property, 0, len(cd.Props))
		for _, pd := range cd.Props {
			if pd.Asset != "" {
				asset, ok := assets[pd.Asset]
				if !ok {
					return aframe.ComponentValue{}, fmt.Errorf("%w: component %q, asset %q", ErrUnknownAssetRef, cd.Name, pd.Asset)
				}
				props = append(props, aframe.AssetProp(pd.Key, asset))
				continue
			}
			props = append(props, aframe.Prop(pd.Key, pd.Value))
		}
		return aframe.Props(props...), nil
	}

	if cd.Asset != "" {
		asset, ok := assets[cd.Asset]
		if !ok {
			return aframe.ComponentValue{}, fmt.Errorf("%w: component %q, asset %q", ErrUnknownAssetRef, cd.Name, cd.Asset)
		}
		return aframe.Ref(asset), nil
	}

	if cd.Value != "" {
		return aframe.String(cd.Value), nil
	}

	return aframe.Defaults(), nil
}
