package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSceneYAML = `title: Kangaroo Park
description: A model showcase
template: grid
scripts:
  - https://example.com/json-model.js
assets:
  - id: cube
    src: ./cube.json
  - id: kangaroo
    src: ./Kangaroo_01.gltf
    parts:
      - ./Kangaroo_01.bin
scene:
  - name: fog
    props:
      - key: type
        value: linear
entities:
  - tag: box
    components:
      - name: json_model
        props:
          - key: src
            asset: cube
  - tag: gltf-model
    components:
      - name: src
        asset: kangaroo
    children:
      - tag: light
        components:
          - name: type
            value: point
`

func writeSceneFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadSceneFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		sf, err := LoadSceneFile(writeSceneFile(t, sampleSceneYAML))
		if err != nil {
			t.Fatalf("LoadSceneFile() error = %v", err)
		}
		if sf.Title != "Kangaroo Park" || sf.Template != "grid" {
			t.Errorf("parsed = %+v", sf)
		}
		if len(sf.Assets) != 2 || len(sf.Entities) != 2 {
			t.Errorf("assets = %d, entities = %d", len(sf.Assets), len(sf.Entities))
		}
		if len(sf.Entities[1].Children) != 1 {
			t.Errorf("children = %d, want 1", len(sf.Entities[1].Children))
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSceneFile(writeSceneFile(t, "title: x\nbogus: true\n"))
		if !errors.Is(err, ErrSceneFileParse) {
			t.Errorf("LoadSceneFile() error = %v, want ErrSceneFileParse", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("LoadSceneFile() expected error for missing file")
		}
	})
}

func TestBuildScene(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()

		sf, err := LoadSceneFile(writeSceneFile(t, sampleSceneYAML))
		if err != nil {
			t.Fatalf("LoadSceneFile() error = %v", err)
		}
		scene, err := BuildScene(sf, "")
		if err != nil {
			t.Fatalf("BuildScene() error = %v", err)
		}

		doc, err := scene.Render()
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		for _, want := range []string{
			"<title>Kangaroo Park</title>",
			`<script src="https://example.com/json-model.js"></script>`,
			`<a-asset-item id="cube" src="./cube.json"></a-asset-item>`,
			`data-parts="./Kangaroo_01.bin"`,
			`<a-box json-model="src: #cube"></a-box>`,
			`<a-gltf-model src="#kangaroo">`,
			`<a-light type="point"></a-light>`,
			`fog="type: linear"`,
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("document missing %q:\n%s", want, doc)
			}
		}

		// The caller light displaces the grid template's preset lights.
		if strings.Contains(doc, `data-default="light"`) {
			t.Error("preset lights should be suppressed")
		}
	})

	t.Run("default template applies when file omits one", func(t *testing.T) {
		t.Parallel()

		sf := &SceneFile{Title: "Plain"}
		scene, err := BuildScene(sf, "ground")
		if err != nil {
			t.Fatalf("BuildScene() error = %v", err)
		}
		doc, err := scene.Render()
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(doc, `data-default="ground"`) {
			t.Error("default template not applied")
		}
	})

	t.Run("unknown asset reference", func(t *testing.T) {
		t.Parallel()

		sf := &SceneFile{
			Entities: []EntityDef{{
				Tag: "box",
				Components: []ComponentDef{{
					Name:  "json_model",
					Props: []PropertyDef{{Key: "src", Asset: "ghost"}},
				}},
			}},
		}
		_, err := BuildScene(sf, "")
		if !errors.Is(err, ErrUnknownAssetRef) {
			t.Errorf("BuildScene() error = %v, want ErrUnknownAssetRef", err)
		}
	})

	t.Run("inline asset resolves to a url expression", func(t *testing.T) {
		t.Parallel()

		sf := &SceneFile{
			Assets: []AssetDef{{ID: "bg", Src: "./bg.png", Inline: true}},
			Entities: []EntityDef{{
				Tag: "plane",
				Components: []ComponentDef{{
					Name:  "material",
					Props: []PropertyDef{{Key: "src", Asset: "bg"}},
				}},
			}},
		}
		scene, err := BuildScene(sf, "")
		if err != nil {
			t.Fatalf("BuildScene() error = %v", err)
		}
		doc, err := scene.Render()
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(doc, `material="src: url(./bg.png)"`) {
			t.Errorf("inline reference missing:\n%s", doc)
		}
		if strings.Contains(doc, `id="bg"`) {
			t.Errorf("inline asset must not be declared:\n%s", doc)
		}
	})

	t.Run("inline asset without id", func(t *testing.T) {
		t.Parallel()

		sf := &SceneFile{
			Assets: []AssetDef{{Src: "./bg.png", Inline: true}},
		}
		_, err := BuildScene(sf, "")
		if !errors.Is(err, ErrInlineAssetID) {
			t.Errorf("BuildScene() error = %v, want ErrInlineAssetID", err)
		}
	})

	t.Run("duplicate asset id", func(t *testing.T) {
		t.Parallel()

		sf := &SceneFile{
			Assets: []AssetDef{
				{ID: "cube", Src: "./a.json"},
				{ID: "cube", Src: "./b.json"},
			},
		}
		_, err := BuildScene(sf, "")
		if !errors.Is(err, ErrDuplicateAsset) {
			t.Errorf("BuildScene() error = %v, want ErrDuplicateAsset", err)
		}
	})

	t.Run("component without value attaches with defaults", func(t *testing.T) {
		t.Parallel()

		sf := &SceneFile{
			Entities: []EntityDef{{
				Tag:        "box",
				Components: []ComponentDef{{Name: "shadow"}},
			}},
		}
		scene, err := BuildScene(sf, "")
		if err != nil {
			t.Fatalf("BuildScene() error = %v", err)
		}
		doc, err := scene.Render()
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(doc, "<a-box shadow></a-box>") {
			t.Errorf("defaults component missing:\n%s", doc)
		}
	})
}

func TestSnapshotPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		outputDir string
		scenePath string
		want      string
	}{
		{"next to scene file", "", "scenes/park.yaml", filepath.Join("scenes", "park.png")},
		{"into output dir", "out", "scenes/park.yaml", filepath.Join("out", "park.png")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := snapshotPath(tt.outputDir, tt.scenePath); got != tt.want {
				t.Errorf("snapshotPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
