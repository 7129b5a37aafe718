package aframe

// Notes:
// - element: convenience tags, geometry synthesis for unknown tags,
//   explicit geometry suppression, empty tag wrapper
// - openTag: component ordering matches attachment order

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestEntity_Element - Tag Resolution
// ---------------------------------------------------------------------------

func TestEntity_Element(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		entity       *Entity
		wantName     string
		wantGeometry string
	}{
		{
			name:     "convenience tag",
			entity:   NewEntity("box"),
			wantName: "a-box",
		},
		{
			name:     "hyphenated convenience tag",
			entity:   NewEntity("gltf-model"),
			wantName: "a-gltf-model",
		},
		{
			name:     "identifier-form convenience tag",
			entity:   NewEntity("gltf_model"),
			wantName: "a-gltf-model",
		},
		{
			name:         "unknown tag synthesizes geometry",
			entity:       NewEntity("dodecahedron-frame"),
			wantName:     "a-entity",
			wantGeometry: `geometry="primitive: dodecahedron-frame"`,
		},
		{
			name: "explicit geometry wins over synthesis",
			entity: NewEntity("weird-shape",
				WithComponent("geometry", String("primitive: torusKnot; p: 3")),
			),
			wantName: "a-entity",
		},
		{
			name:     "empty tag is a plain wrapper",
			entity:   NewEntity(""),
			wantName: "a-entity",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, geometry := tt.entity.element()
			if name != tt.wantName {
				t.Errorf("element() name = %q, want %q", name, tt.wantName)
			}
			if geometry != tt.wantGeometry {
				t.Errorf("element() geometry = %q, want %q", geometry, tt.wantGeometry)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEntity_OpenTag - Attribute Assembly
// ---------------------------------------------------------------------------

func TestEntity_OpenTag(t *testing.T) {
	t.Parallel()

	e := NewEntity("box",
		WithComponent("position", String("0 1 -3")),
		WithComponent("material", Props(Prop("color", "red"))),
		WithComponent("shadow", Defaults()),
	)

	got, err := e.openTag(newCollector())
	if err != nil {
		t.Fatalf("openTag() error = %v", err)
	}

	want := `<a-box position="0 1 -3" material="color: red" shadow>`
	if got != want {
		t.Errorf("openTag() = %q, want %q", got, want)
	}
}

func TestEntity_OpenTag_InvalidComponent(t *testing.T) {
	t.Parallel()

	e := NewEntity("box", WithComponent("broken", ComponentValue{}))
	if _, err := e.openTag(newCollector()); err == nil {
		t.Fatal("openTag() expected error for invalid component value")
	}
}
