// Package aframe builds A-Frame scene markup declaratively and serves
// it over a local HTTP endpoint.
//
// # Quick Start
//
// Compose assets and entities into a scene, then render or serve it:
//
//	cube, err := aframe.NewAsset("cube", "./cube.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	scene, err := aframe.NewScene(
//	    aframe.WithTitle("Demo"),
//	    aframe.WithTemplate(aframe.TemplateGrid),
//	    aframe.WithEntities(
//	        aframe.NewEntity("box",
//	            aframe.WithComponent("position", aframe.String("0 1 -3")),
//	            aframe.WithComponent("json_model", aframe.Props(
//	                aframe.AssetProp("src", cube),
//	            )),
//	            aframe.WithScripts("https://example.com/json-model.js"),
//	        ),
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := scene.Serve("localhost", 8080); err != nil {
//	    log.Fatal(err)
//	}
//	defer scene.Stop()
//
// # Rendering Pipeline
//
// Render walks the entity tree once, depth-first and pre-order,
// collecting deduplicated asset declarations and script URLs plus one
// markup fragment per entity, then substitutes the generated blocks
// into the chosen template's placeholders. Component names written in
// the identifier form ("json_model") are hyphenated at render time.
//
// Built-in templates: "empty", "grid" and "ground". Preset entities a
// template injects by default (ground, sky, light, camera) are
// removed when the caller's tree configures the same component, so
// explicit configuration always wins. A template name that is neither
// built-in nor a path to an existing document fails at construction.
//
// # Serving
//
// Serve binds host:port, answers the root path with the freshly
// rendered document, exposes a syntax-highlighted markup view at
// /_source, and serves local asset files from beneath the working
// directory; paths resolving outside it are refused.
//
// # Snapshots
//
// Snapshotter captures PNG screenshots of rendered scenes in headless
// Chrome. For batch capture, SnapshotterPool manages multiple browser
// instances:
//
//	pool := aframe.NewSnapshotterPool(4)
//	defer pool.Close()
//
//	snap := pool.Acquire()
//	defer pool.Release(snap)
//	png, err := snap.Capture(ctx, scene, nil)
//
// Chrome/Chromium is required; go-rod downloads a managed Chromium on
// first run. Set ROD_NO_SANDBOX=1 in containers and ROD_BROWSER_BIN
// to use a custom binary.
//
// # Concurrency
//
// Rendering uses per-call state, so distinct scenes render
// independently in one process. A single Scene's tree must not be
// mutated while it is being rendered or served.
package aframe
