package aframe

import "errors"

// Sentinel errors for library operations.
var (
	// Construction-time errors (fail fast, not deferred to render).
	ErrMissingAssetID  = errors.New("non-inline asset requires an id")
	ErrUnknownTemplate = errors.New("unknown template")

	// Render-time errors.
	ErrInvalidComponent = errors.New("invalid component value")
	ErrNotesRender      = errors.New("notes rendering failed")

	// Serve-time errors.
	ErrAlreadyServing = errors.New("scene is already serving")

	// Snapshot errors (headless Chrome via go-rod).
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSnapshot       = errors.New("snapshot capture failed")
)
