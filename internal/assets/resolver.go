package assets

import "errors"

// Resolver combines custom and embedded loaders with fallback logic.
// When a custom base path is configured, assets load from it first
// and fall back to the embedded set when not found.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. If customBasePath is empty, only
// embedded assets are used. Returns an error if customBasePath is
// set but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	resolver := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplate loads a scene template, trying the custom loader
// first if available.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.loadWithFallback(func(loader Loader) (string, error) {
		return loader.LoadTemplate(name)
	})
}

// LoadStyle loads a CSS style, trying the custom loader first if
// available.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(loader Loader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// loadWithFallback implements the custom-first, fallback-to-embedded
// logic. Only "not found" errors fall through; validation and I/O
// errors surface immediately.
func (r *Resolver) loadWithFallback(loadFn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	if !isNotFoundError(err) {
		return "", err
	}

	return loadFn(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not
// found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrStyleNotFound)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
