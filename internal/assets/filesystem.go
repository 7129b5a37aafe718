package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads assets from a directory tree:
//
//	basePath/templates/{name}.html
//	basePath/styles/{name}.css
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBasePath, basePath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBasePath, basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidBasePath, basePath)
	}

	return &FilesystemLoader{basePath: abs}, nil
}

// LoadTemplate loads a scene template from the filesystem by name.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load("templates", name+".html", ErrTemplateNotFound)
}

// LoadStyle loads a CSS style from the filesystem by name.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load("styles", name+".css", ErrStyleNotFound)
}

// load reads one asset file beneath the base path, refusing paths
// that resolve outside it.
func (f *FilesystemLoader) load(kind, file string, notFound error) (string, error) {
	name := strings.TrimSuffix(file, filepath.Ext(file))
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.basePath, kind, file)
	resolved, err := filepath.Abs(path)
	if err != nil || !strings.HasPrefix(resolved, f.basePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, file)
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", notFound, name)
		}
		return "", fmt.Errorf("reading asset %q: %w", file, err)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
