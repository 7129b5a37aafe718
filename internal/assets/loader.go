package assets

// Loader defines the contract for loading scene templates and
// stylesheets by name. Implementations may load from the embedded
// set, the filesystem, or both.
type Loader interface {
	// LoadTemplate loads a scene template by name (without the .html
	// extension). Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadStyle loads a CSS style by name (without the .css
	// extension). Returns ErrStyleNotFound if it doesn't exist.
	LoadStyle(name string) (string, error)
}
