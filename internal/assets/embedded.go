package assets

import "embed"

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader loads the assets compiled into the binary.
type EmbeddedLoader struct {
	layer
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{layer{fsys: builtin}}
}

// LoadStyle implements AssetLoader.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(Style, name)
}

// LoadTemplate implements AssetLoader.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(Template, name)
}

// StyleNames lists the built-in styles in sorted order.
func (e *EmbeddedLoader) StyleNames() []string {
	return e.names(Style)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
