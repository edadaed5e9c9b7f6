package assets

import (
	"errors"
	"sort"
)

// AssetResolver looks assets up in a custom directory first and in the
// built-in set second. Only not-found errors fall through; invalid names and
// read failures from the custom directory are returned.
type AssetResolver struct {
	layers []layer
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// the built-in assets only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom.layer)
	}
	r.layers = append(r.layers, NewEmbeddedLoader().layer)
	return r, nil
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(Style, name)
}

// LoadTemplate implements AssetLoader.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(Template, name)
}

func (r *AssetResolver) load(kind Kind, name string) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = l.load(kind, name)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, kind.notFound()) {
			return "", err
		}
	}
	return "", err
}

// StyleNames lists every style the resolver can load, sorted and without
// duplicates.
func (r *AssetResolver) StyleNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range r.layers {
		for _, n := range l.names(Style) {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
