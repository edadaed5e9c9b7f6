package assets

import (
	"errors"
	"fmt"
	"regexp"
)

// Built-in asset names.
const (
	DefaultStyleName    = "documentation"
	DefaultTemplateName = "document"
)

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// Kind is a category of asset, stored in its own directory.
type Kind int

const (
	Style Kind = iota
	Template
)

func (k Kind) dir() string {
	if k == Template {
		return "templates"
	}
	return "styles"
}

func (k Kind) ext() string {
	if k == Template {
		return ".html"
	}
	return ".css"
}

func (k Kind) notFound() error {
	if k == Template {
		return ErrTemplateNotFound
	}
	return ErrStyleNotFound
}

// AssetLoader loads CSS styles and HTML templates by name, without
// extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

const maxNameLength = 64

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName accepts letters, digits, '-' and '_', starting with a
// letter or digit. Anything else could name a path outside the asset
// directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxNameLength || !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
