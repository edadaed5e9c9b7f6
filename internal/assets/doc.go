// Package assets provides the CSS styles and page template used to render
// the merged document as HTML.
//
// Assets live under two directories, in the binary and optionally on disk:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// EmbeddedLoader serves the built-in set. FilesystemLoader serves a user
// directory and refuses files whose symlinks resolve outside it.
// AssetResolver stacks the two, custom first.
//
// Names are restricted to letters, digits, '-' and '_'.
package assets
