// Package pipeline turns the merged Markdown document into a standalone,
// styled HTML page ready for printing:
//   - Markdown preprocessing (line endings, byte order mark)
//   - Markdown to HTML conversion via Goldmark, with heading IDs that match
//     the anchors of the generated table of contents
//   - relative image and link rewriting to file:// URLs
//   - page templating and CSS injection
//
// PDF rendering is handled by the root docmerge package using headless
// Chrome (go-rod).
package pipeline
