package pipeline

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"

	"github.com/alnah/go-docmerge/internal/mdtext"
)

// AnchorFunc derives a heading ID from the heading text.
type AnchorFunc func(title string) string

// headingIDs generates heading IDs with an AnchorFunc so that in-document
// links written against the same function resolve. Repeated IDs are
// suffixed by mdtext.IDSet, the scheme used for table of contents links.
type headingIDs struct {
	anchor AnchorFunc
	ids    *mdtext.IDSet
}

// Compile-time interface check.
var _ parser.IDs = (*headingIDs)(nil)

func newHeadingIDs(anchor AnchorFunc) *headingIDs {
	return &headingIDs{anchor: anchor, ids: mdtext.NewIDSet()}
}

// Generate implements parser.IDs.
func (h *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := h.anchor(string(value))
	if base == "" {
		if kind == ast.KindHeading {
			base = mdtext.FallbackID
		} else {
			base = "id"
		}
	}
	return []byte(h.ids.Unique(base))
}

// Put implements parser.IDs.
func (h *headingIDs) Put(value []byte) {
	h.ids.Reserve(string(value))
}
