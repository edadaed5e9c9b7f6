package merge

import (
	"strings"

	"github.com/alnah/go-docmerge/internal/mdtext"
	"github.com/alnah/go-docmerge/internal/toc"
)

// DefaultTOCTitle heads the generated table of contents.
const DefaultTOCTitle = "Table of Contents"

// TOCEntry is one line of the generated table of contents.
type TOCEntry struct {
	Depth  int
	Title  string
	Anchor string
}

// CollectTOC returns an entry for every titled group or leaf with depth at
// most maxDepth, in traversal order. Entries do not depend on whether the
// node's content is emitted. Anchors are the bare title anchors; Merge
// replaces them with the IDs the merged document gives each heading.
func CollectTOC(tree *toc.Tree, maxDepth int) []TOCEntry {
	return collectTOC(tree, maxDepth, nil)
}

// collectTOC takes anchors from ids when the node has one.
func collectTOC(tree *toc.Tree, maxDepth int, ids map[toc.Path]string) []TOCEntry {
	var entries []TOCEntry
	tree.Walk(func(n *toc.Node) bool {
		if (n.Kind == toc.KindGroup || n.Kind == toc.KindLeaf) && n.Title != "" && n.Depth <= maxDepth {
			anchor, ok := ids[n.Path]
			if !ok {
				anchor = mdtext.Anchor(n.Title)
			}
			entries = append(entries, TOCEntry{Depth: n.Depth, Title: n.Title, Anchor: anchor})
		}
		return true
	})
	return entries
}

// RenderTOC formats entries as an indented bullet list under a level-2
// heading, closed by a horizontal rule. No entries renders as "".
func RenderTOC(title string, entries []TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}
	if title == "" {
		title = DefaultTOCTitle
	}

	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", max(e.Depth-1, 0)))
		b.WriteString("- [")
		b.WriteString(e.Title)
		b.WriteString("](#")
		b.WriteString(e.Anchor)
		b.WriteString(")")
	}
	b.WriteString("\n\n---\n\n")
	return b.String()
}
